package graph

import (
	"errors"
	"strings"
	"testing"
)

type walkState struct {
	color string
	size  string
}

type fakePrompter struct {
	answers map[string]string
}

func (f *fakePrompter) PromptValue(prompt string, masked, verify bool) (string, error) {
	return f.answers[prompt], nil
}

func testGraph(t *testing.T) *Graph[*walkState] {
	t.Helper()
	g, err := New(
		&Node[*walkState]{
			ID:       "color",
			OptNames: []string{"color"},
			Prompt:   "Color",
			Transitions: []Transition[*walkState]{
				{Val: "size", Next: "size", Fn: func(t *Traversal[*walkState], n *Node[*walkState], val string) error {
					t.Ctx.color = val
					return nil
				}},
				{Val: DefaultMatch, Next: "size", Fn: func(t *Traversal[*walkState], n *Node[*walkState], val string) error {
					t.Ctx.color = val
					return nil
				}},
			},
		},
		&Node[*walkState]{
			ID:       "size",
			OptNames: []string{"size"},
			Prompt:   "Size",
			Transitions: []Transition[*walkState]{
				{Fn: func(t *Traversal[*walkState], n *Node[*walkState], val string) error {
					t.Ctx.size = val
					t.MntParams = append(t.MntParams, "chosen="+t.Ctx.color+"/"+val)
					return nil
				}},
			},
		},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func entryTo(first string) *Transition[*walkState] {
	return &Transition[*walkState]{Val: "test", Next: first}
}

func TestWalkConsumesSuppliedParams(t *testing.T) {
	g := testGraph(t)
	st := &walkState{}

	tr, err := g.Walk(entryTo("color"), []Param{{Name: "color", Value: "red"}, {Name: "size", Value: "large"}}, nil, st)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if st.color != "red" || st.size != "large" {
		t.Fatalf("state: %+v", st)
	}
	if len(tr.MntParams) != 1 || tr.MntParams[0] != "chosen=red/large" {
		t.Fatalf("mnt params: %v", tr.MntParams)
	}
}

func TestWalkPromptsForMissingValues(t *testing.T) {
	g := testGraph(t)
	st := &walkState{}
	p := &fakePrompter{answers: map[string]string{"Color": "blue", "Size": "small"}}

	if _, err := g.Walk(entryTo("color"), nil, p, st); err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if st.color != "blue" || st.size != "small" {
		t.Fatalf("state: %+v", st)
	}
}

func TestWalkMissingValueWithoutPrompter(t *testing.T) {
	g := testGraph(t)
	_, err := g.Walk(entryTo("color"), nil, nil, &walkState{})
	if !errors.Is(err, ErrMissingValue) {
		t.Fatalf("got %v, want ErrMissingValue", err)
	}
}

func TestWalkInvalidTransition(t *testing.T) {
	g, err := New(
		&Node[*walkState]{
			ID:       "pick",
			OptNames: []string{"pick"},
			Transitions: []Transition[*walkState]{
				{Val: "only", Next: ""},
			},
		},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = g.Walk(&Transition[*walkState]{Next: "pick"}, []Param{{Name: "pick", Value: "other"}}, nil, &walkState{})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("got %v, want ErrInvalidTransition", err)
	}
}

func TestWalkNoValueNodeUsesDefault(t *testing.T) {
	var got string
	g, err := New(
		&Node[*walkState]{
			ID:         "format",
			OptNames:   []string{"format"},
			DefaultVal: "keyfile",
			Flags:      FlagNoValue,
			Transitions: []Transition[*walkState]{
				{Val: DefaultMatch, Fn: func(t *Traversal[*walkState], n *Node[*walkState], val string) error {
					got = val
					return nil
				}},
			},
		},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := g.Walk(&Transition[*walkState]{Next: "format"}, nil, nil, &walkState{}); err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if got != "keyfile" {
		t.Fatalf("default value: got %q want %q", got, "keyfile")
	}
}

func TestNewRejectsBadTables(t *testing.T) {
	if _, err := New(
		&Node[*walkState]{ID: "a"},
		&Node[*walkState]{ID: "a"},
	); err == nil {
		t.Fatal("duplicate node id accepted")
	}
	if _, err := New(
		&Node[*walkState]{ID: "a", Transitions: []Transition[*walkState]{{Val: DefaultMatch, Next: "ghost"}}},
	); err == nil {
		t.Fatal("dangling transition accepted")
	}
}

func TestParseOptions(t *testing.T) {
	in := "# comment\n\npasswd=hunter2\nkeyfile = /tmp/k.pem\nbare\n"
	params, err := ParseOptions(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseOptions: %v", err)
	}
	if len(params) != 3 {
		t.Fatalf("params: %v", params)
	}
	if v, ok := FindOption(params, "passwd"); !ok || v != "hunter2" {
		t.Fatalf("passwd: %q %v", v, ok)
	}
	if v, ok := FindOption(params, "keyfile"); !ok || v != "/tmp/k.pem" {
		t.Fatalf("keyfile: %q %v", v, ok)
	}
	if _, ok := FindOption(params, "absent"); ok {
		t.Fatal("found option that is not there")
	}
}
