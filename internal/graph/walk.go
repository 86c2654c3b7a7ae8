package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned when no transition of the
	// current node accepts the upcoming value.
	ErrInvalidTransition = errors.New("no transition accepts value")

	// ErrMissingValue is returned when a node needs a value but none
	// was supplied and no prompter is available.
	ErrMissingValue = errors.New("no value available for node")
)

// Prompter collects a value interactively when the supplied parameters
// run out.
type Prompter interface {
	PromptValue(prompt string, masked, verify bool) (string, error)
}

// Traversal is one sequential walk of a subgraph. Each node's handler
// runs to completion before the next node is visited; there is no
// concurrent traversal of two branches.
type Traversal[C any] struct {
	// Ctx is the per-traversal context owned by the module that
	// started the walk.
	Ctx C

	// MntParams accumulates the mount options emitted by handlers.
	MntParams []string

	g        *Graph[C]
	params   []Param
	next     int
	prompter Prompter
}

// Walk runs the subgraph starting at entry. The entry transition's
// handler, if any, runs before the first node is visited; its Val is
// passed through as the handler value.
func (g *Graph[C]) Walk(entry *Transition[C], params []Param, p Prompter, ctx C) (*Traversal[C], error) {
	t := &Traversal[C]{Ctx: ctx, g: g, params: params, prompter: p}
	if entry.Fn != nil {
		if err := entry.Fn(t, nil, entry.Val); err != nil {
			return t, err
		}
	}
	cur := g.Node(entry.Next)
	if cur == nil {
		return t, nil
	}
	for {
		val, err := t.valueFor(cur)
		if err != nil {
			return t, err
		}
		tr, err := t.selectTransition(cur, val)
		if err != nil {
			return t, err
		}
		if tr.Fn != nil {
			if err := tr.Fn(t, cur, val); err != nil {
				return t, err
			}
		}
		if tr.Next == "" {
			return t, nil
		}
		cur = t.g.Node(tr.Next)
	}
}

// valueFor resolves the node's value: the next supplied parameter if
// its name matches, the node default for no-value nodes, otherwise a
// prompt.
func (t *Traversal[C]) valueFor(n *Node[C]) (string, error) {
	if t.next < len(t.params) && n.accepts(t.params[t.next].Name) {
		v := t.params[t.next].Value
		t.next++
		return v, nil
	}
	if n.Flags&FlagNoValue != 0 {
		return n.DefaultVal, nil
	}
	if t.prompter == nil {
		return "", fmt.Errorf("%w: %s", ErrMissingValue, n.ID)
	}
	v, err := t.prompter.PromptValue(n.Prompt, n.Flags&FlagMaskOutput != 0, n.Flags&FlagVerifyValue != 0)
	if err != nil {
		return "", err
	}
	if v == "" && n.SuggestedVal != "" {
		v = n.SuggestedVal
	}
	if v == "" && n.DefaultVal != "" {
		v = n.DefaultVal
	}
	return v, nil
}

// selectTransition picks the first transition whose Val matches either
// the name of the next unconsumed parameter or the value the node just
// consumed. DefaultMatch and the empty value match unconditionally.
func (t *Traversal[C]) selectTransition(n *Node[C], val string) (*Transition[C], error) {
	var upcoming string
	if t.next < len(t.params) {
		upcoming = t.params[t.next].Name
	}
	for i := range n.Transitions {
		tr := &n.Transitions[i]
		switch tr.Val {
		case "", DefaultMatch:
			return tr, nil
		case upcoming, val:
			return tr, nil
		}
	}
	return nil, fmt.Errorf("%w: node %s, option %q", ErrInvalidTransition, n.ID, upcoming)
}
