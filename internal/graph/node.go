package graph

// Flags control how a node's value is collected and displayed.
type Flags uint32

const (
	// FlagEchoInput echoes interactive input for this node.
	FlagEchoInput Flags = 1 << iota
	// FlagMaskOutput masks interactive input (passphrases).
	FlagMaskOutput
	// FlagNoValue means the node takes no caller value; its default
	// stands in.
	FlagNoValue
	// FlagStdinRequired means the value may only come from stdin.
	FlagStdinRequired
	// FlagVerifyValue asks the prompter to read the value twice and
	// compare.
	FlagVerifyValue
)

// ValType is the type of value a node accepts.
type ValType int

const (
	ValStr ValType = iota
	ValHex
)

// Param is one supplied mount option.
type Param struct {
	Name  string
	Value string
}

// DefaultMatch is the wildcard transition value matching any upcoming
// option.
const DefaultMatch = "default"

// HandlerFunc runs as a side effect of a matched transition. val is the
// value the node consumed.
type HandlerFunc[C any] func(t *Traversal[C], node *Node[C], val string) error

// Transition names the next node reached when Val matches the upcoming
// supplied option. An empty Val matches unconditionally; an empty Next
// terminates the traversal for this branch.
type Transition[C any] struct {
	Val       string
	PrettyVal string
	Next      string
	Fn        HandlerFunc[C]
}

// Node is one configurable item of the negotiation graph.
type Node[C any] struct {
	ID           string
	OptNames     []string
	Prompt       string
	ValType      ValType
	DefaultVal   string
	SuggestedVal string
	Flags        Flags
	Transitions  []Transition[C]
}

func (n *Node[C]) accepts(name string) bool {
	for _, o := range n.OptNames {
		if o == name {
			return true
		}
	}
	return false
}

// Graph is an owned collection of nodes addressed by stable IDs.
type Graph[C any] struct {
	nodes map[string]*Node[C]
}

// New builds a graph, verifying IDs are unique and every transition
// target exists.
func New[C any](nodes ...*Node[C]) (*Graph[C], error) {
	g := &Graph[C]{nodes: make(map[string]*Node[C], len(nodes))}
	for _, n := range nodes {
		if _, dup := g.nodes[n.ID]; dup {
			return nil, &BuildError{Node: n.ID, Reason: "duplicate node id"}
		}
		g.nodes[n.ID] = n
	}
	for _, n := range nodes {
		for _, tr := range n.Transitions {
			if tr.Next == "" {
				continue
			}
			if _, ok := g.nodes[tr.Next]; !ok {
				return nil, &BuildError{Node: n.ID, Reason: "transition to unknown node " + tr.Next}
			}
		}
	}
	return g, nil
}

// Node returns the node with the given ID, or nil.
func (g *Graph[C]) Node(id string) *Node[C] { return g.nodes[id] }

// BuildError reports an inconsistent node table.
type BuildError struct {
	Node   string
	Reason string
}

func (e *BuildError) Error() string { return "graph node " + e.Node + ": " + e.Reason }
