// Package domain contains the core domain models for lazily lowered
// computation graphs: the graph itself, the lowered artifact, and the
// snapshot format used for persistence.
package domain

import (
	"encoding/json"
	"iter"

	"go.trai.ch/zerr"
)

// Graph is the mutable structural representation of a computation.
// Nodes are kept in definition order; arguments may only reference nodes
// that appear earlier, so a valid graph is acyclic by construction.
//
// Graph transforms mutate it in place through the mutation methods below.
// Every successful mutation fires the registered mutation hooks — this is
// how an owning module learns that its lowered artifact went stale.
type Graph struct {
	nodes []Node
	index map[InternedString]int
	hooks []func()
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		index: make(map[InternedString]int),
	}
}

// OnMutate registers a hook invoked after every successful mutation.
// Hooks must be idempotent; a mutation of an already-stale graph fires
// them again.
func (g *Graph) OnMutate(fn func()) {
	g.hooks = append(g.hooks, fn)
}

func (g *Graph) notify() {
	for _, fn := range g.hooks {
		fn()
	}
}

// Append adds a node to the end of the graph.
// The node name must be unique and all arguments must reference existing
// nodes. Appending past an output node is rejected.
func (g *Graph) Append(n Node) error {
	if n.Name.IsZero() || n.Name.String() == "" {
		return ErrEmptyNodeName
	}
	if _, exists := g.index[n.Name]; exists {
		return zerr.With(ErrDuplicateNode, "node", n.Name.String())
	}
	if len(g.nodes) > 0 && g.nodes[len(g.nodes)-1].Op == OpOutput {
		return ErrOutputNotLast
	}
	for _, arg := range n.Args {
		if _, ok := g.index[arg]; !ok {
			return zerr.With(zerr.With(ErrForwardReference, "node", n.Name.String()), "argument", arg.String())
		}
	}
	g.index[n.Name] = len(g.nodes)
	g.nodes = append(g.nodes, n.clone())
	g.notify()
	return nil
}

// SetTarget retargets a call node to a different operation.
// This is the canonical graph edit: swapping one operation for another
// while keeping the node's position and arguments.
func (g *Graph) SetTarget(name, target InternedString) error {
	i, ok := g.index[name]
	if !ok {
		return zerr.With(ErrNodeNotFound, "node", name.String())
	}
	if g.nodes[i].Op != OpCall {
		return zerr.With(zerr.With(ErrInvalidMutation, "node", name.String()), "op", string(g.nodes[i].Op))
	}
	g.nodes[i].Target = target
	g.notify()
	return nil
}

// SetAttr sets a scalar attribute on a call node.
func (g *Graph) SetAttr(name InternedString, key string, value float64) error {
	i, ok := g.index[name]
	if !ok {
		return zerr.With(ErrNodeNotFound, "node", name.String())
	}
	if g.nodes[i].Op != OpCall {
		return zerr.With(zerr.With(ErrInvalidMutation, "node", name.String()), "op", string(g.nodes[i].Op))
	}
	if g.nodes[i].Attrs == nil {
		g.nodes[i].Attrs = make(map[string]float64)
	}
	g.nodes[i].Attrs[key] = value
	g.notify()
	return nil
}

// Erase removes a node that no later node references.
func (g *Graph) Erase(name InternedString) error {
	i, ok := g.index[name]
	if !ok {
		return zerr.With(ErrNodeNotFound, "node", name.String())
	}
	for _, n := range g.nodes[i+1:] {
		for _, arg := range n.Args {
			if arg == name {
				return zerr.With(zerr.With(ErrNodeInUse, "node", name.String()), "referenced_by", n.Name.String())
			}
		}
	}
	g.nodes = append(g.nodes[:i], g.nodes[i+1:]...)
	delete(g.index, name)
	for j := i; j < len(g.nodes); j++ {
		g.index[g.nodes[j].Name] = j
	}
	g.notify()
	return nil
}

// Validate checks the structural invariants of the graph: unique names,
// no forward references, placeholders without arguments, call nodes with
// a target, and exactly one output node in final position.
func (g *Graph) Validate() error {
	seen := make(map[InternedString]bool, len(g.nodes))
	outputs := 0
	for i, n := range g.nodes {
		if n.Name.IsZero() || n.Name.String() == "" {
			return ErrEmptyNodeName
		}
		if seen[n.Name] {
			return zerr.With(ErrDuplicateNode, "node", n.Name.String())
		}
		seen[n.Name] = true

		for _, arg := range n.Args {
			if !seen[arg] || arg == n.Name {
				return zerr.With(zerr.With(ErrForwardReference, "node", n.Name.String()), "argument", arg.String())
			}
		}

		switch n.Op {
		case OpPlaceholder:
			if len(n.Args) != 0 {
				return zerr.With(zerr.With(ErrInvalidMutation, "node", n.Name.String()), "op", string(OpPlaceholder))
			}
		case OpCall:
			if n.Target.String() == "" {
				return zerr.With(ErrUnknownTarget, "node", n.Name.String())
			}
		case OpOutput:
			outputs++
			if outputs > 1 {
				return ErrMultipleOutputs
			}
			if i != len(g.nodes)-1 {
				return ErrOutputNotLast
			}
			if len(n.Args) != 1 {
				return zerr.With(ErrArityMismatch, "node", n.Name.String())
			}
		default:
			return zerr.With(zerr.With(ErrInvalidMutation, "node", n.Name.String()), "op", string(n.Op))
		}
	}
	if outputs == 0 {
		return ErrNoOutput
	}
	return nil
}

// Walk returns an iterator that yields nodes in definition order.
func (g *Graph) Walk() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, n := range g.nodes {
			if !yield(n) {
				return
			}
		}
	}
}

// Node returns the node with the given name.
func (g *Graph) Node(name InternedString) (Node, bool) {
	i, ok := g.index[name]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i].clone(), true
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// Inputs returns the placeholder names in definition order.
func (g *Graph) Inputs() []InternedString {
	var inputs []InternedString
	for _, n := range g.nodes {
		if n.Op == OpPlaceholder {
			inputs = append(inputs, n.Name)
		}
	}
	return inputs
}

// Clone returns a deep copy of the graph. Mutation hooks are not copied;
// the clone starts with no observers.
func (g *Graph) Clone() *Graph {
	c := NewGraph()
	c.nodes = make([]Node, len(g.nodes))
	for i, n := range g.nodes {
		c.nodes[i] = n.clone()
		c.index[n.Name] = i
	}
	return c
}

type graphDTO struct {
	Nodes []Node `json:"nodes"`
}

// MarshalJSON implements json.Marshaler.
func (g *Graph) MarshalJSON() ([]byte, error) {
	return json.Marshal(graphDTO{Nodes: g.nodes})
}

// UnmarshalJSON implements json.Unmarshaler.
// The decoded graph starts with no mutation hooks.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var dto graphDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return err
	}
	g.nodes = dto.Nodes
	g.index = make(map[InternedString]int, len(dto.Nodes))
	g.hooks = nil
	for i, n := range dto.Nodes {
		g.index[n.Name] = i
	}
	return nil
}
