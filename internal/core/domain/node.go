package domain

// OpKind classifies a node in the computation graph.
type OpKind string

const (
	// OpPlaceholder marks a graph input.
	OpPlaceholder OpKind = "placeholder"
	// OpCall applies a registered operation to earlier nodes.
	OpCall OpKind = "call"
	// OpOutput marks the single graph result.
	OpOutput OpKind = "output"
)

// Node is a single step in a computation graph.
// Args reference earlier nodes by name; the graph rejects forward references.
// It uses InternedString for fields that are frequently repeated to save memory.
type Node struct {
	Name   InternedString     `json:"name"`
	Op     OpKind             `json:"op"`
	Target InternedString     `json:"target,omitzero"`
	Args   []InternedString   `json:"args,omitempty"`
	Attrs  map[string]float64 `json:"attrs,omitempty"`
	Meta   map[string]string  `json:"meta,omitempty"`
}

// clone returns a deep copy of the node.
func (n Node) clone() Node {
	c := n
	if n.Args != nil {
		c.Args = make([]InternedString, len(n.Args))
		copy(c.Args, n.Args)
	}
	if n.Attrs != nil {
		c.Attrs = make(map[string]float64, len(n.Attrs))
		for k, v := range n.Attrs {
			c.Attrs[k] = v
		}
	}
	if n.Meta != nil {
		c.Meta = make(map[string]string, len(n.Meta))
		for k, v := range n.Meta {
			c.Meta[k] = v
		}
	}
	return c
}
