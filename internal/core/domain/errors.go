package domain

import "go.trai.ch/zerr"

var (
	// ErrGraphLowering is returned when the backend cannot generate a valid
	// artifact from the current graph. It is fatal and never retried; the
	// owning cache stays dirty so a retry after fixing the graph can succeed.
	ErrGraphLowering = zerr.New("graph lowering failed")

	// ErrUnknownTarget is returned when a call node references an operation
	// that is not registered with the lowering backend.
	ErrUnknownTarget = zerr.New("unknown operation target")

	// ErrForwardReference is returned when a node argument references a node
	// that does not appear earlier in the graph.
	ErrForwardReference = zerr.New("argument references a node that is not defined yet")

	// ErrDuplicateNode is returned when adding a node with a name that already exists.
	ErrDuplicateNode = zerr.New("node already exists")

	// ErrNodeNotFound is returned when a referenced node is not in the graph.
	ErrNodeNotFound = zerr.New("node not found")

	// ErrNodeInUse is returned when erasing a node that later nodes still reference.
	ErrNodeInUse = zerr.New("node is referenced by a later node")

	// ErrInvalidMutation is returned when a mutation does not apply to the
	// node kind, e.g. retargeting a placeholder.
	ErrInvalidMutation = zerr.New("mutation not valid for this node")

	// ErrEmptyNodeName is returned when a node has no name.
	ErrEmptyNodeName = zerr.New("node name is empty")

	// ErrNoOutput is returned when a graph has no output node.
	ErrNoOutput = zerr.New("graph has no output node")

	// ErrMultipleOutputs is returned when a graph has more than one output node.
	ErrMultipleOutputs = zerr.New("graph has more than one output node")

	// ErrOutputNotLast is returned when the output node is not the final node.
	ErrOutputNotLast = zerr.New("output node must be the last node")

	// ErrArityMismatch is returned when a call supplies the wrong number of inputs.
	ErrArityMismatch = zerr.New("wrong number of inputs")

	// ErrShapeMismatch is returned when operand vectors have incompatible lengths.
	ErrShapeMismatch = zerr.New("operand lengths do not match")

	// ErrUnknownModule is returned when a requested module is not defined.
	ErrUnknownModule = zerr.New("module not found")
)
