package lowering

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/glow/internal/core/ports"
)

// NodeID is the unique identifier for the lowering backend Graft node.
const NodeID graft.ID = "adapter.lowerer"

func init() {
	graft.Register(graft.Node[ports.Lowerer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Lowerer, error) {
			return New(), nil
		},
	})
}
