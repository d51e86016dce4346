package trace

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/glow/internal/adapters/lowering" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/glow/internal/core/ports"
)

// NodeID is the unique identifier for the tracing frontend Graft node.
const NodeID graft.ID = "adapter.trace"

func init() {
	graft.Register(graft.Node[*Frontend]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{lowering.NodeID},
		Run: func(ctx context.Context) (*Frontend, error) {
			lowerer, err := graft.Dep[ports.Lowerer](ctx)
			if err != nil {
				return nil, err
			}
			return NewFrontend(lowerer), nil
		},
	})
}
