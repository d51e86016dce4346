package lazy

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/glow/internal/adapters/lowering" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/glow/internal/core/domain"
	"go.trai.ch/glow/internal/core/ports"
)

// FactoryNodeID is the unique identifier for the module factory Graft node.
const FactoryNodeID graft.ID = "engine.lazy.factory"

// Factory builds lazy modules bound to one lowering backend.
type Factory struct {
	lowerer ports.Lowerer
}

// NewFactory creates a Factory using the given backend.
func NewFactory(lowerer ports.Lowerer) *Factory {
	return &Factory{lowerer: lowerer}
}

// Module wraps a graph in a new (stale) lazy module.
func (f *Factory) Module(name string, g *domain.Graph) *Module {
	return New(name, g, f.lowerer)
}

// Restore reconstructs a module from a snapshot; see Restore.
func (f *Factory) Restore(snap *domain.Snapshot) (*Module, error) {
	return Restore(snap, f.lowerer)
}

func init() {
	graft.Register(graft.Node[*Factory]{
		ID:        FactoryNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{lowering.NodeID},
		Run: func(ctx context.Context) (*Factory, error) {
			lowerer, err := graft.Dep[ports.Lowerer](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(lowerer), nil
		},
	})
}
