package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/glow/internal/adapters/telemetry/progrock"
	"go.trai.ch/glow/internal/core/ports"
)

// NodeID is the unique identifier for the Telemetry adapter Graft node.
const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Telemetry, error) {
			// Progress rendering is opt-in; logs stay clean otherwise.
			if os.Getenv("GLOW_PROGRESS") != "" {
				return progrock.New(), nil
			}
			return NewNoOp(), nil
		},
	})
}
