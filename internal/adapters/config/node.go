package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/glow/internal/core/ports"
)

const NodeID graft.ID = "adapter.config_loader"

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			return NewLoader(""), nil
		},
	})
}
