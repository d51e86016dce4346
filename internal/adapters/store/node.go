package store

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/glow/internal/core/ports"
)

const NodeID graft.ID = "adapter.snapshot_store"

func init() {
	graft.Register(graft.Node[ports.SnapshotStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.SnapshotStore, error) {
			store, err := NewStore(DefaultPath)
			if err != nil {
				return nil, err
			}
			return store, nil
		},
	})
}
