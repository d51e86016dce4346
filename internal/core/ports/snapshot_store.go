package ports

import "go.trai.ch/glow/internal/core/domain"

// SnapshotStore defines the interface for persisting realized module snapshots.
//
//go:generate go run go.uber.org/mock/mockgen -source=snapshot_store.go -destination=mocks/mock_snapshot_store.go -package=mocks
type SnapshotStore interface {
	// Get retrieves the snapshot for a given module name.
	// Returns nil, nil if not found.
	Get(name string) (*domain.Snapshot, error)

	// Put stores the snapshot.
	Put(snap domain.Snapshot) error
}
