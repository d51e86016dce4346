package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/glow/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/glow/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/glow/internal/adapters/store"     //nolint:depguard // Wired in app layer
	"go.trai.ch/glow/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/glow/internal/core/ports"
	"go.trai.ch/glow/internal/engine/lazy"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			lazy.FactoryNodeID,
			store.NodeID,
			telemetry.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.NodeID,
			store.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	factory, err := graft.Dep[*lazy.Factory](ctx)
	if err != nil {
		return nil, err
	}

	snapshots, err := graft.Dep[ports.SnapshotStore](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, factory, snapshots, tel, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	snapshots, err := graft.Dep[ports.SnapshotStore](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       application,
		Logger:    log,
		Telemetry: tel,
		Store:     snapshots,
	}, nil
}
