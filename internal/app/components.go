package app

import "go.trai.ch/glow/internal/core/ports"

// Components bundles the wired application with the shared adapters the
// CLI needs direct access to.
type Components struct {
	App       *App
	Logger    ports.Logger
	Telemetry ports.Telemetry
	Store     ports.SnapshotStore
}
