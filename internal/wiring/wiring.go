// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/glow/internal/adapters/config"
	_ "go.trai.ch/glow/internal/adapters/logger"
	_ "go.trai.ch/glow/internal/adapters/lowering"
	_ "go.trai.ch/glow/internal/adapters/store"
	_ "go.trai.ch/glow/internal/adapters/telemetry"
	_ "go.trai.ch/glow/internal/adapters/trace"
	// Register app and engine nodes.
	_ "go.trai.ch/glow/internal/app"
	_ "go.trai.ch/glow/internal/engine/lazy"
)
