// Package telemetry provides telemetry implementations and selection.
package telemetry

import (
	"context"

	"go.trai.ch/glow/internal/core/domain"
	"go.trai.ch/glow/internal/core/ports"
)

// NoOp is a telemetry implementation that records nothing.
type NoOp struct{}

// NewNoOp creates a new NoOp telemetry.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Record returns a no-op vertex.
func (t *NoOp) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	v := &NoOpVertex{}
	return ports.ContextWithVertex(ctx, v), v
}

// Close does nothing.
func (t *NoOp) Close() error { return nil }

// NoOpVertex is a vertex that discards everything.
type NoOpVertex struct{}

// Log does nothing.
func (v *NoOpVertex) Log(_ domain.LogLevel, _ string) {}

// Cached does nothing.
func (v *NoOpVertex) Cached() {}

// Complete does nothing.
func (v *NoOpVertex) Complete(_ error) {}
