// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/glow/internal/core/domain"

// Lowerer is the execution/compilation backend: a pure function from a
// graph snapshot to its derived artifact.
//
//go:generate go run go.uber.org/mock/mockgen -source=lowerer.go -destination=mocks/mock_lowerer.go -package=mocks
type Lowerer interface {
	// Lower generates the source text and program for the current graph.
	// It returns an error wrapping domain.ErrGraphLowering if the graph is
	// malformed; no partial artifact is ever returned.
	Lower(g *domain.Graph) (*domain.Artifact, error)

	// Bind builds the callable entry point for an already-lowered artifact.
	// Binding is cheap and performs no lowering, which is what lets a
	// deserialized snapshot become callable without regeneration.
	Bind(a *domain.Artifact) (domain.Entry, error)
}
