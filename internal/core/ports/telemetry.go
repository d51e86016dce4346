package ports

import (
	"context"

	"go.trai.ch/glow/internal/core/domain"
)

// Telemetry records units of work (vertices) for progress reporting.
//
//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks
type Telemetry interface {
	// Record starts recording a new vertex.
	Record(ctx context.Context, name string) (context.Context, Vertex)

	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents one recorded unit of work.
type Vertex interface {
	// Log records a log message associated with this vertex.
	Log(level domain.LogLevel, msg string)
	// Cached marks the vertex as a cache hit.
	Cached()
	// Complete marks the vertex as finished (successfully or with an error).
	Complete(err error)
}

type vertexKey struct{}

// ContextWithVertex returns a context carrying the given vertex.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexKey{}, v)
}

// VertexFromContext returns the vertex carried by the context, if any.
func VertexFromContext(ctx context.Context) (Vertex, bool) {
	v, ok := ctx.Value(vertexKey{}).(Vertex)
	return v, ok
}
