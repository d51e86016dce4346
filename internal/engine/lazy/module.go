package lazy

import (
	"encoding/json"
	"fmt"

	"go.trai.ch/glow/internal/core/domain"
	"go.trai.ch/glow/internal/core/ports"
	"go.trai.ch/zerr"
)

// Module is the user-facing façade over one graph and its code cache.
// Every externally observable access path — calling, reading the source,
// string conversion, snapshotting — realizes freshness before returning,
// so a stale representation can never be observed.
type Module struct {
	name  string
	graph *domain.Graph
	cache *codeCache
}

// New wraps a graph in a lazy module. The module starts stale: no code is
// generated until the first access. The module registers itself as a
// mutation observer on the graph, so in-place edits by transforms holding
// the graph invalidate the cache automatically.
func New(name string, g *domain.Graph, lowerer ports.Lowerer) *Module {
	m := &Module{
		name:  name,
		graph: g,
		cache: newCodeCache(g, lowerer),
	}
	g.OnMutate(m.cache.markDirty)
	return m
}

// Restore reconstructs a module from a snapshot. Snapshots are taken after
// realization, so the restored module starts fresh and calling it performs
// no lowering. Bind only rebuilds the callable from the stored program.
func Restore(snap *domain.Snapshot, lowerer ports.Lowerer) (*Module, error) {
	if snap.Graph == nil {
		return nil, zerr.With(zerr.New("snapshot has no graph"), "module", snap.Name)
	}
	entry, err := lowerer.Bind(&snap.Artifact)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to bind snapshot program")
	}
	g := snap.Graph.Clone()
	m := &Module{
		name:  snap.Name,
		graph: g,
		cache: restoredCache(g, lowerer, snap.Artifact, entry),
	}
	g.OnMutate(m.cache.markDirty)
	return m, nil
}

// Name returns the module name.
func (m *Module) Name() string {
	return m.name
}

// Graph returns the underlying mutable graph. Transforms edit it in place;
// the module observes every mutation.
func (m *Module) Graph() *domain.Graph {
	return m.graph
}

// Call executes the module, regenerating the compiled program first if the
// graph changed since the last realization.
func (m *Module) Call(inputs ...domain.Value) (domain.Value, error) {
	entry, err := m.cache.Entry()
	if err != nil {
		return nil, err
	}
	return entry(inputs...)
}

// Forward returns the bound entry point. The returned function is a
// trampoline: it resolves the current compiled program through the cache
// on every invocation, so a reference saved before a mutation still
// executes the post-mutation behavior — and still lowers at most once.
func (m *Module) Forward() domain.Entry {
	return func(inputs ...domain.Value) (domain.Value, error) {
		return m.Call(inputs...)
	}
}

// SourceCode returns the generated source text for the current graph.
func (m *Module) SourceCode() (string, error) {
	return m.cache.Source()
}

// NeedsRecompile reports whether the cached representation is stale.
// It is a pure query with no side effects.
func (m *Module) NeedsRecompile() bool {
	return m.cache.dirty
}

// Recompile regenerates the code synchronously. Callers use it to pay the
// lowering cost at a chosen time, typically right after a graph edit,
// instead of on the next access. Fresh modules are left untouched.
func (m *Module) Recompile() error {
	return m.cache.ensureFresh()
}

// Realize forces freshness. The tracing frontend calls this before
// re-tracing: it cannot operate on a module with a pending recompilation.
func (m *Module) Realize() error {
	return m.cache.ensureFresh()
}

// Snapshot realizes the module and returns its persistable form.
// The snapshot never embeds stale source; dirty state is never serialized.
func (m *Module) Snapshot() (*domain.Snapshot, error) {
	art, err := m.cache.Artifact()
	if err != nil {
		return nil, err
	}
	return &domain.Snapshot{
		Name:        m.name,
		Fingerprint: m.graph.Fingerprint(),
		Graph:       m.graph.Clone(),
		Artifact:    art,
	}, nil
}

// MarshalJSON implements json.Marshaler by serializing the snapshot form.
func (m *Module) MarshalJSON() ([]byte, error) {
	snap, err := m.Snapshot()
	if err != nil {
		return nil, err
	}
	return json.Marshal(snap)
}

// String renders the module header and its generated source.
// Printing a module realizes it: debugging output always shows code
// matching the current graph.
func (m *Module) String() string {
	src, err := m.cache.Source()
	if err != nil {
		return fmt.Sprintf("module %s (lowering failed: %v)", m.name, err)
	}
	return fmt.Sprintf("module %s [%s]\n%s", m.name, m.graph.Fingerprint(), src)
}
