// Package lazy implements lazily lowered graph modules: a module wraps a
// mutable computation graph and defers regenerating its source text and
// compiled program until the first access that could observe them. Graph
// mutation is cheap; lowering is the expensive step and happens at most
// once per mutation, or never if the result is never observed.
//
// A module is single-owner: mutation and access must be sequenced by the
// caller. No guarantee is made for concurrent use from multiple goroutines
// without external synchronization.
package lazy

import (
	"go.trai.ch/glow/internal/core/domain"
	"go.trai.ch/glow/internal/core/ports"
	"go.trai.ch/zerr"
)

// codeCache owns the derived representation of one graph: the generated
// source text, the compiled program, and the entry bound to it. The dirty
// flag tracks whether they still reflect the graph.
type codeCache struct {
	graph   *domain.Graph
	lowerer ports.Lowerer

	source string
	entry  domain.Entry
	art    domain.Artifact
	dirty  bool

	// realizing guards against re-entrant ensureFresh calls from within a
	// single thread of control: an access path reached during lowering must
	// not lower again. It is a plain bool on purpose; see the package note
	// on the single-owner model.
	realizing bool
}

// newCodeCache returns a cache with no generated representation yet.
func newCodeCache(g *domain.Graph, lowerer ports.Lowerer) *codeCache {
	return &codeCache{
		graph:   g,
		lowerer: lowerer,
		dirty:   true,
	}
}

// restoredCache returns a cache primed with a pre-generated artifact and
// entry. It starts fresh; nothing will be lowered until the graph mutates.
func restoredCache(g *domain.Graph, lowerer ports.Lowerer, art domain.Artifact, entry domain.Entry) *codeCache {
	return &codeCache{
		graph:   g,
		lowerer: lowerer,
		source:  art.Source,
		art:     art,
		entry:   entry,
	}
}

// markDirty flags the cached representation as stale. Idempotent.
func (c *codeCache) markDirty() {
	c.dirty = true
}

// ensureFresh regenerates the artifact if it is stale, exactly once per
// dirty period. On failure nothing is committed: the cache stays dirty and
// the previous (stale) representation is untouched, so a retry after fixing
// the graph can succeed.
func (c *codeCache) ensureFresh() error {
	if !c.dirty || c.realizing {
		return nil
	}
	c.realizing = true
	defer func() { c.realizing = false }()

	art, err := c.lowerer.Lower(c.graph)
	if err != nil {
		return zerr.Wrap(err, "failed to regenerate module code")
	}
	entry, err := c.lowerer.Bind(art)
	if err != nil {
		return zerr.Wrap(err, "failed to bind compiled program")
	}

	c.source = art.Source
	c.art = *art
	c.entry = entry
	c.dirty = false
	return nil
}

// Source returns the generated source text, regenerating it first if stale.
func (c *codeCache) Source() (string, error) {
	if err := c.ensureFresh(); err != nil {
		return "", err
	}
	return c.source, nil
}

// Entry returns the compiled entry point, regenerating it first if stale.
func (c *codeCache) Entry() (domain.Entry, error) {
	if err := c.ensureFresh(); err != nil {
		return nil, err
	}
	return c.entry, nil
}

// Artifact returns the current artifact, regenerating it first if stale.
func (c *codeCache) Artifact() (domain.Artifact, error) {
	if err := c.ensureFresh(); err != nil {
		return domain.Artifact{}, err
	}
	return c.art, nil
}
