package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/glow/internal/adapters/lowering"
	"go.trai.ch/glow/internal/adapters/store"
	"go.trai.ch/glow/internal/core/domain"
	"go.trai.ch/glow/internal/engine/lazy"
)

func snapshotFor(t *testing.T, name, target string) domain.Snapshot {
	t.Helper()
	g := domain.NewGraph()
	require.NoError(t, g.Append(domain.Node{Name: domain.NewInternedString("x"), Op: domain.OpPlaceholder}))
	require.NoError(t, g.Append(domain.Node{
		Name:   domain.NewInternedString("y"),
		Op:     domain.OpCall,
		Target: domain.NewInternedString(target),
		Args:   []domain.InternedString{domain.NewInternedString("x")},
	}))
	require.NoError(t, g.Append(domain.Node{
		Name: domain.NewInternedString("out"),
		Op:   domain.OpOutput,
		Args: []domain.InternedString{domain.NewInternedString("y")},
	}))

	m := lazy.New(name, g, lowering.New())
	snap, err := m.Snapshot()
	require.NoError(t, err)
	return *snap
}

func TestStore_PutAndGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.json")

	s, err := store.NewStore(path)
	require.NoError(t, err)

	snap := snapshotFor(t, "wave", "sin")
	require.NoError(t, s.Put(snap))

	got, err := s.Get("wave")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, snap.Name, got.Name)
	assert.Equal(t, snap.Fingerprint, got.Fingerprint)
}

func TestStore_MissIsNil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.json")

	s, err := store.NewStore(path)
	require.NoError(t, err)

	got, err := s.Get("absent")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.json")

	s1, err := store.NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s1.Put(snapshotFor(t, "wave", "cos")))

	// A new store instance over the same file sees the snapshot.
	s2, err := store.NewStore(path)
	require.NoError(t, err)

	got, err := s2.Get("wave")
	require.NoError(t, err)
	require.NotNil(t, got)

	// The stored snapshot is complete enough to restore a working module.
	m, err := lazy.Restore(got, lowering.New())
	require.NoError(t, err)
	assert.False(t, m.NeedsRecompile())

	out, err := m.Call(domain.Scalar(0))
	require.NoError(t, err)
	assert.InDelta(t, 1, out[0], 1e-12)
}

func TestStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := store.NewStore(path)
	assert.Error(t, err)
}
