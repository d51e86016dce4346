// Package store persists module snapshots as a flat JSON file.
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/glow/internal/core/domain"
	"go.trai.ch/zerr"
)

// DefaultPath is where the snapshot store lives relative to the working
// directory when no explicit path is configured.
const DefaultPath = ".glow/snapshots.json"

// Store implements ports.SnapshotStore using a flat JSON file.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.Snapshot
}

// NewStore creates a new SnapshotStore backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.Snapshot),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read snapshot store")
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.Wrap(err, "failed to unmarshal snapshot store")
	}

	return nil
}

func (s *Store) save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal snapshot store")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for snapshot store")
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write snapshot store")
	}

	return nil
}

// Get retrieves the snapshot for a given module name. A miss is (nil, nil).
func (s *Store) Get(name string) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.cache[name]
	if !ok {
		return nil, nil
	}
	return &snap, nil
}

// Put stores the snapshot.
func (s *Store) Put(snap domain.Snapshot) error {
	// Update cache first
	s.mu.Lock()
	s.cache[snap.Name] = snap
	s.mu.Unlock()

	// Then save to disk
	return s.save()
}
