// Package state persists the run marker and manifest-hash cache.
package state

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/comfyops/comfyprov/internal/core/domain"
	"go.trai.ch/zerr"
)

// DefaultPath is the state file used when no override is given.
const DefaultPath = "comfyprov_state.json"

// envPath overrides the state file location.
const envPath = "COMFYPROV_STATE"

// persisted is the on-disk layout: the marker of the last run plus the
// per-plugin manifest hashes from the last successful installs.
type persisted struct {
	Marker         *domain.Marker    `json:"marker,omitempty"`
	ManifestHashes map[string]string `json:"manifest_hashes,omitempty"`
}

// Store implements ports.StateStore using a flat JSON file.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache persisted
}

// NewStore creates a store at the default (or env-overridden) path.
func NewStore() (*Store, error) {
	path := DefaultPath
	if p := os.Getenv(envPath); p != "" {
		path = p
	}
	return NewStoreAt(path)
}

// NewStoreAt creates a store backed by the file at the given path.
func NewStoreAt(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: persisted{ManifestHashes: make(map[string]string)},
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
		return zerr.Wrap(err, "failed to read state file")
	}
	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.Wrap(err, "failed to unmarshal state file")
	}
	if s.cache.ManifestHashes == nil {
		s.cache.ManifestHashes = make(map[string]string)
	}
	return nil
}

func (s *Store) save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal state")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create state directory")
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write state file")
	}
	return nil
}

// LastMarker returns the marker of the previous run, or nil when none exists.
func (s *Store) LastMarker() (*domain.Marker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cache.Marker == nil {
		return nil, nil
	}
	marker := *s.cache.Marker
	return &marker, nil
}

// WriteMarker persists the marker for this run.
func (s *Store) WriteMarker(marker domain.Marker) error {
	s.mu.Lock()
	s.cache.Marker = &marker
	s.mu.Unlock()

	return s.save()
}

// ManifestHash returns the recorded hash for a plugin's manifest, or "".
func (s *Store) ManifestHash(plugin string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache.ManifestHashes[plugin], nil
}

// PutManifestHash records a successful manifest install.
func (s *Store) PutManifestHash(plugin, hash string) error {
	s.mu.Lock()
	s.cache.ManifestHashes[plugin] = hash
	s.mu.Unlock()

	return s.save()
}
