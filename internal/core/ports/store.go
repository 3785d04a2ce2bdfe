package ports

import "github.com/comfyops/comfyprov/internal/core/domain"

// StateStore persists the run marker and the manifest-hash cache between runs.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type StateStore interface {
	// LastMarker returns the marker of the previous run.
	// Returns nil, nil when no run has completed yet.
	LastMarker() (*domain.Marker, error)

	// WriteMarker persists the marker for this run.
	WriteMarker(marker domain.Marker) error

	// ManifestHash returns the hash of the plugin's dependency manifest as
	// of its last successful install. Empty string when unknown.
	ManifestHash(plugin string) (string, error)

	// PutManifestHash records a successful manifest install.
	PutManifestHash(plugin, hash string) error
}
