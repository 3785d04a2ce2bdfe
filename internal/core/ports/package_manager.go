package ports

import (
	"context"

	"github.com/comfyops/comfyprov/internal/core/domain"
)

// InstallOptions tune a single package install.
type InstallOptions struct {
	// IndexURL selects an alternate package index.
	IndexURL string

	// ForceReinstall requests a clean reinstall, used when a version
	// mismatch was detected rather than absence.
	ForceReinstall bool
}

// PackageManager wraps the external package manager (pip) for one target
// environment, passed per call so the same adapter serves probe and install
// against whatever interpreter the plan selects.
//
//go:generate go run go.uber.org/mock/mockgen -source=package_manager.go -destination=mocks/mock_package_manager.go -package=mocks
type PackageManager interface {
	// Ready probes the package manager itself.
	Ready(ctx context.Context, env domain.ExecEnv) error

	// Repair runs the bounded self-repair sequence: probe, bootstrap via
	// the manager's own ensure mechanism, then a fetched known-good
	// installer. Returns domain.ErrPipUnrepairable when all attempts fail.
	Repair(ctx context.Context, env domain.ExecEnv) error

	// Probe imports the module and returns its reported version.
	// Returns domain.ErrNotInstalled when the import fails.
	Probe(ctx context.Context, env domain.ExecEnv, module string) (string, error)

	// Install installs a single requirement string (e.g. "torch==2.7.0+cu128").
	Install(ctx context.Context, env domain.ExecEnv, pin string, opts InstallOptions) error

	// InstallRequirements installs a requirements manifest, dropping any
	// line whose package name is in exclude.
	InstallRequirements(ctx context.Context, env domain.ExecEnv, path string, exclude []string) error
}
