package domain

import (
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/zerr"
)

// Environment describes the target virtualenv and workspace for a run.
type Environment struct {
	// VenvPath is the virtualenv root (must contain bin/activate).
	VenvPath string

	// Python optionally overrides the interpreter path.
	// Defaults to <VenvPath>/bin/python.
	Python string

	// WorkspaceRoot is the served application's checkout root.
	WorkspaceRoot string

	// PluginRoot is the directory holding plugin checkouts.
	PluginRoot string

	// Service is the supervisor service name for the served application.
	Service string

	// SettleDelay is how long to wait after stopping the service before
	// mutating its environment.
	SettleDelay time.Duration
}

// PythonPath returns the interpreter to use for all package-manager calls.
func (e Environment) PythonPath() string {
	if e.Python != "" {
		return e.Python
	}
	return filepath.Join(e.VenvPath, "bin", "python")
}

// ActivatePath returns the virtualenv activation file.
func (e Environment) ActivatePath() string {
	return filepath.Join(e.VenvPath, "bin", "activate")
}

// CheckActivatable verifies the activation file exists.
// Its absence is one of the two fatal conditions of a run.
func (e Environment) CheckActivatable() error {
	if _, err := os.Stat(e.ActivatePath()); err != nil {
		return zerr.With(ErrActivateMissing, "path", e.ActivatePath())
	}
	return nil
}

// Exec returns the execution context for shelled-out commands: the interpreter
// plus the environment overrides that stand in for `source bin/activate`.
// PATH handling mirrors activation by prepending the venv bin directory.
type ExecEnv struct {
	Python      string
	Dir         string
	Env         map[string]string
	PathPrepend string
}

// Exec builds the ExecEnv for this environment.
func (e Environment) Exec() ExecEnv {
	env := map[string]string{
		"VIRTUAL_ENV":      e.VenvPath,
		"PIP_NO_INPUT":     "1",
		"PYTHONUNBUFFERED": "1",
	}
	return ExecEnv{
		Python:      e.PythonPath(),
		Dir:         e.WorkspaceRoot,
		Env:         env,
		PathPrepend: filepath.Join(e.VenvPath, "bin"),
	}
}

// Plan is the full declarative input for one provisioning run.
type Plan struct {
	Environment Environment

	// Framework is the runtime framework spec (the risky install).
	Framework DependencySpec

	// Auxiliary are the fixed supporting dependency specs.
	Auxiliary []DependencySpec

	// Frontend is the UI frontend spec, reconciled as a single pinned version.
	Frontend DependencySpec

	// AppRequirements is the served application's own manifest path.
	AppRequirements string

	// Plugins is the fixed critical plugin list.
	Plugins []PluginSpec

	// IgnorePlugins lists directory names under the plugin root that are
	// known non-plugins and must be left alone.
	IgnorePlugins []string

	// Verify is the final verification list of import probes.
	Verify []DependencySpec
}

// Validate checks the plan for the mistakes that would otherwise surface
// halfway through a run.
func (p *Plan) Validate() error {
	if p.Environment.VenvPath == "" && p.Environment.Python == "" {
		return zerr.With(ErrInvalidPlan, "reason", "environment needs a venv path or explicit interpreter")
	}
	if p.Environment.PluginRoot == "" {
		return zerr.With(ErrInvalidPlan, "reason", "plugin root is required")
	}
	if p.Framework.Name == "" {
		return zerr.With(ErrInvalidPlan, "reason", "framework spec is required")
	}
	if p.Framework.Version == "" {
		return zerr.With(ErrInvalidPlan, "reason", "framework spec must be pinned")
	}
	if _, err := p.Framework.RequiredVersion(); err != nil {
		return zerr.Wrap(err, "framework version")
	}
	for _, spec := range p.Auxiliary {
		if spec.Name == "" {
			return zerr.With(ErrInvalidPlan, "reason", "auxiliary spec without a name")
		}
		if _, err := spec.RequiredVersion(); err != nil {
			return zerr.With(zerr.Wrap(err, "auxiliary version"), "spec", spec.Name)
		}
	}
	if p.Frontend.Name != "" && p.Frontend.Version == "" {
		return zerr.With(ErrInvalidPlan, "reason", "frontend spec must be pinned")
	}
	seen := make(map[string]bool)
	for _, plugin := range p.Plugins {
		if plugin.Name == "" || plugin.Repo == "" {
			return zerr.With(ErrInvalidPlan, "reason", "critical plugin needs a name and repo")
		}
		if seen[plugin.Name] {
			return zerr.With(ErrInvalidPlan, "duplicate_plugin", plugin.Name)
		}
		seen[plugin.Name] = true
	}
	return nil
}

// Ignored reports whether a plugin directory name is on the ignore list.
func (p *Plan) Ignored(name string) bool {
	for _, ig := range p.IgnorePlugins {
		if ig == name {
			return true
		}
	}
	return false
}
