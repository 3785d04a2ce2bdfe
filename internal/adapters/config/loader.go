// Package config provides the provisioning plan loader.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/comfyops/comfyprov/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment variable overrides, matching the knobs the operators already
// export on their hosts.
const (
	envVenv      = "COMFYPROV_VENV"
	envPython    = "COMFYPROV_PYTHON"
	envWorkspace = "COMFYPROV_WORKSPACE"
)

// defaultSettleDelay is how long to wait after stopping the service when the
// plan does not say otherwise.
const defaultSettleDelay = 5 * time.Second

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	path string
}

// NewLoader creates a new Loader for the default plan filename.
func NewLoader() *Loader {
	return &Loader{path: "provision.yaml"}
}

// SetPath overrides the plan file path. Wired to the CLI --config flag.
func (l *Loader) SetPath(path string) {
	if path != "" {
		l.path = path
	}
}

// Load reads, converts and validates the plan.
func (l *Loader) Load() (*domain.Plan, error) {
	return Load(l.path)
}

// Load reads a plan file from the given path.
func Load(path string) (*domain.Plan, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read plan file")
	}

	var pf Planfile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, zerr.Wrap(err, "failed to parse plan file")
	}

	plan, err := toDomain(&pf)
	if err != nil {
		return nil, err
	}
	applyEnvOverrides(plan)

	if err := plan.Validate(); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return plan, nil
}

func toDomain(pf *Planfile) (*domain.Plan, error) {
	settle := defaultSettleDelay
	if pf.Environment.SettleDelay != "" {
		d, err := time.ParseDuration(pf.Environment.SettleDelay)
		if err != nil {
			return nil, zerr.Wrap(err, "invalid settleDelay")
		}
		settle = d
	}

	plan := &domain.Plan{
		Environment: domain.Environment{
			VenvPath:      pf.Environment.Venv,
			Python:        pf.Environment.Python,
			WorkspaceRoot: pf.Environment.Workspace,
			PluginRoot:    pf.Environment.PluginRoot,
			Service:       pf.Environment.Service,
			SettleDelay:   settle,
		},
		Framework:     depToDomain(pf.Framework, domain.RoleFramework),
		Frontend:      depToDomain(pf.Frontend, domain.RoleFrontend),
		IgnorePlugins: pf.IgnorePlugins,
	}
	// The framework and frontend are always critical; that is what makes
	// their reconciliation worth drift-checking.
	plan.Framework.Critical = true
	if plan.Frontend.Name != "" {
		plan.Frontend.Critical = true
	}

	for _, dto := range pf.Auxiliary {
		plan.Auxiliary = append(plan.Auxiliary, depToDomain(dto, domain.RoleAuxiliary))
	}
	for _, dto := range pf.Verify {
		plan.Verify = append(plan.Verify, depToDomain(dto, domain.RoleAuxiliary))
	}
	for _, dto := range pf.Plugins {
		critical := true
		if dto.Critical != nil {
			critical = *dto.Critical
		}
		plan.Plugins = append(plan.Plugins, domain.PluginSpec{
			Name:     dto.Name,
			Repo:     dto.Repo,
			Critical: critical,
		})
	}

	if pf.AppRequirements != "" {
		req := pf.AppRequirements
		if !filepath.IsAbs(req) {
			req = filepath.Join(plan.Environment.WorkspaceRoot, req)
		}
		plan.AppRequirements = req
	}
	return plan, nil
}

func depToDomain(dto DependencyDTO, role domain.DependencyRole) domain.DependencySpec {
	if dto.Role != "" {
		role = domain.DependencyRole(dto.Role)
	}
	return domain.DependencySpec{
		Name:     dto.Name,
		Version:  dto.Version,
		Import:   dto.Import,
		IndexURL: dto.Index,
		Critical: dto.Critical,
		Role:     role,
	}
}

func applyEnvOverrides(plan *domain.Plan) {
	if v := os.Getenv(envVenv); v != "" {
		plan.Environment.VenvPath = v
	}
	if v := os.Getenv(envPython); v != "" {
		plan.Environment.Python = v
	}
	if v := os.Getenv(envWorkspace); v != "" {
		plan.Environment.WorkspaceRoot = v
	}
}
