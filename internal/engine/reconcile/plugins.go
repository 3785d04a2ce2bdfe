package reconcile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/comfyops/comfyprov/internal/core/domain"
	"github.com/comfyops/comfyprov/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// markerFile makes a plugin directory importable by the host application.
	markerFile = "__init__.py"

	// manifestFile is the per-plugin dependency manifest.
	manifestFile = "requirements.txt"
)

// Plugins reconciles plugin checkouts under the plugin root.
type Plugins struct {
	cloner ports.Cloner
	pip    ports.PackageManager
	store  ports.StateStore
	logger ports.Logger
}

// NewPlugins creates a new plugin reconciler.
func NewPlugins(cloner ports.Cloner, pip ports.PackageManager, store ports.StateStore, logger ports.Logger) *Plugins {
	return &Plugins{cloner: cloner, pip: pip, store: store, logger: logger}
}

// CleanStray deletes hidden directories and bytecode caches directly under
// the plugin root. Their presence makes the host application refuse to load
// any plugin at all, so this runs before any reconciliation.
// Returns the names removed.
func (p *Plugins) CleanStray(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read plugin root")
	}

	var removed []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, ".") && name != "__pycache__" {
			continue
		}
		if err := os.RemoveAll(filepath.Join(root, name)); err != nil {
			return removed, zerr.With(zerr.Wrap(err, "failed to remove stray directory"), "name", name)
		}
		p.logger.Warn(fmt.Sprintf("removed stray directory %s from plugin root", name))
		removed = append(removed, name)
	}
	return removed, nil
}

// Ensure reconciles one declared plugin through its state machine:
// absent plugins are cloned; present-but-unhealthy plugins are deleted and
// re-cloned once; a second failure is terminal.
func (p *Plugins) Ensure(ctx context.Context, env domain.ExecEnv, root string, spec domain.PluginSpec) (domain.Outcome, error) {
	dir := filepath.Join(root, spec.Name)

	if !dirExists(dir) {
		if err := p.cloner.Clone(ctx, spec.Repo, dir); err != nil {
			return domain.OutcomeFailed, err
		}
		degraded, err := p.health(ctx, env, dir, spec)
		if err != nil {
			return domain.OutcomeFailed, err
		}
		if degraded {
			return domain.OutcomeDegraded, nil
		}
		return domain.OutcomeInstalled, nil
	}

	degraded, err := p.health(ctx, env, dir, spec)
	if err == nil {
		if degraded {
			return domain.OutcomeDegraded, nil
		}
		return domain.OutcomeSatisfied, nil
	}

	if spec.Repo == "" {
		// Discovered by the sweep; nothing to re-clone from.
		if spec.Critical {
			return domain.OutcomeFailed, err
		}
		p.logger.Warn(fmt.Sprintf("plugin %s is unhealthy and has no known source, leaving degraded", spec.Name))
		return domain.OutcomeDegraded, nil
	}

	p.logger.Warn(fmt.Sprintf("plugin %s failed health check, re-cloning: %v", spec.Name, err))
	if err := os.RemoveAll(dir); err != nil {
		return domain.OutcomeFailed, zerr.Wrap(err, "failed to remove unhealthy plugin")
	}
	if err := p.cloner.Clone(ctx, spec.Repo, dir); err != nil {
		return domain.OutcomeFailed, err
	}
	degraded, err = p.health(ctx, env, dir, spec)
	if err != nil {
		return domain.OutcomeFailed, err
	}
	if degraded {
		return domain.OutcomeDegraded, nil
	}
	return domain.OutcomeRepaired, nil
}

// Sweep reconciles every directory under root that was not already handled
// and is not on the ignore list. Swept plugins have no clone URL and are
// never critical.
func (p *Plugins) Sweep(ctx context.Context, env domain.ExecEnv, root string, done map[string]bool, ignored func(string) bool) ([]domain.Entry, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read plugin root")
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if done[name] || ignored(name) {
			continue
		}
		if strings.HasPrefix(name, ".") || name == "__pycache__" {
			// CleanStray ran first; anything left is racing us and is
			// not a plugin either way.
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var results []domain.Entry
	for _, name := range names {
		spec := domain.PluginSpec{Name: name}
		outcome, err := p.Ensure(ctx, env, root, spec)
		detail := ""
		if err != nil {
			detail = err.Error()
			p.logger.Error(zerr.With(err, "plugin", name))
		}
		results = append(results, domain.Entry{
			Name:    name,
			Kind:    domain.KindPlugin,
			Outcome: outcome,
			Detail:  detail,
		})
	}
	return results, nil
}

// health checks a plugin in place: the directory must exist, the
// importability marker is created when missing, and an existing dependency
// manifest must install. Manifest failure is fatal for critical plugins and a
// single-retry degradation otherwise. The bool result reports degradation.
func (p *Plugins) health(ctx context.Context, env domain.ExecEnv, dir string, spec domain.PluginSpec) (bool, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false, zerr.With(domain.ErrPluginUnhealthy, "reason", "install path missing")
	}

	marker := filepath.Join(dir, markerFile)
	if _, err := os.Stat(marker); err != nil {
		// A missing marker alone does not indicate real breakage; create it.
		if err := os.WriteFile(marker, nil, 0o644); err != nil { //nolint:gosec // plugin tree is operator-owned
			return false, zerr.Wrap(err, "failed to create importability marker")
		}
		p.logger.Info(fmt.Sprintf("created missing %s for plugin %s", markerFile, spec.Name))
	}

	manifest := filepath.Join(dir, manifestFile)
	if _, err := os.Stat(manifest); err != nil {
		return false, nil
	}
	return p.installManifest(ctx, env, manifest, spec)
}

// installManifest installs the plugin manifest unless its content hash
// matches the last successful install.
func (p *Plugins) installManifest(ctx context.Context, env domain.ExecEnv, manifest string, spec domain.PluginSpec) (bool, error) {
	hash, err := hashFile(manifest)
	if err != nil {
		return false, err
	}
	if last, _ := p.store.ManifestHash(spec.Name); last != "" && last == hash {
		return false, nil
	}

	installErr := p.pip.InstallRequirements(ctx, env, manifest, nil)
	if installErr != nil && !spec.Critical {
		// Soft path: one retry before recording the plugin as degraded.
		p.logger.Warn(fmt.Sprintf("manifest install for %s failed, retrying once", spec.Name))
		installErr = p.pip.InstallRequirements(ctx, env, manifest, nil)
	}
	if installErr != nil {
		if spec.Critical {
			err := zerr.With(domain.ErrPluginUnhealthy, "plugin", spec.Name)
			return false, zerr.With(err, "manifest_error", installErr.Error())
		}
		p.logger.Error(zerr.With(installErr, "plugin", spec.Name))
		return true, nil
	}

	if err := p.store.PutManifestHash(spec.Name, hash); err != nil {
		p.logger.Error(zerr.With(err, "plugin", spec.Name))
	}
	return false, nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func hashFile(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // manifest path under the plugin root
	if err != nil {
		return "", zerr.Wrap(err, "failed to read manifest for hashing")
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data)), nil
}
