// Package app implements the provisioning run orchestrator.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/comfyops/comfyprov/internal/build"
	"github.com/comfyops/comfyprov/internal/core/domain"
	"github.com/comfyops/comfyprov/internal/core/ports"
	"github.com/comfyops/comfyprov/internal/engine/reconcile"
	"go.trai.ch/zerr"
)

// App sequences one provisioning run. The run is strictly sequential and
// blocking: every install, clone and health check completes before the next
// step begins.
type App struct {
	loader     ports.ConfigLoader
	pip        ports.PackageManager
	deps       *reconcile.Dependencies
	plugins    *reconcile.Plugins
	supervisor ports.Supervisor
	store      ports.StateStore
	logger     ports.Logger

	sleep  func(time.Duration)
	dryRun bool
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	pip ports.PackageManager,
	deps *reconcile.Dependencies,
	plugins *reconcile.Plugins,
	supervisor ports.Supervisor,
	store ports.StateStore,
	logger ports.Logger,
) *App {
	return &App{
		loader:     loader,
		pip:        pip,
		deps:       deps,
		plugins:    plugins,
		supervisor: supervisor,
		store:      store,
		logger:     logger,
		sleep:      time.Sleep,
	}
}

// SetConfigPath points the loader at an alternate plan file.
func (a *App) SetConfigPath(path string) {
	if s, ok := a.loader.(interface{ SetPath(string) }); ok {
		s.SetPath(path)
	}
}

// SetDryRun switches the run to probe-only mode: nothing is stopped,
// installed, cloned or deleted.
func (a *App) SetDryRun(dryRun bool) {
	a.dryRun = dryRun
}

// Run executes one provisioning run end to end.
//
// Only two conditions abort the run: an unrepairable package manager and a
// missing environment activation file. Every other failure is recorded in the
// report and the run continues, restarting the served application regardless
// of outcome.
func (a *App) Run(ctx context.Context) error {
	plan, err := a.loader.Load()
	if err != nil {
		return zerr.Wrap(err, "failed to load provisioning plan")
	}

	if a.dryRun {
		return a.preview(ctx, plan)
	}

	report := domain.NewReport()
	env := plan.Environment.Exec()
	pipOK := false
	allVerified := false

	// Stop the served application and give it time to fully shut down
	// before its environment is mutated.
	stopped := false
	if plan.Environment.Service != "" {
		if err := a.supervisor.Stop(ctx, plan.Environment.Service); err != nil {
			a.logger.Warn(fmt.Sprintf("failed to stop %s (may not be running): %v", plan.Environment.Service, err))
		}
		stopped = true
		a.sleep(plan.Environment.SettleDelay)
	}
	// Restart regardless of outcome. Partial functionality beats a fully
	// blocked restart loop; failures surface via logs and the marker.
	defer func() {
		if !stopped {
			return
		}
		if err := a.supervisor.Start(context.WithoutCancel(ctx), plan.Environment.Service); err != nil {
			a.logger.Error(zerr.Wrap(err, "failed to restart service"))
		}
	}()
	defer func() {
		a.writeMarker(ctx, env, plan, report, pipOK, allVerified)
	}()

	// Environment activation.
	if plan.Environment.VenvPath != "" {
		if err := plan.Environment.CheckActivatable(); err != nil {
			return err
		}
	}

	// The package manager must answer before anything else is attempted.
	if err := a.pip.Repair(ctx, env); err != nil {
		return err
	}
	pipOK = true

	// Runtime framework, the one install known to corrupt pip.
	fwOutcome, fwErr := a.deps.Ensure(ctx, env, plan.Framework)
	a.record(report, plan.Framework.Name, domain.KindDependency, fwOutcome, fwErr)
	freshFramework := fwOutcome == domain.OutcomeInstalled || fwOutcome == domain.OutcomeRepaired
	if fwOutcome != domain.OutcomeSatisfied {
		if err := a.pip.Repair(ctx, env); err != nil {
			pipOK = false
			return err
		}
	}

	// Auxiliary dependency specs.
	for _, spec := range plan.Auxiliary {
		outcome, err := a.deps.Ensure(ctx, env, spec)
		a.record(report, spec.Name, domain.KindDependency, outcome, err)
	}

	// The application's own manifest. When the framework was not freshly
	// pinned this run, its line is filtered out so a transitive resolver
	// cannot silently upgrade it.
	if plan.AppRequirements != "" {
		var exclude []string
		if !freshFramework {
			exclude = []string{plan.Framework.Name}
		}
		if err := a.pip.InstallRequirements(ctx, env, plan.AppRequirements, exclude); err != nil {
			a.record(report, "app-requirements", domain.KindDependency, domain.OutcomeFailed, err)
		} else {
			a.record(report, "app-requirements", domain.KindDependency, domain.OutcomeInstalled, nil)
		}
	}

	// UI frontend, pinned. Ensure retries with a forced clean reinstall
	// when verification fails.
	if plan.Frontend.Name != "" {
		outcome, err := a.deps.Ensure(ctx, env, plan.Frontend)
		a.record(report, plan.Frontend.Name, domain.KindDependency, outcome, err)
	}

	// Drift correction: the manifest and frontend steps may have moved the
	// framework. Detect and revert rather than merely report.
	if fwOutcome != domain.OutcomeFailed {
		if status, detected := a.deps.Check(ctx, env, plan.Framework); status != domain.VersionSatisfied {
			a.logger.Warn(fmt.Sprintf("%s drifted to %q after manifest installs, reverting", plan.Framework.Name, detected))
			outcome, err := a.deps.Ensure(ctx, env, plan.Framework)
			a.record(report, plan.Framework.Name, domain.KindDependency, outcome, err)
		}
	}

	// Plugins: stray entries first, then the critical list, then the sweep.
	root := plan.Environment.PluginRoot
	if _, err := a.plugins.CleanStray(root); err != nil {
		a.logger.Error(err)
	}
	done := make(map[string]bool, len(plan.Plugins))
	for _, spec := range plan.Plugins {
		if plan.Ignored(spec.Name) {
			continue
		}
		outcome, err := a.plugins.Ensure(ctx, env, root, spec)
		a.record(report, spec.Name, domain.KindPlugin, outcome, err)
		done[spec.Name] = true
	}
	swept, err := a.plugins.Sweep(ctx, env, root, done, plan.Ignored)
	if err != nil {
		a.logger.Error(err)
	}
	for _, entry := range swept {
		report.Record(entry.Name, entry.Kind, entry.Outcome, entry.Detail)
	}

	// Final verification of the critical package list.
	allVerified = true
	for _, e := range report.Entries() {
		if e.Kind == domain.KindDependency && e.Outcome == domain.OutcomeFailed {
			allVerified = false
		}
	}
	for _, spec := range plan.Verify {
		if status, _ := a.deps.Check(ctx, env, spec); status != domain.VersionSatisfied {
			allVerified = false
			a.record(report, spec.Name, domain.KindDependency, domain.OutcomeFailed,
				zerr.With(domain.ErrNotInstalled, "stage", "final verification"))
		}
	}

	counts := report.Counts()
	a.logger.Info(fmt.Sprintf(
		"run complete: %d satisfied, %d installed, %d repaired, %d degraded, %d failed",
		counts[domain.OutcomeSatisfied], counts[domain.OutcomeInstalled],
		counts[domain.OutcomeRepaired], counts[domain.OutcomeDegraded],
		counts[domain.OutcomeFailed],
	))

	return nil
}

// record logs a failure and appends the entry to the report.
func (a *App) record(report *domain.Report, name string, kind domain.EntryKind, outcome domain.Outcome, err error) {
	detail := ""
	if err != nil {
		detail = err.Error()
		a.logger.Error(zerr.With(err, "spec", name))
	}
	report.Record(name, kind, outcome, detail)
}

// writeMarker persists the run record. It runs on every path once the
// service has been stopped, including fatal aborts.
func (a *App) writeMarker(ctx context.Context, env domain.ExecEnv, plan *domain.Plan, report *domain.Report, pipOK, allVerified bool) {
	marker := domain.Marker{
		RunVersion:    build.Version,
		Timestamp:     time.Now().UTC(),
		PipOK:         pipOK,
		AllVerified:   allVerified,
		FailedPlugins: []string{},
		Outcomes:      report.Entries(),
	}
	if failed := report.FailedPlugins(); failed != nil {
		marker.FailedPlugins = failed
	}

	if pipOK {
		if _, v := a.deps.Check(ctx, env, plan.Framework); v != "" {
			marker.Framework = v
		}
		for _, spec := range plan.Auxiliary {
			if spec.Role == domain.RoleCompiler {
				_, marker.Compiler = a.deps.Check(ctx, env, spec)
			}
		}
		if plan.Frontend.Name != "" {
			_, marker.Frontend = a.deps.Check(ctx, env, plan.Frontend)
		}
	}

	if err := a.store.WriteMarker(marker); err != nil {
		a.logger.Error(zerr.Wrap(err, "failed to persist run marker"))
	}
}

// preview reports what a run would do without mutating anything.
func (a *App) preview(ctx context.Context, plan *domain.Plan) error {
	env := plan.Environment.Exec()

	if plan.Environment.VenvPath != "" {
		if err := plan.Environment.CheckActivatable(); err != nil {
			return err
		}
	}
	if err := a.pip.Ready(ctx, env); err != nil {
		a.logger.Warn(fmt.Sprintf("pip is not answering and would be repaired: %v", err))
	}

	specs := make([]domain.DependencySpec, 0, len(plan.Auxiliary)+2)
	specs = append(specs, plan.Framework)
	specs = append(specs, plan.Auxiliary...)
	if plan.Frontend.Name != "" {
		specs = append(specs, plan.Frontend)
	}
	for _, spec := range specs {
		status, detected := a.deps.Check(ctx, env, spec)
		switch status {
		case domain.VersionSatisfied:
			a.logger.Info(fmt.Sprintf("%s %s satisfied", spec.Name, detected))
		case domain.VersionUpgradeRequired:
			a.logger.Info(fmt.Sprintf("%s %s would be reinstalled as %s", spec.Name, detected, spec.Pin()))
		case domain.VersionNotInstalled:
			a.logger.Info(fmt.Sprintf("%s would be installed as %s", spec.Name, spec.Pin()))
		}
	}

	for _, spec := range plan.Plugins {
		if dirMissing(plan.Environment.PluginRoot, spec.Name) {
			a.logger.Info(fmt.Sprintf("plugin %s would be cloned from %s", spec.Name, spec.Repo))
		} else {
			a.logger.Info(fmt.Sprintf("plugin %s is present and would be health-checked", spec.Name))
		}
	}
	return nil
}

func dirMissing(root, name string) bool {
	info, err := os.Stat(filepath.Join(root, name))
	return err != nil || !info.IsDir()
}
