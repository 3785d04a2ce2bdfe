// Package reconcile implements the dependency and plugin reconcilers.
package reconcile

import (
	"context"
	"fmt"

	"github.com/comfyops/comfyprov/internal/core/domain"
	"github.com/comfyops/comfyprov/internal/core/ports"
	"go.trai.ch/zerr"
)

// Dependencies reconciles package dependency specs against the target
// environment. It never invokes the package manager for a spec that already
// satisfies its requirement.
type Dependencies struct {
	pip    ports.PackageManager
	logger ports.Logger
}

// NewDependencies creates a new dependency reconciler.
func NewDependencies(pip ports.PackageManager, logger ports.Logger) *Dependencies {
	return &Dependencies{pip: pip, logger: logger}
}

// Check probes a spec without mutating anything. It returns the classified
// status and the detected version string (empty when not installed).
func (d *Dependencies) Check(ctx context.Context, env domain.ExecEnv, spec domain.DependencySpec) (domain.VersionStatus, string) {
	detectedStr, err := d.pip.Probe(ctx, env, spec.ImportName())
	if err != nil {
		return domain.VersionNotInstalled, ""
	}
	if spec.Version == "" {
		// Importable is the whole requirement.
		return domain.VersionSatisfied, detectedStr
	}

	required, err := spec.RequiredVersion()
	if err != nil {
		// Unreachable for validated plans; treat as a mismatch so the
		// pinned install still runs.
		d.logger.Error(zerr.With(err, "spec", spec.Name))
		return domain.VersionUpgradeRequired, detectedStr
	}

	detected, err := domain.ParseVersion(detectedStr)
	if err != nil {
		d.logger.Warn(fmt.Sprintf("%s reports unparseable version %q, forcing reinstall", spec.Name, detectedStr))
		return domain.VersionUpgradeRequired, detectedStr
	}
	return domain.EvaluateVersion(&detected, required), detectedStr
}

// Ensure reconciles one spec to its desired state.
//
// Already-satisfied specs cause zero package-manager invocations. A detected
// version mismatch forces a clean reinstall; plain absence installs normally.
// When post-install verification fails, one forced reinstall is retried
// before giving up.
func (d *Dependencies) Ensure(ctx context.Context, env domain.ExecEnv, spec domain.DependencySpec) (domain.Outcome, error) {
	status, detected := d.Check(ctx, env, spec)
	if status == domain.VersionSatisfied {
		d.logger.Info(fmt.Sprintf("%s %s already satisfied", spec.Name, detected))
		return domain.OutcomeSatisfied, nil
	}

	mismatch := status == domain.VersionUpgradeRequired
	if mismatch {
		d.logger.Info(fmt.Sprintf("%s %s does not satisfy %s, reinstalling", spec.Name, detected, spec.Version))
	} else {
		d.logger.Info(fmt.Sprintf("%s not installed, installing %s", spec.Name, spec.Pin()))
	}

	opts := ports.InstallOptions{
		IndexURL:       spec.IndexURL,
		ForceReinstall: mismatch,
	}
	if err := d.pip.Install(ctx, env, spec.Pin(), opts); err != nil {
		return domain.OutcomeFailed, err
	}

	if verified, _ := d.Check(ctx, env, spec); verified == domain.VersionSatisfied {
		return installedOutcome(mismatch), nil
	}

	if !opts.ForceReinstall {
		// Verification failed after a plain install; one forced clean
		// reinstall before giving up.
		d.logger.Warn(fmt.Sprintf("%s did not verify after install, retrying with forced reinstall", spec.Name))
		opts.ForceReinstall = true
		if err := d.pip.Install(ctx, env, spec.Pin(), opts); err != nil {
			return domain.OutcomeFailed, err
		}
		if verified, _ := d.Check(ctx, env, spec); verified == domain.VersionSatisfied {
			return installedOutcome(mismatch), nil
		}
	}

	failErr := zerr.With(domain.ErrInstallFailed, "spec", spec.Name)
	return domain.OutcomeFailed, zerr.With(failErr, "pin", spec.Pin())
}

func installedOutcome(mismatch bool) domain.Outcome {
	if mismatch {
		return domain.OutcomeRepaired
	}
	return domain.OutcomeInstalled
}
