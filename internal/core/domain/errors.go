package domain

import "go.trai.ch/zerr"

var (
	// ErrPipUnrepairable is returned when pip cannot be made usable after all repair attempts.
	ErrPipUnrepairable = zerr.New("pip is unusable and could not be repaired")

	// ErrActivateMissing is returned when the virtualenv activation file does not exist.
	ErrActivateMissing = zerr.New("environment activation file not found")

	// ErrNotInstalled is returned by an import probe when the module cannot be imported.
	ErrNotInstalled = zerr.New("package not installed")

	// ErrInstallFailed is returned when a package install command fails or does not stick.
	ErrInstallFailed = zerr.New("package install failed")

	// ErrCloneFailed is returned when cloning a plugin repository fails.
	ErrCloneFailed = zerr.New("plugin clone failed")

	// ErrPluginUnhealthy is returned when a plugin fails its health check.
	ErrPluginUnhealthy = zerr.New("plugin failed health check")

	// ErrInvalidVersion is returned when a version string has no parseable numeric components.
	ErrInvalidVersion = zerr.New("invalid version string")

	// ErrInvalidPlan is returned when the provisioning plan fails validation.
	ErrInvalidPlan = zerr.New("invalid provisioning plan")
)
