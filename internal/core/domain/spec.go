package domain

// DependencyRole tags a dependency spec with the part it plays in the runtime stack.
// The orchestrator treats the framework and frontend roles specially (drift
// re-checks, requirements filtering); everything else is auxiliary.
type DependencyRole string

const (
	// RoleFramework is the deep-learning runtime framework (the risky install).
	RoleFramework DependencyRole = "framework"
	// RoleCompiler is the compiler toolkit paired with the framework.
	RoleCompiler DependencyRole = "compiler"
	// RoleFrontend is the served application's UI frontend package.
	RoleFrontend DependencyRole = "frontend"
	// RoleAuxiliary is any other supporting package.
	RoleAuxiliary DependencyRole = "auxiliary"
)

// DependencySpec declares a desired installed package.
type DependencySpec struct {
	// Name is the package name as known to the package index.
	Name string

	// Version is the required version, optionally with a hardware build tag
	// (e.g. "2.7.0+cu128"). Empty means any importable version is accepted.
	Version string

	// Import is the module name used for the import probe.
	// Defaults to Name when empty.
	Import string

	// IndexURL is an alternate package index for the install, if any.
	IndexURL string

	// Critical marks specs whose failure counts against overall verification.
	Critical bool

	// Role tags the spec for orchestrator special-casing.
	Role DependencyRole
}

// ImportName returns the module name to probe.
func (s DependencySpec) ImportName() string {
	if s.Import != "" {
		return s.Import
	}
	return s.Name
}

// Pin returns the package-manager requirement string, e.g. "torch==2.7.0+cu128".
func (s DependencySpec) Pin() string {
	if s.Version == "" {
		return s.Name
	}
	return s.Name + "==" + s.Version
}

// RequiredVersion parses the spec's version requirement.
// Returns a zero Version when the spec carries no version.
func (s DependencySpec) RequiredVersion() (Version, error) {
	if s.Version == "" {
		return Version{}, nil
	}
	return ParseVersion(s.Version)
}

// PluginSpec declares a desired plugin checkout under the plugin root.
type PluginSpec struct {
	// Name is the directory name under the plugin root.
	Name string

	// Repo is the clone URL. Empty for plugins discovered by the sweep,
	// which cannot be re-cloned.
	Repo string

	// Critical marks plugins whose manifest failure is a hard failure
	// rather than a degradation.
	Critical bool
}
