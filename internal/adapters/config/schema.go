package config

// Planfile represents the structure of the provision.yaml configuration file.
type Planfile struct {
	Version     string          `yaml:"version"`
	Environment EnvironmentDTO  `yaml:"environment"`
	Framework   DependencyDTO   `yaml:"framework"`
	Auxiliary   []DependencyDTO `yaml:"auxiliary"`
	Frontend    DependencyDTO   `yaml:"frontend"`

	// AppRequirements is the served application's own manifest,
	// relative to the workspace root unless absolute.
	AppRequirements string `yaml:"appRequirements"`

	Plugins       []PluginDTO     `yaml:"plugins"`
	IgnorePlugins []string        `yaml:"ignorePlugins"`
	Verify        []DependencyDTO `yaml:"verify"`
}

// EnvironmentDTO represents the target environment in the configuration.
type EnvironmentDTO struct {
	Venv        string `yaml:"venv"`
	Python      string `yaml:"python"`
	Workspace   string `yaml:"workspace"`
	PluginRoot  string `yaml:"pluginRoot"`
	Service     string `yaml:"service"`
	SettleDelay string `yaml:"settleDelay"`
}

// DependencyDTO represents a dependency spec in the configuration.
type DependencyDTO struct {
	Name     string `yaml:"name"`
	Version  string `yaml:"version"`
	Import   string `yaml:"import"`
	Index    string `yaml:"index"`
	Critical bool   `yaml:"critical"`

	// Role optionally tags an auxiliary spec, e.g. "compiler" for the
	// toolkit whose version belongs in the run marker.
	Role string `yaml:"role"`
}

// PluginDTO represents a critical plugin in the configuration.
type PluginDTO struct {
	Name     string `yaml:"name"`
	Repo     string `yaml:"repo"`
	Critical *bool  `yaml:"critical"`
}
