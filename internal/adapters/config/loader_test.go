package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comfyops/comfyprov/internal/adapters/config"
	"github.com/comfyops/comfyprov/internal/core/domain"
)

const samplePlan = `
version: "1"
environment:
  venv: /opt/venv
  workspace: /srv/comfyui
  pluginRoot: /srv/comfyui/custom_nodes
  service: comfyui
  settleDelay: 10s
framework:
  name: torch
  version: "2.7.0+cu128"
  index: https://download.pytorch.org/whl/cu128
auxiliary:
  - name: nvidia-cuda-runtime-cu12
    version: "12.8"
    import: nvidia
    role: compiler
  - name: xformers
frontend:
  name: comfyui-frontend-package
  version: "1.23.4"
appRequirements: requirements.txt
plugins:
  - name: ComfyUI-Manager
    repo: https://github.com/ltdrdata/ComfyUI-Manager.git
  - name: was-node-suite-comfyui
    repo: https://github.com/WASasquatch/was-node-suite-comfyui.git
    critical: false
ignorePlugins:
  - example_node
verify:
  - name: torch
    version: "2.7.0"
`

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "provision.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	plan, err := config.Load(writePlan(t, samplePlan))
	require.NoError(t, err)

	assert.Equal(t, "/opt/venv", plan.Environment.VenvPath)
	assert.Equal(t, "comfyui", plan.Environment.Service)
	assert.Equal(t, 10*time.Second, plan.Environment.SettleDelay)

	assert.Equal(t, "torch", plan.Framework.Name)
	assert.Equal(t, "2.7.0+cu128", plan.Framework.Version)
	assert.Equal(t, domain.RoleFramework, plan.Framework.Role)
	assert.True(t, plan.Framework.Critical)

	require.Len(t, plan.Auxiliary, 2)
	assert.Equal(t, domain.RoleCompiler, plan.Auxiliary[0].Role)
	assert.Equal(t, "nvidia", plan.Auxiliary[0].ImportName())
	assert.Equal(t, domain.RoleAuxiliary, plan.Auxiliary[1].Role)

	assert.Equal(t, domain.RoleFrontend, plan.Frontend.Role)
	assert.True(t, plan.Frontend.Critical)

	// Relative manifest paths are anchored at the workspace.
	assert.Equal(t, filepath.Join("/srv/comfyui", "requirements.txt"), plan.AppRequirements)

	require.Len(t, plan.Plugins, 2)
	assert.True(t, plan.Plugins[0].Critical)
	assert.False(t, plan.Plugins[1].Critical)

	assert.True(t, plan.Ignored("example_node"))
	require.Len(t, plan.Verify, 1)
}

func TestLoad_DefaultSettleDelay(t *testing.T) {
	plan, err := config.Load(writePlan(t, `
environment:
  venv: /opt/venv
  pluginRoot: /srv/nodes
framework:
  name: torch
  version: "2.7.0"
`))
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, plan.Environment.SettleDelay)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := config.Load(writePlan(t, "environment: [broken"))
	require.Error(t, err)
}

func TestLoad_InvalidSettleDelay(t *testing.T) {
	_, err := config.Load(writePlan(t, `
environment:
  venv: /opt/venv
  pluginRoot: /srv/nodes
  settleDelay: soon
framework:
  name: torch
  version: "2.7.0"
`))
	require.Error(t, err)
}

func TestLoad_ValidationFailure(t *testing.T) {
	_, err := config.Load(writePlan(t, `
environment:
  venv: /opt/venv
  pluginRoot: /srv/nodes
framework:
  name: torch
`))
	require.ErrorIs(t, err, domain.ErrInvalidPlan)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("COMFYPROV_VENV", "/opt/other-venv")
	t.Setenv("COMFYPROV_PYTHON", "/usr/bin/python3.12")

	plan, err := config.Load(writePlan(t, samplePlan))
	require.NoError(t, err)

	assert.Equal(t, "/opt/other-venv", plan.Environment.VenvPath)
	assert.Equal(t, "/usr/bin/python3.12", plan.Environment.Python)
}

func TestLoader_SetPath(t *testing.T) {
	path := writePlan(t, samplePlan)

	l := config.NewLoader()
	l.SetPath(path)

	plan, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "torch", plan.Framework.Name)

	// Empty path keeps the previous value.
	l.SetPath("")
	_, err = l.Load()
	require.NoError(t, err)
}
