package domain_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comfyops/comfyprov/internal/core/domain"
)

func validPlan() *domain.Plan {
	return &domain.Plan{
		Environment: domain.Environment{
			VenvPath:   "/opt/venv",
			PluginRoot: "/srv/app/custom_nodes",
		},
		Framework: domain.DependencySpec{
			Name: "torch", Version: "2.7.0+cu128", Role: domain.RoleFramework, Critical: true,
		},
	}
}

func TestPlan_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, validPlan().Validate())
	})

	t.Run("no interpreter at all", func(t *testing.T) {
		p := validPlan()
		p.Environment.VenvPath = ""
		require.ErrorIs(t, p.Validate(), domain.ErrInvalidPlan)
	})

	t.Run("explicit interpreter without venv is fine", func(t *testing.T) {
		p := validPlan()
		p.Environment.VenvPath = ""
		p.Environment.Python = "/usr/bin/python3"
		require.NoError(t, p.Validate())
	})

	t.Run("missing plugin root", func(t *testing.T) {
		p := validPlan()
		p.Environment.PluginRoot = ""
		require.ErrorIs(t, p.Validate(), domain.ErrInvalidPlan)
	})

	t.Run("unpinned framework", func(t *testing.T) {
		p := validPlan()
		p.Framework.Version = ""
		require.ErrorIs(t, p.Validate(), domain.ErrInvalidPlan)
	})

	t.Run("unparseable framework version", func(t *testing.T) {
		p := validPlan()
		p.Framework.Version = "latest"
		require.ErrorIs(t, p.Validate(), domain.ErrInvalidVersion)
	})

	t.Run("unpinned frontend", func(t *testing.T) {
		p := validPlan()
		p.Frontend = domain.DependencySpec{Name: "comfyui-frontend-package"}
		require.ErrorIs(t, p.Validate(), domain.ErrInvalidPlan)
	})

	t.Run("plugin without repo", func(t *testing.T) {
		p := validPlan()
		p.Plugins = []domain.PluginSpec{{Name: "ComfyUI-Manager"}}
		require.ErrorIs(t, p.Validate(), domain.ErrInvalidPlan)
	})

	t.Run("duplicate plugin", func(t *testing.T) {
		p := validPlan()
		p.Plugins = []domain.PluginSpec{
			{Name: "ComfyUI-Manager", Repo: "https://example.com/a.git"},
			{Name: "ComfyUI-Manager", Repo: "https://example.com/b.git"},
		}
		require.ErrorIs(t, p.Validate(), domain.ErrInvalidPlan)
	})
}

func TestPlan_Ignored(t *testing.T) {
	p := validPlan()
	p.IgnorePlugins = []string{"websocket_image_save.py", "example_node"}

	assert.True(t, p.Ignored("example_node"))
	assert.False(t, p.Ignored("ComfyUI-Manager"))
}

func TestEnvironment_Exec(t *testing.T) {
	env := domain.Environment{
		VenvPath:      "/opt/venv",
		WorkspaceRoot: "/srv/app",
	}
	exec := env.Exec()

	assert.Equal(t, filepath.Join("/opt/venv", "bin", "python"), exec.Python)
	assert.Equal(t, "/srv/app", exec.Dir)
	assert.Equal(t, filepath.Join("/opt/venv", "bin"), exec.PathPrepend)
	assert.Equal(t, "/opt/venv", exec.Env["VIRTUAL_ENV"])
	assert.Equal(t, "1", exec.Env["PIP_NO_INPUT"])
}

func TestEnvironment_PythonOverride(t *testing.T) {
	env := domain.Environment{VenvPath: "/opt/venv", Python: "/usr/local/bin/python3.12"}
	assert.Equal(t, "/usr/local/bin/python3.12", env.PythonPath())
	assert.Equal(t, "/usr/local/bin/python3.12", env.Exec().Python)
}

func TestEnvironment_CheckActivatable(t *testing.T) {
	venv := t.TempDir()
	env := domain.Environment{VenvPath: venv}

	err := env.CheckActivatable()
	require.ErrorIs(t, err, domain.ErrActivateMissing)

	require.NoError(t, os.MkdirAll(filepath.Join(venv, "bin"), 0o755))
	require.NoError(t, os.WriteFile(env.ActivatePath(), []byte("# activate"), 0o644))
	require.NoError(t, env.CheckActivatable())
}

func TestDependencySpec_Pin(t *testing.T) {
	pinned := domain.DependencySpec{Name: "torch", Version: "2.7.0+cu128"}
	assert.Equal(t, "torch==2.7.0+cu128", pinned.Pin())

	unpinned := domain.DependencySpec{Name: "pyyaml"}
	assert.Equal(t, "pyyaml", unpinned.Pin())
}

func TestDependencySpec_ImportName(t *testing.T) {
	spec := domain.DependencySpec{Name: "opencv-python", Import: "cv2"}
	assert.Equal(t, "cv2", spec.ImportName())

	plain := domain.DependencySpec{Name: "torch"}
	assert.Equal(t, "torch", plain.ImportName())
}
