// Package pip wraps the external pip package manager.
package pip

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/comfyops/comfyprov/internal/core/domain"
	"github.com/comfyops/comfyprov/internal/core/ports"
	"go.trai.ch/zerr"
)

// bootstrapURL is the known-good pip bootstrap installer used by the last
// repair attempt.
const bootstrapURL = "https://bootstrap.pypa.io/get-pip.py"

// Client implements ports.PackageManager by shelling out to the target
// environment's interpreter.
type Client struct {
	runner ports.Runner
	logger ports.Logger
}

// NewClient creates a new pip client.
func NewClient(runner ports.Runner, logger ports.Logger) *Client {
	return &Client{runner: runner, logger: logger}
}

// Ready probes pip itself via `python -m pip --version`.
func (c *Client) Ready(ctx context.Context, env domain.ExecEnv) error {
	_, err := c.run(ctx, env, env.Python, "-m", "pip", "--version")
	if err != nil {
		return zerr.Wrap(err, "pip probe failed")
	}
	return nil
}

// Repair makes pip usable again with three ordered attempts: the direct
// probe, pip's own ensurepip bootstrap, and finally a fetched get-pip.py run
// with a forced reinstall. Returns domain.ErrPipUnrepairable when all fail.
func (c *Client) Repair(ctx context.Context, env domain.ExecEnv) error {
	if err := c.Ready(ctx, env); err == nil {
		return nil
	}

	c.logger.Warn("pip not answering, attempting ensurepip bootstrap")
	if _, err := c.run(ctx, env, env.Python, "-m", "ensurepip", "--upgrade"); err != nil {
		c.logger.Error(zerr.Wrap(err, "ensurepip bootstrap failed"))
	} else if err := c.Ready(ctx, env); err == nil {
		c.logger.Info("pip repaired via ensurepip")
		return nil
	}

	c.logger.Warn("ensurepip did not help, fetching bootstrap installer")
	if err := c.bootstrap(ctx, env); err != nil {
		c.logger.Error(err)
		return zerr.With(domain.ErrPipUnrepairable, "python", env.Python)
	}
	if err := c.Ready(ctx, env); err != nil {
		return zerr.With(domain.ErrPipUnrepairable, "python", env.Python)
	}
	c.logger.Info("pip repaired via bootstrap installer")
	return nil
}

// bootstrap fetches get-pip.py and runs it with a forced reinstall.
func (c *Client) bootstrap(ctx context.Context, env domain.ExecEnv) error {
	script := filepath.Join(os.TempDir(), "get-pip.py")
	defer os.Remove(script)

	if _, err := c.run(ctx, env, "curl", "-sSL", "-o", script, bootstrapURL); err != nil {
		return zerr.Wrap(err, "failed to fetch bootstrap installer")
	}
	if _, err := c.run(ctx, env, env.Python, script, "--force-reinstall"); err != nil {
		return zerr.Wrap(err, "bootstrap installer failed")
	}
	return nil
}

// Probe imports the module in the target interpreter and returns its
// __version__, or domain.ErrNotInstalled when the import fails.
func (c *Client) Probe(ctx context.Context, env domain.ExecEnv, module string) (string, error) {
	code := fmt.Sprintf("import %s; print(getattr(%s, '__version__', ''))", module, module)
	res, err := c.run(ctx, env, env.Python, "-c", code)
	if err != nil {
		return "", zerr.With(domain.ErrNotInstalled, "module", module)
	}
	return strings.TrimSpace(res.Stdout), nil
}

// Install installs a single requirement string.
func (c *Client) Install(ctx context.Context, env domain.ExecEnv, pin string, opts ports.InstallOptions) error {
	args := []string{"-m", "pip", "install"}
	if opts.ForceReinstall {
		// A clean reinstall of an exact pin. Skipping dependency
		// resolution keeps the resolver from dragging the rest of the
		// environment along with it.
		args = append(args, "--force-reinstall", "--no-deps")
	}
	if opts.IndexURL != "" {
		args = append(args, "--index-url", opts.IndexURL)
	}
	args = append(args, pin)

	if _, err := c.run(ctx, env, env.Python, args...); err != nil {
		installErr := zerr.Wrap(err, domain.ErrInstallFailed.Error())
		return zerr.With(installErr, "pin", pin)
	}
	return nil
}

// InstallRequirements installs a requirements manifest. Lines naming a
// package in exclude are dropped first, via a filtered temporary copy.
func (c *Client) InstallRequirements(ctx context.Context, env domain.ExecEnv, path string, exclude []string) error {
	target := path
	if len(exclude) > 0 {
		filtered, cleanup, err := filterRequirements(path, exclude)
		if err != nil {
			return err
		}
		if filtered != "" {
			defer cleanup()
			target = filtered
		}
	}

	if _, err := c.run(ctx, env, env.Python, "-m", "pip", "install", "-r", target); err != nil {
		installErr := zerr.Wrap(err, domain.ErrInstallFailed.Error())
		return zerr.With(installErr, "manifest", path)
	}
	return nil
}

func (c *Client) run(ctx context.Context, env domain.ExecEnv, name string, args ...string) (ports.Result, error) {
	return c.runner.Run(ctx, ports.Command{
		Name:        name,
		Args:        args,
		Dir:         env.Dir,
		Env:         env.Env,
		PathPrepend: env.PathPrepend,
	})
}

// filterRequirements writes a copy of the manifest without the excluded
// packages. Returns "" when nothing was dropped, so the caller can install
// the original file untouched.
func filterRequirements(path string, exclude []string) (string, func(), error) {
	data, err := os.ReadFile(path) //nolint:gosec // plan-provided manifest path
	if err != nil {
		return "", nil, zerr.Wrap(err, "failed to read requirements manifest")
	}

	lines := strings.Split(string(data), "\n")
	kept := make([]string, 0, len(lines))
	dropped := false
	for _, line := range lines {
		if excluded(line, exclude) {
			dropped = true
			continue
		}
		kept = append(kept, line)
	}
	if !dropped {
		return "", nil, nil
	}

	tmp, err := os.CreateTemp("", "requirements-*.txt")
	if err != nil {
		return "", nil, zerr.Wrap(err, "failed to create filtered manifest")
	}
	if _, err := tmp.WriteString(strings.Join(kept, "\n")); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", nil, zerr.Wrap(err, "failed to write filtered manifest")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", nil, zerr.Wrap(err, "failed to close filtered manifest")
	}
	name := tmp.Name()
	return name, func() { os.Remove(name) }, nil
}

// excluded reports whether a requirements line names one of the excluded
// packages. The package name ends at the first version or extras operator.
func excluded(line string, exclude []string) bool {
	name := strings.TrimSpace(line)
	if name == "" || strings.HasPrefix(name, "#") {
		return false
	}
	if idx := strings.IndexAny(name, " \t=<>!~[;"); idx >= 0 {
		name = name[:idx]
	}
	for _, ex := range exclude {
		if strings.EqualFold(name, ex) {
			return true
		}
	}
	return false
}
