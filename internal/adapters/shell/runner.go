// Package shell provides the os/exec command runner adapter.
package shell

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/comfyops/comfyprov/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner implements ports.Runner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes the command to completion, capturing stdout and stderr while
// streaming them line-by-line to the logger.
//
// The command environment is os.Environ() with cmd.Env applied on top.
// cmd.PathPrepend is prepended to PATH the way virtualenv activation does.
func (r *Runner) Run(ctx context.Context, cmd ports.Command) (ports.Result, error) {
	env := resolveEnvironment(os.Environ(), cmd.Env, cmd.PathPrepend)

	executable := cmd.Name
	if !filepath.IsAbs(executable) {
		if lp, err := lookPath(executable, env); err == nil {
			executable = lp
		}
	}

	execCmd := exec.CommandContext(ctx, executable, cmd.Args...) //nolint:gosec // plan-provided command
	if len(execCmd.Args) > 0 {
		execCmd.Args[0] = cmd.Name
	}
	if cmd.Dir != "" {
		execCmd.Dir = cmd.Dir
	}
	execCmd.Env = env

	var stdout, stderr bytes.Buffer
	outWriter := &lineWriter{logger: r.logger}
	errWriter := &lineWriter{logger: r.logger, warn: true}
	execCmd.Stdout = io.MultiWriter(&stdout, outWriter)
	execCmd.Stderr = io.MultiWriter(&stderr, errWriter)

	runErr := execCmd.Run()
	outWriter.flush()
	errWriter.flush()

	res := ports.Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if runErr != nil {
		res.ExitCode = -1
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			res.ExitCode = exitErr.ExitCode()
		}
		err := zerr.Wrap(runErr, "command failed")
		err = zerr.With(err, "command", cmd.Name)
		err = zerr.With(err, "exit_code", res.ExitCode)
		return res, zerr.With(err, "stderr", tail(res.Stderr))
	}

	return res, nil
}

// lineWriter buffers partial writes and forwards complete lines to the logger.
type lineWriter struct {
	logger ports.Logger
	warn   bool
	buf    strings.Builder
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	for {
		s := w.buf.String()
		idx := strings.IndexByte(s, '\n')
		if idx < 0 {
			break
		}
		w.emit(s[:idx])
		w.buf.Reset()
		w.buf.WriteString(s[idx+1:])
	}
	return len(p), nil
}

func (w *lineWriter) flush() {
	if w.buf.Len() > 0 {
		w.emit(w.buf.String())
		w.buf.Reset()
	}
}

func (w *lineWriter) emit(line string) {
	line = strings.TrimRight(line, "\r")
	if line == "" {
		return
	}
	if w.warn {
		w.logger.Warn(line)
	} else {
		w.logger.Info(line)
	}
}

// tail returns the last few lines of s for error metadata.
func tail(s string) string {
	s = strings.TrimSpace(s)
	lines := strings.Split(s, "\n")
	if len(lines) > 5 {
		lines = lines[len(lines)-5:]
	}
	return strings.Join(lines, "\n")
}

// resolveEnvironment merges overrides onto the system environment.
// pathPrepend, when set, is put in front of the merged PATH.
func resolveEnvironment(sysEnv []string, overrides map[string]string, pathPrepend string) []string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range overrides {
		envMap[k] = v
	}
	if pathPrepend != "" {
		if sysPath, exists := envMap["PATH"]; exists && sysPath != "" {
			envMap["PATH"] = pathPrepend + string(os.PathListSeparator) + sysPath
		} else {
			envMap["PATH"] = pathPrepend
		}
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

// lookPath searches for an executable in the PATH of the given environment,
// not the PATH of this process.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}
	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
