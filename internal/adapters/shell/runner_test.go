package shell_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/comfyops/comfyprov/internal/adapters/shell"
	"github.com/comfyops/comfyprov/internal/core/ports"
	"github.com/comfyops/comfyprov/internal/core/ports/mocks"
)

func TestRunner_Run_CapturesStdout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("hello").Times(1)

	runner := shell.NewRunner(mockLogger)

	res, err := runner.Run(context.Background(), ports.Command{
		Name: "sh",
		Args: []string{"-c", "echo hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello\n", res.Stdout)
	assert.Equal(t, 0, res.ExitCode)
}

func TestRunner_Run_MultiLineOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("line1").Times(1)
	mockLogger.EXPECT().Info("line2").Times(1)

	runner := shell.NewRunner(mockLogger)

	_, err := runner.Run(context.Background(), ports.Command{
		Name: "sh",
		Args: []string{"-c", "echo line1; echo line2"},
	})
	require.NoError(t, err)
}

func TestRunner_Run_FragmentedOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	// Partial writes buffer until the newline arrives.
	mockLogger.EXPECT().Info("part1part2").Times(1)

	runner := shell.NewRunner(mockLogger)

	_, err := runner.Run(context.Background(), ports.Command{
		Name: "sh",
		Args: []string{"-c", "printf part1; sleep 0.1; echo part2"},
	})
	require.NoError(t, err)
}

func TestRunner_Run_StderrGoesToWarn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn("oops").Times(1)

	runner := shell.NewRunner(mockLogger)

	res, err := runner.Run(context.Background(), ports.Command{
		Name: "sh",
		Args: []string{"-c", "echo oops >&2"},
	})
	require.NoError(t, err)
	assert.Equal(t, "oops\n", res.Stderr)
}

func TestRunner_Run_EnvironmentOverrides(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("test-value-123").Times(1)

	runner := shell.NewRunner(mockLogger)

	_, err := runner.Run(context.Background(), ports.Command{
		Name: "sh",
		Args: []string{"-c", "echo $MY_TEST_VAR"},
		Env:  map[string]string{"MY_TEST_VAR": "test-value-123"},
	})
	require.NoError(t, err)
}

func TestRunner_Run_PathPrepend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()

	binDir := t.TempDir()
	script := binDir + "/fakebin"
	writeExecutable(t, script, "#!/bin/sh\necho from-fakebin\n")

	runner := shell.NewRunner(mockLogger)

	res, err := runner.Run(context.Background(), ports.Command{
		Name:        "fakebin",
		PathPrepend: binDir,
	})
	require.NoError(t, err)
	assert.Equal(t, "from-fakebin\n", res.Stdout)
}

func TestRunner_Run_WorkingDirectory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()

	dir := t.TempDir()
	runner := shell.NewRunner(mockLogger)

	res, err := runner.Run(context.Background(), ports.Command{
		Name: "pwd",
		Dir:  dir,
	})
	require.NoError(t, err)
	assert.Contains(t, res.Stdout, dir)
}

func TestRunner_Run_NonZeroExit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()

	runner := shell.NewRunner(mockLogger)

	res, err := runner.Run(context.Background(), ports.Command{
		Name: "sh",
		Args: []string{"-c", "echo broken >&2; exit 3"},
	})
	require.Error(t, err)
	assert.Equal(t, 3, res.ExitCode)
	assert.Contains(t, res.Stderr, "broken")
}

func writeExecutable(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o755))
}

func TestRunner_Run_MissingExecutable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)

	runner := shell.NewRunner(mockLogger)

	_, err := runner.Run(context.Background(), ports.Command{
		Name: "definitely-not-a-real-binary-12345",
	})
	require.Error(t, err)
}
