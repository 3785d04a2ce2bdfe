package logger_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/comfyops/comfyprov/internal/adapters/logger"
)

// newBuffered returns a logger writing into the given buffer instead of stderr.
func newBuffered(t *testing.T, buf *bytes.Buffer) interface {
	Info(string)
	Warn(string)
	Error(error)
} {
	t.Helper()
	lg, ok := logger.New().(*logger.Logger)
	if !ok {
		t.Fatal("expected logger.New to return *logger.Logger")
	}
	lg.SetOutput(buf)
	return lg
}

func TestLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	lg := newBuffered(t, &buf)

	lg.Info("some message")

	output := buf.String()
	if !strings.Contains(output, "some message") {
		t.Errorf("Expected output to contain 'some message', got: %s", output)
	}
	if !strings.Contains(output, "INFO") {
		t.Errorf("Expected output to contain 'INFO', got: %s", output)
	}
}

func TestLogger_Warn(t *testing.T) {
	var buf bytes.Buffer
	lg := newBuffered(t, &buf)

	lg.Warn("some warning")

	output := buf.String()
	if !strings.Contains(output, "some warning") {
		t.Errorf("Expected output to contain 'some warning', got: %s", output)
	}
	if !strings.Contains(output, "WARN") {
		t.Errorf("Expected output to contain 'WARN', got: %s", output)
	}
}

func TestLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	lg := newBuffered(t, &buf)

	lg.Error(errors.New("pip bootstrap failed"))

	output := buf.String()
	if !strings.Contains(output, "pip bootstrap failed") {
		t.Errorf("Expected output to contain the error message, got: %s", output)
	}
	if !strings.Contains(output, "ERROR") {
		t.Errorf("Expected output to contain 'ERROR', got: %s", output)
	}
}

func TestNew(t *testing.T) {
	if logger.New() == nil {
		t.Fatal("Expected New() to return a non-nil logger")
	}
}
