// Package supervisor controls the served application via supervisorctl.
package supervisor

import (
	"context"

	"github.com/comfyops/comfyprov/internal/core/ports"
	"go.trai.ch/zerr"
)

// Control implements ports.Supervisor using the supervisorctl CLI.
type Control struct {
	runner ports.Runner
}

// NewControl creates a new supervisor control adapter.
func NewControl(runner ports.Runner) *Control {
	return &Control{runner: runner}
}

// Stop stops the named service.
func (c *Control) Stop(ctx context.Context, service string) error {
	return c.invoke(ctx, "stop", service)
}

// Start starts the named service.
func (c *Control) Start(ctx context.Context, service string) error {
	return c.invoke(ctx, "start", service)
}

func (c *Control) invoke(ctx context.Context, action, service string) error {
	_, err := c.runner.Run(ctx, ports.Command{
		Name: "supervisorctl",
		Args: []string{action, service},
	})
	if err != nil {
		ctlErr := zerr.Wrap(err, "supervisorctl failed")
		ctlErr = zerr.With(ctlErr, "action", action)
		return zerr.With(ctlErr, "service", service)
	}
	return nil
}
