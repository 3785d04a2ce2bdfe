// Package git provides the plugin cloner adapter wrapping the git CLI.
package git

import (
	"context"

	"github.com/comfyops/comfyprov/internal/core/domain"
	"github.com/comfyops/comfyprov/internal/core/ports"
	"go.trai.ch/zerr"
)

// Cloner implements ports.Cloner using the git CLI.
type Cloner struct {
	runner ports.Runner
}

// NewCloner creates a new Cloner.
func NewCloner(runner ports.Runner) *Cloner {
	return &Cloner{runner: runner}
}

// Clone checks out repo into dest, including submodules since several plugin
// repositories vendor model code that way.
func (c *Cloner) Clone(ctx context.Context, repo, dest string) error {
	_, err := c.runner.Run(ctx, ports.Command{
		Name: "git",
		Args: []string{"clone", "--recursive", repo, dest},
	})
	if err != nil {
		cloneErr := zerr.Wrap(err, domain.ErrCloneFailed.Error())
		cloneErr = zerr.With(cloneErr, "repo", repo)
		return zerr.With(cloneErr, "dest", dest)
	}
	return nil
}
