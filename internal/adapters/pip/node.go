package pip

import (
	"context"

	"github.com/comfyops/comfyprov/internal/adapters/logger"
	"github.com/comfyops/comfyprov/internal/adapters/shell"
	"github.com/comfyops/comfyprov/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the package manager Graft node.
const NodeID graft.ID = "adapter.package_manager"

func init() {
	graft.Register(graft.Node[ports.PackageManager]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.PackageManager, error) {
			runner, err := graft.Dep[ports.Runner](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewClient(runner, log), nil
		},
	})
}
