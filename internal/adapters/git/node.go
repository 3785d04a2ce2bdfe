package git

import (
	"context"

	"github.com/comfyops/comfyprov/internal/adapters/shell"
	"github.com/comfyops/comfyprov/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the cloner Graft node.
const NodeID graft.ID = "adapter.cloner"

func init() {
	graft.Register(graft.Node[ports.Cloner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.Cloner, error) {
			runner, err := graft.Dep[ports.Runner](ctx)
			if err != nil {
				return nil, err
			}
			return NewCloner(runner), nil
		},
	})
}
