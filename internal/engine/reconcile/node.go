package reconcile

import (
	"context"

	"github.com/comfyops/comfyprov/internal/adapters/git"    //nolint:depguard // Wired in engine wiring
	"github.com/comfyops/comfyprov/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"github.com/comfyops/comfyprov/internal/adapters/pip"    //nolint:depguard // Wired in engine wiring
	"github.com/comfyops/comfyprov/internal/adapters/state"  //nolint:depguard // Wired in engine wiring
	"github.com/comfyops/comfyprov/internal/core/ports"
	"github.com/grindlemire/graft"
)

const (
	// DependenciesNodeID is the unique identifier for the dependency reconciler Graft node.
	DependenciesNodeID graft.ID = "engine.reconcile.dependencies"
	// PluginsNodeID is the unique identifier for the plugin reconciler Graft node.
	PluginsNodeID graft.ID = "engine.reconcile.plugins"
)

func init() {
	graft.Register(graft.Node[*Dependencies]{
		ID:        DependenciesNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{pip.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Dependencies, error) {
			pm, err := graft.Dep[ports.PackageManager](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewDependencies(pm, log), nil
		},
	})

	graft.Register(graft.Node[*Plugins]{
		ID:        PluginsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{git.NodeID, pip.NodeID, state.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Plugins, error) {
			cloner, err := graft.Dep[ports.Cloner](ctx)
			if err != nil {
				return nil, err
			}
			pm, err := graft.Dep[ports.PackageManager](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.StateStore](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewPlugins(cloner, pm, store, log), nil
		},
	})
}
