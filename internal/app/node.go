package app

import (
	"context"

	"github.com/comfyops/comfyprov/internal/adapters/config"     //nolint:depguard // Wired in app layer
	"github.com/comfyops/comfyprov/internal/adapters/logger"     //nolint:depguard // Wired in app layer
	"github.com/comfyops/comfyprov/internal/adapters/pip"        //nolint:depguard // Wired in app layer
	"github.com/comfyops/comfyprov/internal/adapters/state"      //nolint:depguard // Wired in app layer
	"github.com/comfyops/comfyprov/internal/adapters/supervisor" //nolint:depguard // Wired in app layer
	"github.com/comfyops/comfyprov/internal/core/ports"
	"github.com/comfyops/comfyprov/internal/engine/reconcile"
	"github.com/grindlemire/graft"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components the CLI needs.
type Components struct {
	App    *App
	Logger ports.Logger
	Store  ports.StateStore
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			pip.NodeID,
			reconcile.DependenciesNodeID,
			reconcile.PluginsNodeID,
			supervisor.NodeID,
			state.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			state.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.StateStore](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: application, Logger: log, Store: store}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	pm, err := graft.Dep[ports.PackageManager](ctx)
	if err != nil {
		return nil, err
	}
	deps, err := graft.Dep[*reconcile.Dependencies](ctx)
	if err != nil {
		return nil, err
	}
	plugins, err := graft.Dep[*reconcile.Plugins](ctx)
	if err != nil {
		return nil, err
	}
	sup, err := graft.Dep[ports.Supervisor](ctx)
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
	return New(loader, pm, deps, plugins, sup, store, log), nil
}
