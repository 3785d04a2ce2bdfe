// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/comfyops/comfyprov/internal/adapters/config"
	_ "github.com/comfyops/comfyprov/internal/adapters/git"
	_ "github.com/comfyops/comfyprov/internal/adapters/logger"
	_ "github.com/comfyops/comfyprov/internal/adapters/pip"
	_ "github.com/comfyops/comfyprov/internal/adapters/shell"
	_ "github.com/comfyops/comfyprov/internal/adapters/state"
	_ "github.com/comfyops/comfyprov/internal/adapters/supervisor"
	// Register app and engine nodes.
	_ "github.com/comfyops/comfyprov/internal/app"
	_ "github.com/comfyops/comfyprov/internal/engine/reconcile"
)
