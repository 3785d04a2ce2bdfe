package ports

import "github.com/comfyops/comfyprov/internal/core/domain"

// ConfigLoader loads the declarative provisioning plan.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads and validates the plan.
	Load() (*domain.Plan, error)
}
