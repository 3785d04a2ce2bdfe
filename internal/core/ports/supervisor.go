package ports

import "context"

// Supervisor controls the served application through the process supervisor.
//
//go:generate go run go.uber.org/mock/mockgen -source=supervisor.go -destination=mocks/mock_supervisor.go -package=mocks
type Supervisor interface {
	// Stop stops the named service.
	Stop(ctx context.Context, service string) error

	// Start starts the named service.
	Start(ctx context.Context, service string) error
}
