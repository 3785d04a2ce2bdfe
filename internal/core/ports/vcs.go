package ports

import "context"

// Cloner fetches plugin sources from a remote repository.
//
//go:generate go run go.uber.org/mock/mockgen -source=vcs.go -destination=mocks/mock_vcs.go -package=mocks
type Cloner interface {
	// Clone checks out repo into dest. Dest must not exist.
	Clone(ctx context.Context, repo, dest string) error
}
