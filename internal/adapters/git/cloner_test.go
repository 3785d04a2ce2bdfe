package git_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/comfyops/comfyprov/internal/adapters/git"
	"github.com/comfyops/comfyprov/internal/core/domain"
	"github.com/comfyops/comfyprov/internal/core/ports"
	"github.com/comfyops/comfyprov/internal/core/ports/mocks"
)

func TestCloner_Clone(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunner(ctrl)

	runner.EXPECT().
		Run(gomock.Any(), ports.Command{
			Name: "git",
			Args: []string{"clone", "--recursive", "https://example.com/repo.git", "/srv/nodes/repo"},
		}).
		Return(ports.Result{}, nil)

	cloner := git.NewCloner(runner)
	require.NoError(t, cloner.Clone(context.Background(), "https://example.com/repo.git", "/srv/nodes/repo"))
}

func TestCloner_Clone_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunner(ctrl)

	runner.EXPECT().
		Run(gomock.Any(), gomock.Any()).
		Return(ports.Result{ExitCode: 128}, errors.New("repository not found"))

	cloner := git.NewCloner(runner)
	err := cloner.Clone(context.Background(), "https://example.com/gone.git", "/srv/nodes/gone")
	require.Error(t, err)
	require.Contains(t, err.Error(), domain.ErrCloneFailed.Error())
}
