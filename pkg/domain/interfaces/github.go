package interfaces

import (
	"context"

	"github.com/m-mizutani/preflight/pkg/domain/model"
)

// PullRequestClient defines operations for retrieving pull request
// attributes from a hosting service
type PullRequestClient interface {
	// GetPullRequest fetches the metadata, diff, commit messages and main
	// language for the referenced pull request
	GetPullRequest(ctx context.Context, ref *model.PRRef) (*model.PullRequest, error)
}
