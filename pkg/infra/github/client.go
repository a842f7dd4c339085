package github

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/preflight/pkg/domain/interfaces"
	"github.com/m-mizutani/preflight/pkg/domain/model"
	"github.com/m-mizutani/preflight/pkg/domain/types"
	"golang.org/x/oauth2"
)

type client struct {
	githubClient *github.Client
}

// NewClient creates a pull request client backed by the GitHub API. An empty
// token falls back to unauthenticated access, which is enough for public
// repositories.
func NewClient(ctx context.Context, token string) interfaces.PullRequestClient {
	httpClient := &http.Client{Timeout: 30 * time.Second}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, ts)
		httpClient.Timeout = 30 * time.Second
	}

	return &client{
		githubClient: github.NewClient(httpClient),
	}
}

// GetPullRequest fetches the attributes needed for a deployment impact
// analysis: metadata, raw diff, commit messages and main language
func (c *client) GetPullRequest(ctx context.Context, ref *model.PRRef) (*model.PullRequest, error) {
	if ref.Host != "github.com" {
		return nil, goerr.Wrap(types.ErrUnsupportedHost, "only github.com is supported", goerr.V("host", ref.Host))
	}

	pr, _, err := c.githubClient.PullRequests.Get(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get pull request", goerr.V("pr", ref.String()))
	}

	diff, _, err := c.githubClient.PullRequests.GetRaw(ctx, ref.Owner, ref.Repo, ref.Number, github.RawOptions{
		Type: github.Diff,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get pull request diff", goerr.V("pr", ref.String()))
	}

	commits, _, err := c.githubClient.PullRequests.ListCommits(ctx, ref.Owner, ref.Repo, ref.Number, &github.ListOptions{
		PerPage: 100,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list pull request commits", goerr.V("pr", ref.String()))
	}

	languages, _, err := c.githubClient.Repositories.ListLanguages(ctx, ref.Owner, ref.Repo)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list repository languages", goerr.V("pr", ref.String()))
	}

	return &model.PullRequest{
		Title:          pr.GetTitle(),
		Branch:         pr.GetHead().GetRef(),
		Description:    pr.GetBody(),
		Language:       mainLanguage(languages),
		Diff:           diff,
		CommitMessages: formatCommitMessages(commits),
	}, nil
}

// mainLanguage picks the language with the most bytes in the repository
func mainLanguage(languages map[string]int) string {
	var name string
	var max int
	for lang, bytes := range languages {
		if bytes > max {
			name = lang
			max = bytes
		}
	}
	return name
}

// formatCommitMessages renders commit subjects as a bulleted list
func formatCommitMessages(commits []*github.RepositoryCommit) string {
	var sb strings.Builder
	for _, commit := range commits {
		msg := commit.GetCommit().GetMessage()
		if msg == "" {
			continue
		}
		// Keep the subject line only; bodies bloat the prompt
		if idx := strings.IndexByte(msg, '\n'); idx >= 0 {
			msg = msg[:idx]
		}
		sb.WriteString("- ")
		sb.WriteString(msg)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
