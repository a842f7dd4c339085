package github

import (
	"context"
	"errors"
	"testing"

	gogithub "github.com/google/go-github/v75/github"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/preflight/pkg/domain/model"
	"github.com/m-mizutani/preflight/pkg/domain/types"
)

func TestGetPullRequest_UnsupportedHost(t *testing.T) {
	c := NewClient(context.Background(), "")

	_, err := c.GetPullRequest(context.Background(), &model.PRRef{
		Host:   "gitlab.com",
		Owner:  "group",
		Repo:   "project",
		Number: 15,
	})
	gt.True(t, err != nil)
	gt.True(t, errors.Is(err, types.ErrUnsupportedHost))
}

func TestMainLanguage(t *testing.T) {
	tests := []struct {
		name      string
		languages map[string]int
		want      string
	}{
		{
			name:      "picks the language with most bytes",
			languages: map[string]int{"Go": 12000, "Shell": 300, "Makefile": 50},
			want:      "Go",
		},
		{
			name:      "empty map yields empty string",
			languages: map[string]int{},
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.V(t, mainLanguage(tt.languages)).Equal(tt.want)
		})
	}
}

func TestFormatCommitMessages(t *testing.T) {
	commits := []*gogithub.RepositoryCommit{
		{Commit: &gogithub.Commit{Message: gogithub.Ptr("add cache\n\nlong body explaining details")}},
		{Commit: &gogithub.Commit{Message: gogithub.Ptr("add tests")}},
		{Commit: &gogithub.Commit{Message: gogithub.Ptr("")}},
	}

	got := formatCommitMessages(commits)
	gt.V(t, got).Equal("- add cache\n- add tests")
}
