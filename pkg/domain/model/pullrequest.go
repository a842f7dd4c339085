package model

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	vcsurl "github.com/gitsight/go-vcsurl"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/preflight/pkg/domain/types"
)

// PRRef identifies a single pull request on a hosting service
type PRRef struct {
	Host   string // e.g. "github.com"
	Owner  string // Repository owner or group
	Repo   string // Repository name
	Number int    // Pull request / merge request number
}

// PullRequest holds the attributes of a pull request that feed the
// deployment impact prompt
type PullRequest struct {
	Title          string
	Branch         string
	Description    string
	Language       string // Main language of the repository
	Diff           string // Unified diff of the change set
	CommitMessages string // Bulleted commit message list
}

// Matches "<owner>/<repo>/pull/<n>" (GitHub) and
// "<group>[/<subgroup>...]/<repo>/-/merge_requests/<n>" (GitLab, with or
// without the "-" separator).
var prPathRe = regexp.MustCompile(`^(.+?)/(?:pull|-/merge_requests|merge_requests)/(\d+)/?$`)

// ParsePRURL validates that rawURL is a syntactically plausible pull request
// URL and extracts its reference. Any failure wraps types.ErrInvalidPRURL so
// callers can classify it as a user input error before dispatch.
func ParsePRURL(rawURL string) (*PRRef, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, goerr.Wrap(types.ErrInvalidPRURL, "URL is empty")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, goerr.Wrap(types.ErrInvalidPRURL, "unparsable URL", goerr.V("url", rawURL))
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, goerr.Wrap(types.ErrInvalidPRURL, "URL must be absolute http(s)", goerr.V("url", rawURL))
	}

	m := prPathRe.FindStringSubmatch(strings.Trim(u.Path, "/"))
	if m == nil {
		return nil, goerr.Wrap(types.ErrInvalidPRURL, "URL path is not a pull request path", goerr.V("url", rawURL))
	}

	number, err := strconv.Atoi(m[2])
	if err != nil || number <= 0 {
		return nil, goerr.Wrap(types.ErrInvalidPRURL, "invalid pull request number", goerr.V("url", rawURL))
	}

	// Normalize host/owner/name through vcsurl, which understands the
	// repository URL layouts of the major hosting services.
	info, err := vcsurl.Parse(u.Scheme + "://" + u.Host + "/" + m[1])
	if err != nil {
		return nil, goerr.Wrap(types.ErrInvalidPRURL, "unrecognized repository URL", goerr.V("url", rawURL))
	}
	if info.Username == "" || info.Name == "" {
		return nil, goerr.Wrap(types.ErrInvalidPRURL, "repository owner or name missing", goerr.V("url", rawURL))
	}

	return &PRRef{
		Host:   string(info.Host),
		Owner:  info.Username,
		Repo:   info.Name,
		Number: number,
	}, nil
}

// String returns the "owner/repo#number" form for logging
func (r *PRRef) String() string {
	return r.Owner + "/" + r.Repo + "#" + strconv.Itoa(r.Number)
}
