package prompt

import (
	_ "embed"
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/preflight/pkg/domain/model"
	"github.com/m-mizutani/preflight/pkg/domain/types"
)

//go:embed prompts/deployment_impact_system.md
var defaultSystemPrompt string

//go:embed prompts/deployment_impact_user.md
var defaultUserPrompt string

// Placeholder keys the user template may reference. The set is closed:
// templates referencing anything else are rejected at construction time.
const (
	KeyTitle             = "title"
	KeyBranch            = "branch"
	KeyDescription       = "description"
	KeyLanguage          = "language"
	KeyDiff              = "diff"
	KeyCommitMessages    = "commit_messages_str"
	KeyExtraInstructions = "extra_instructions"
)

var allowedKeys = map[string]struct{}{
	KeyTitle:             {},
	KeyBranch:            {},
	KeyDescription:       {},
	KeyLanguage:          {},
	KeyDiff:              {},
	KeyCommitMessages:    {},
	KeyExtraInstructions: {},
}

// Context maps placeholder keys to their values for one render. Values are
// opaque text and are never interpreted as further template syntax.
type Context map[string]string

// NewContext builds a render context from pull request attributes
func NewContext(pr *model.PullRequest, extraInstructions string) Context {
	return Context{
		KeyTitle:             pr.Title,
		KeyBranch:            pr.Branch,
		KeyDescription:       pr.Description,
		KeyLanguage:          pr.Language,
		KeyDiff:              pr.Diff,
		KeyCommitMessages:    pr.CommitMessages,
		KeyExtraInstructions: extraInstructions,
	}
}

// RenderedPrompt is the immutable system/user prompt pair produced by a
// render. Callers send the two parts as separate roles to the completion
// interface.
type RenderedPrompt struct {
	System string
	User   string
}

// Template holds the static system instruction and the parameterized user
// message template. It is immutable after New and safe for concurrent use.
type Template struct {
	system string
	user   string
}

type config struct {
	system     string
	user       string
	configFile string
}

// Option is a functional option for Template construction
type Option func(*config)

// WithSystem overrides the embedded system instruction
func WithSystem(system string) Option {
	return func(c *config) {
		c.system = system
	}
}

// WithUser overrides the embedded user message template
func WithUser(user string) Option {
	return func(c *config) {
		c.user = user
	}
}

var placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// New builds a Template from the embedded defaults and the given options.
// Every placeholder referenced by the resulting templates must be in the
// allow-listed key set; anything else fails construction.
func New(opts ...Option) (*Template, error) {
	cfg := &config{
		system: defaultSystemPrompt,
		user:   defaultUserPrompt,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.configFile != "" {
		if err := loadConfigFile(cfg); err != nil {
			return nil, err
		}
	}

	for _, tmpl := range []string{cfg.system, cfg.user} {
		for _, m := range placeholderRe.FindAllStringSubmatch(tmpl, -1) {
			if _, ok := allowedKeys[m[1]]; !ok {
				return nil, goerr.Wrap(types.ErrUnknownPlaceholder, "template references unknown key", goerr.V("key", m[1]))
			}
		}
	}

	return &Template{
		system: cfg.system,
		user:   cfg.user,
	}, nil
}

// Render substitutes the context values into the system and user templates.
// A placeholder without a context value fails the whole render with
// types.ErrMissingContextKey; no partial output is produced.
func (t *Template) Render(ctx Context) (*RenderedPrompt, error) {
	system, err := substitute(t.system, ctx)
	if err != nil {
		return nil, err
	}

	user, err := substitute(t.user, ctx)
	if err != nil {
		return nil, err
	}

	return &RenderedPrompt{
		System: system,
		User:   user,
	}, nil
}

// substitute replaces placeholders in a single left-to-right pass over the
// template. Substituted values are never re-scanned, so a value containing
// "{{title}}" stays literal in the output.
func substitute(tmpl string, ctx Context) (string, error) {
	var sb strings.Builder
	last := 0

	for _, loc := range placeholderRe.FindAllStringSubmatchIndex(tmpl, -1) {
		key := tmpl[loc[2]:loc[3]]
		value, ok := ctx[key]
		if !ok {
			return "", goerr.Wrap(types.ErrMissingContextKey, "no value for placeholder", goerr.V("key", key))
		}

		sb.WriteString(tmpl[last:loc[0]])
		sb.WriteString(value)
		last = loc[1]
	}
	sb.WriteString(tmpl[last:])

	return sb.String(), nil
}
