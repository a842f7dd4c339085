package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/preflight/pkg/domain/interfaces"
	"github.com/m-mizutani/preflight/pkg/domain/model"
	"github.com/m-mizutani/preflight/pkg/domain/types"
	"github.com/m-mizutani/preflight/pkg/prompt"
)

const analysisHeader = "# Deployment Impact Analysis 🚀\n\n"

type analyzeUseCase struct {
	llmClient         gollem.LLMClient
	prClient          interfaces.PullRequestClient
	template          *prompt.Template
	timeout           time.Duration
	extraInstructions string
}

// Option is a functional option for the analyze use case
type Option func(*analyzeUseCase)

// WithTimeout bounds a single analysis. Zero means unbounded, which matches
// the upstream backend behavior ("may take a few minutes").
func WithTimeout(d time.Duration) Option {
	return func(uc *analyzeUseCase) {
		uc.timeout = d
	}
}

// WithExtraInstructions appends operator-supplied instructions to the prompt
func WithExtraInstructions(s string) Option {
	return func(uc *analyzeUseCase) {
		uc.extraInstructions = s
	}
}

// NewAnalyze creates a new AnalyzeUseCase instance
func NewAnalyze(
	llmClient gollem.LLMClient,
	prClient interfaces.PullRequestClient,
	template *prompt.Template,
	opts ...Option,
) interfaces.AnalyzeUseCase {
	uc := &analyzeUseCase{
		llmClient: llmClient,
		prClient:  prClient,
		template:  template,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Analyze runs the deployment impact analysis for a single pull request URL
// and returns the report as markdown
func (uc *analyzeUseCase) Analyze(ctx context.Context, prURL string) (string, error) {
	logger := ctxlog.From(ctx)

	ref, err := model.ParsePRURL(prURL)
	if err != nil {
		return "", err
	}

	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	logger.Info("Analyzing deployment impact",
		"pr", ref.String(),
		"host", ref.Host,
	)

	pr, err := uc.prClient.GetPullRequest(ctx, ref)
	if err != nil {
		return "", goerr.Wrap(err, "failed to fetch pull request", goerr.V("pr", ref.String()))
	}

	if strings.TrimSpace(pr.Diff) == "" {
		return "", goerr.Wrap(types.ErrEmptyDiff, "nothing to analyze", goerr.V("pr", ref.String()))
	}

	rendered, err := uc.template.Render(prompt.NewContext(pr, uc.extraInstructions))
	if err != nil {
		return "", goerr.Wrap(err, "failed to render analysis prompt")
	}

	logger.Debug("Calling LLM for deployment impact analysis",
		"pr", ref.String(),
		"prompt_length", len(rendered.User),
	)

	session, err := uc.llmClient.NewSession(ctx,
		gollem.WithSessionSystemPrompt(rendered.System),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(rendered.User))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate LLM content")
	}
	if len(resp.Texts) == 0 {
		return "", goerr.New("no response from LLM")
	}

	logger.Info("Deployment impact analysis completed",
		"pr", ref.String(),
		"response_length", len(resp.Texts[0]),
	)

	return analysisHeader + strings.Join(resp.Texts, "\n"), nil
}
