package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/m-mizutani/preflight/pkg/cli/config"
	"github.com/m-mizutani/preflight/pkg/domain/interfaces"
	ghinfra "github.com/m-mizutani/preflight/pkg/infra/github"
	"github.com/m-mizutani/preflight/pkg/prompt"
	"github.com/m-mizutani/preflight/pkg/usecase"
)

// buildAnalyzeUseCase wires the prompt template, LLM client and pull request
// client into an analyze use case. Shared by the serve and analyze commands.
func buildAnalyzeUseCase(
	ctx context.Context,
	geminiCfg *config.Gemini,
	githubCfg *config.GitHub,
	analysisCfg *config.Analysis,
) (interfaces.AnalyzeUseCase, error) {
	var promptOpts []prompt.Option
	if analysisCfg.PromptFile != "" {
		promptOpts = append(promptOpts, prompt.WithConfigFile(analysisCfg.PromptFile))
	}

	template, err := prompt.New(promptOpts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build prompt template")
	}

	llmClient, err := gemini.New(ctx, geminiCfg.ProjectID, geminiCfg.Location,
		gemini.WithModel(geminiCfg.Model),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Gemini client")
	}

	prClient := ghinfra.NewClient(ctx, githubCfg.Token)

	return usecase.NewAnalyze(llmClient, prClient, template,
		usecase.WithTimeout(analysisCfg.Timeout),
		usecase.WithExtraInstructions(analysisCfg.ExtraInstructions),
	), nil
}
