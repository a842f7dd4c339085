package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/preflight/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

func cmdAnalyze() *cli.Command {
	var (
		githubCfg   config.GitHub
		geminiCfg   config.Gemini
		analysisCfg config.Analysis
		prURL       string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "pr-url",
			Usage:       "Pull request URL to analyze",
			Required:    true,
			Destination: &prURL,
			Sources:     cli.EnvVars("PREFLIGHT_PR_URL"),
		},
	}
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, analysisCfg.Flags()...)

	return &cli.Command{
		Name:    "analyze",
		Aliases: []string{"a"},
		Usage:   "Analyze deployment impact of a pull request and print the report",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			analyzeUC, err := buildAnalyzeUseCase(ctx, &geminiCfg, &githubCfg, &analysisCfg)
			if err != nil {
				return err
			}

			result, err := analyzeUC.Analyze(ctx, prURL)
			if err != nil {
				return goerr.Wrap(err, "analysis failed", goerr.V("pr_url", prURL))
			}

			logger.Debug("Analysis completed", "result_length", len(result))
			fmt.Println(result)
			return nil
		},
	}
}
