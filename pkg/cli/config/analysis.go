package config

import (
	"time"

	"github.com/urfave/cli/v3"
)

// Analysis holds deployment impact analysis configuration
type Analysis struct {
	Timeout           time.Duration
	ExtraInstructions string
	PromptFile        string
}

// Flags returns CLI flags for analysis configuration
func (c *Analysis) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        "analysis-timeout",
			Usage:       "Timeout for a single analysis (0 = unbounded)",
			Value:       0,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("PREFLIGHT_ANALYSIS_TIMEOUT"),
		},
		&cli.StringFlag{
			Name:        "extra-instructions",
			Usage:       "Extra instructions appended to the analysis prompt",
			Destination: &c.ExtraInstructions,
			Sources:     cli.EnvVars("PREFLIGHT_EXTRA_INSTRUCTIONS"),
		},
		&cli.StringFlag{
			Name:        "prompt-file",
			Usage:       "TOML file overriding the built-in prompt templates",
			Destination: &c.PromptFile,
			Sources:     cli.EnvVars("PREFLIGHT_PROMPT_FILE"),
		},
	}
}
