package config

import "github.com/urfave/cli/v3"

// GitHub holds GitHub API configuration
type GitHub struct {
	Token string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub API token (optional for public repositories)",
			Destination: &c.Token,
			Sources:     cli.EnvVars("PREFLIGHT_GITHUB_TOKEN"),
		},
	}
}
