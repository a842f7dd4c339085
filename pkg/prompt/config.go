package prompt

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// fileConfig mirrors the TOML layout of a prompt override file:
//
//	[pr_deployment_impact_prompt]
//	system = "..."
//	user = "..."
type fileConfig struct {
	Prompt promptSection `toml:"pr_deployment_impact_prompt"`
}

type promptSection struct {
	System string `toml:"system"`
	User   string `toml:"user"`
}

// WithConfigFile loads system/user template overrides from a TOML file.
// Empty fields in the file keep the embedded defaults.
func WithConfigFile(path string) Option {
	return func(c *config) {
		c.configFile = path
	}
}

func loadConfigFile(cfg *config) error {
	raw, err := os.ReadFile(cfg.configFile)
	if err != nil {
		return goerr.Wrap(err, "failed to read prompt config file", goerr.V("path", cfg.configFile))
	}

	var fc fileConfig
	if err := toml.Unmarshal(raw, &fc); err != nil {
		return goerr.Wrap(err, "failed to parse prompt config file", goerr.V("path", cfg.configFile))
	}

	if fc.Prompt.System != "" {
		cfg.system = fc.Prompt.System
	}
	if fc.Prompt.User != "" {
		cfg.user = fc.Prompt.User
	}

	return nil
}
