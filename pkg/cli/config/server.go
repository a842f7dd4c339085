package config

import "github.com/urfave/cli/v3"

// Server holds server configuration
type Server struct {
	Addr          string
	SessionSecret string
	Env           string
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("PREFLIGHT_ADDR"),
		},
		&cli.StringFlag{
			Name:        "session-secret",
			Usage:       "Secret for signing session cookies (empty disables sessions)",
			Destination: &c.SessionSecret,
			Sources:     cli.EnvVars("PREFLIGHT_SESSION_SECRET"),
		},
		&cli.StringFlag{
			Name:        "env",
			Usage:       "Environment mode (development, production)",
			Value:       "development",
			Destination: &c.Env,
			Sources:     cli.EnvVars("PREFLIGHT_ENV"),
		},
	}
}
