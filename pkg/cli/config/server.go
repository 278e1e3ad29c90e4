package config

import "github.com/urfave/cli/v3"

// Server holds server configuration
type Server struct {
	Addr          string
	ReadStateSize int
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("CARDSTACK_ADDR"),
		},
		&cli.IntFlag{
			Name:        "read-state-size",
			Usage:       "Max number of items tracked by the in-memory read state",
			Value:       10000,
			Destination: &c.ReadStateSize,
			Sources:     cli.EnvVars("CARDSTACK_READ_STATE_SIZE"),
		},
	}
}
