package config

import (
	"github.com/m-mizutani/cardstack/pkg/infra/theme"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Theme holds color theme configuration
type Theme struct {
	Name string
	File string
}

// Flags returns CLI flags for theme configuration
func (c *Theme) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "theme",
			Usage:       "Color theme (light, dark)",
			Value:       "light",
			Destination: &c.Name,
			Sources:     cli.EnvVars("CARDSTACK_THEME"),
		},
		&cli.StringFlag{
			Name:        "theme-file",
			Usage:       "Path to a TOML theme file (overrides --theme)",
			Destination: &c.File,
			Sources:     cli.EnvVars("CARDSTACK_THEME_FILE"),
		},
	}
}

// Load resolves the configured palette. A theme file wins over the named
// built-in palette.
func (c *Theme) Load() (theme.Theme, error) {
	if c.File != "" {
		return theme.LoadFile(c.File)
	}

	switch c.Name {
	case "light":
		return theme.Light(), nil
	case "dark":
		return theme.Dark(), nil
	default:
		return theme.Theme{}, goerr.New("unknown theme", goerr.V("theme", c.Name))
	}
}
