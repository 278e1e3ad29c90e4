// Package theme provides the background color table consumed by the card
// composition pipeline. Only colors relevant to legibility live here; all
// other styling stays in the renderer.
package theme

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	toml "github.com/pelletier/go-toml/v2"
)

// Background color keys exposed through CardMetadata
const (
	KeyUnread = "unread"
	KeyRead   = "read"
)

// Theme holds one palette. Read cards use a slightly shifted background so
// unread items stand out in a column.
type Theme struct {
	Name                string `toml:"name"`
	BackgroundColor     string `toml:"background_color"`
	BackgroundColorRead string `toml:"background_color_read"`
	ForegroundColor     string `toml:"foreground_color"`
}

// Light is the default light palette
func Light() Theme {
	return Theme{
		Name:                "light",
		BackgroundColor:     "#ffffff",
		BackgroundColorRead: "#f6f8fa",
		ForegroundColor:     "#24292e",
	}
}

// Dark is the default dark palette
func Dark() Theme {
	return Theme{
		Name:                "dark",
		BackgroundColor:     "#1c2128",
		BackgroundColorRead: "#22272e",
		ForegroundColor:     "#adbac7",
	}
}

// LoadFile reads a palette from a TOML file, filling omitted fields from
// the light palette.
func LoadFile(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, goerr.Wrap(err, "failed to read theme file", goerr.V("path", path))
	}

	t := Light()
	if err := toml.Unmarshal(data, &t); err != nil {
		return Theme{}, goerr.Wrap(err, "failed to parse theme file", goerr.V("path", path))
	}
	return t, nil
}

// Provider implements interfaces.ThemeProvider over one palette
type Provider struct {
	theme Theme
}

// NewProvider creates a theme provider for the given palette
func NewProvider(t Theme) *Provider {
	return &Provider{theme: t}
}

// BackgroundKey returns the background color key for a read state
func (p *Provider) BackgroundKey(isRead bool) string {
	if isRead {
		return KeyRead
	}
	return KeyUnread
}

// BackgroundColor resolves a background color key. Unknown keys resolve to
// the unread background so a renderer never receives an empty color.
func (p *Provider) BackgroundColor(key string) string {
	switch key {
	case KeyRead:
		return p.theme.BackgroundColorRead
	default:
		return p.theme.BackgroundColor
	}
}
