package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/cardstack/pkg/cli/config"
)

func TestTheme_Load(t *testing.T) {
	tests := []struct {
		name           string
		theme          string
		wantErr        bool
		wantBackground string
	}{
		{
			name:           "Light theme",
			theme:          "light",
			wantErr:        false,
			wantBackground: "#ffffff",
		},
		{
			name:           "Dark theme",
			theme:          "dark",
			wantErr:        false,
			wantBackground: "#1c2128",
		},
		{
			name:    "Unknown theme",
			theme:   "solarized",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Theme{Name: tt.theme}

			palette, err := cfg.Load()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if palette.BackgroundColor != tt.wantBackground {
				t.Errorf("BackgroundColor = %v, want %v", palette.BackgroundColor, tt.wantBackground)
			}
		})
	}
}

func TestTheme_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.toml")
	content := `name = "custom"
background_color = "#101010"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write theme file: %v", err)
	}

	cfg := &config.Theme{Name: "dark", File: path}
	palette, err := cfg.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error = %v", err)
	}

	if palette.Name != "custom" {
		t.Errorf("Name = %v, want custom", palette.Name)
	}
	if palette.BackgroundColor != "#101010" {
		t.Errorf("BackgroundColor = %v, want #101010", palette.BackgroundColor)
	}

	// Omitted fields fall back to the light palette
	if palette.BackgroundColorRead != "#f6f8fa" {
		t.Errorf("BackgroundColorRead = %v, want #f6f8fa", palette.BackgroundColorRead)
	}
}
