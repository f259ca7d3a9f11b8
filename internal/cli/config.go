package cli

// ABOUTME: Optional user config for the autopage CLI, read from
// ABOUTME: the platform config dir (e.g. ~/.config/autopage/config.yaml).

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// cliConfig holds the persistent defaults a user can set. Flags override
// everything here.
type cliConfig struct {
	// Pager is a pager command line, like the $PAGER variable.
	Pager string `yaml:"pager"`
	// Color defaults to on when absent.
	Color *bool `yaml:"color"`
	// Reset restores the terminal screen after the pager exits.
	Reset bool `yaml:"reset"`
}

// colorAllowed reports the configured color setting, defaulting to true.
func (c *cliConfig) colorAllowed() bool {
	return c.Color == nil || *c.Color
}

// configPath returns the config file location, honoring the platform
// convention (XDG on Linux).
func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config directory: %w", err)
	}
	return filepath.Join(dir, "autopage", "config.yaml"), nil
}

// loadConfig reads the config file. A missing file is not an error; it
// yields the built-in defaults.
func loadConfig() (*cliConfig, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: fixed path under the user config dir
	if err != nil {
		if os.IsNotExist(err) {
			return &cliConfig{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg := &cliConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
