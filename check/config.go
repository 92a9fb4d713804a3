package check

import (
	"errors"
	"fmt"
	"io"
	"os"

	tt "github.com/gnoswap-labs/fitch/internal/types"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file looked up in the working
// directory.
const DefaultConfigFile = ".fitch.yaml"

// Config represents the overall configuration with a name, the severity
// of each diagnostic and the display settings of the interactive session.
type Config struct {
	Name    string                   `yaml:"name"`
	Rules   map[string]tt.ConfigRule `yaml:"rules"`
	Display Display                  `yaml:"display"`
}

// Display controls how proofs are shown.
type Display struct {
	Color       bool   `yaml:"color"`
	Width       int    `yaml:"width"`
	ClearScreen bool   `yaml:"clear-screen"`
	Prompt      string `yaml:"prompt"`
	// History is the liner history file. Empty means ~/.fitch_history.
	History string `yaml:"history"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Name:  "fitch",
		Rules: map[string]tt.ConfigRule{},
		Display: Display{
			Color:       true,
			ClearScreen: true,
			Prompt:      "> ",
		},
	}
}

// LoadConfig reads the configuration at path on top of the defaults.
// An empty path or a missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return config, fmt.Errorf("error opening config: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("error parsing config %s: %w", path, err)
	}
	if config.Rules == nil {
		config.Rules = map[string]tt.ConfigRule{}
	}
	return config, nil
}

// WriteConfig stores config at path, replacing any existing file.
func WriteConfig(path string, config Config) error {
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, d, 0o644); err != nil {
		return fmt.Errorf("error writing config: %w", err)
	}
	return nil
}
