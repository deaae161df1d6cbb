package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/frankigoes6/ProjetFoncier/internal/cleaner"
)

// EnvPrefix prefixes every environment override, e.g. DVF_CLEANING_MAX_AREA.
const EnvPrefix = "DVF"

// DefaultFile is the config file looked up when no --config flag is given.
const DefaultFile = "dvf.yaml"

// Config represents the top-level dvf.yaml configuration.
type Config struct {
	Cleaning  cleaner.Config `yaml:"cleaning"`
	Logging   LoggingConfig  `yaml:"logging"`
	Encodings []string       `yaml:"encodings,omitempty"` // loader fallback order
}

// LoggingConfig controls the slog handler used by the CLI.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Load reads a dvf.yaml file from disk. Keys absent from the file keep their
// Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Resolve loads path, or the defaults when path is empty or names a missing
// DefaultFile, then applies environment overrides.
func Resolve(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	cfg, err := Load(path)
	switch {
	case err == nil:
	case !explicit && errors.Is(err, os.ErrNotExist):
		cfg = Default()
	default:
		return nil, err
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with any DVF_* environment variables that are set.
// Keys follow the YAML nesting, e.g. DVF_LOGGING_LEVEL; unprefixed names are ignored.
func ApplyEnv(cfg *Config) error {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the documented cleaning defaults.
func Default() *Config {
	return &Config{
		Cleaning: cleaner.DefaultConfig(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
