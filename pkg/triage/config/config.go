package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/triage/pkg/triage/internalerr"
	"github.com/cognicore/triage/pkg/triage/tags"
)

// Config is the on-disk configuration of the triage tools.
type Config struct {
	Lexicon  string `yaml:"lexicon" mapstructure:"lexicon"`     // path to a lexicon YAML; empty means built-in
	TagLimit int    `yaml:"tag_limit" mapstructure:"tag_limit"` // max tags per result
	Workers  int    `yaml:"workers" mapstructure:"workers"`     // batch concurrency; 0 means GOMAXPROCS
	HTML     bool   `yaml:"html" mapstructure:"html"`           // strip HTML from report text before analysis
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{TagLimit: tags.DefaultLimit}
}

// LoadConfig reads a YAML config file. Keys missing from the file keep their
// Default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Validate rejects negative limits.
func (c Config) Validate() error {
	if c.TagLimit < 0 {
		return fmt.Errorf("%w: tag_limit %d is negative", internalerr.ErrInvalidConfig, c.TagLimit)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d is negative", internalerr.ErrInvalidConfig, c.Workers)
	}
	return nil
}
