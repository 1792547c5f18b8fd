package terminal

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/amp-labs/atm/errors"
	"gopkg.in/yaml.v3"
)

// Reference terminal settings.
const (
	DefaultInitialBalance     = 1000
	DefaultFailureProbability = 0.1
)

// Config defines the construction parameters of a terminal.
type Config struct {
	Name               string  `json:"name"               yaml:"name"`
	InitialBalance     float64 `json:"initialBalance"     yaml:"initialBalance"`
	FailureProbability float64 `json:"failureProbability" yaml:"failureProbability"`
	Strict             bool    `json:"strict"             yaml:"strict"`
	// Seed makes the connection oracle reproducible when set.
	Seed *uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// DefaultConfig returns the reference terminal: 1000 in the till and a 10% chance
// of losing the connection during PIN verification.
func DefaultConfig() *Config {
	return &Config{
		Name:               "atm",
		InitialBalance:     DefaultInitialBalance,
		FailureProbability: DefaultFailureProbability,
	}
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Intentional path-based loading
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	return LoadConfigFromBytes(data)
}

// LoadConfigFromBytes parses YAML on top of DefaultConfig, so omitted fields
// keep their reference values.
func LoadConfigFromBytes(data []byte) (*Config, error) {
	config := DefaultConfig()

	err := yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	err = config.Validate()
	if err != nil {
		return nil, err
	}

	return config, nil
}

// LoadConfigFromFS loads a configuration from an embedded filesystem.
func LoadConfigFromFS(fsys fs.FS, path string) (*Config, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config from FS: %w", err)
	}

	return LoadConfigFromBytes(data)
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs errors.Collection

	if c.Name == "" {
		errs.Add(ErrConfigNameRequired)
	}

	if c.InitialBalance < 0 {
		errs.Addf("%w: %v", ErrNegativeBalance, c.InitialBalance)
	}

	if !validProbability(c.FailureProbability) {
		errs.Addf("%w: %v", ErrInvalidProbability, c.FailureProbability)
	}

	return errs.GetError()
}
