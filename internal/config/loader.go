package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config   *Config
	filePath string
}

// NewLoader creates a new configuration loader. The optional YAML file is
// taken from LT_CONFIG_FILE.
func NewLoader() *Loader {
	return &Loader{
		config:   NewConfig(),
		filePath: os.Getenv("LT_CONFIG_FILE"),
	}
}

// NewLoaderWithFile creates a loader reading the given YAML file before the environment
func NewLoaderWithFile(path string) *Loader {
	return &Loader{
		config:   NewConfig(),
		filePath: path,
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the YAML file, if any
// 3. Override with environment variables
// 4. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	if l.filePath != "" {
		if err := l.loadFile(l.filePath); err != nil {
			return nil, err
		}
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// loadFile decodes a YAML file over the current configuration. Keys absent
// from the file keep their current values.
func (l *Loader) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, l.config); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// LoadWithOverrides loads configuration, applies command line overrides
// and validates the result again
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	cfg, err := l.Load()
	if err != nil {
		return nil, err
	}
	if overrides == nil {
		return cfg, nil
	}

	overrides.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ConfigOverrides holds values from command line flags. Nil fields were
// not set on the command line.
type ConfigOverrides struct {
	AuthPrompt        *string
	AuthTimeout       *time.Duration
	AuthMaxAttempts   *int
	TaskTextMaxLength *int
	IntentPolicy      *string
	Timeout           *time.Duration
	Verbose           *bool
}

// Apply copies every set override into cfg
func (o *ConfigOverrides) Apply(cfg *Config) {
	override(&cfg.Auth.PromptMessage, o.AuthPrompt)
	override(&cfg.Auth.Timeout, o.AuthTimeout)
	override(&cfg.Auth.MaxAttempts, o.AuthMaxAttempts)
	override(&cfg.Validation.TaskTextMaxLength, o.TaskTextMaxLength)
	override(&cfg.Controller.IntentPolicy, o.IntentPolicy)
	override(&cfg.Application.Timeout, o.Timeout)
	override(&cfg.Application.Verbose, o.Verbose)
}

func override[T any](dst *T, value *T) {
	if value != nil {
		*dst = *value
	}
}
