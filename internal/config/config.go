package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Intent policies for the single authentication slot.
const (
	IntentPolicyReject = "reject"
	IntentPolicyQueue  = "queue"
)

// Config holds all configuration options for the locked todo application
type Config struct {
	Auth        AuthConfig        `yaml:"auth"`
	Validation  ValidationConfig  `yaml:"validation"`
	Controller  ControllerConfig  `yaml:"controller"`
	Store       StoreConfig       `yaml:"store"`
	Application ApplicationConfig `yaml:"application"`
}

// AuthConfig holds authentication gate configuration
type AuthConfig struct {
	PromptMessage string        `yaml:"prompt_message" env:"LT_AUTH_PROMPT"`
	FallbackLabel string        `yaml:"fallback_label" env:"LT_AUTH_FALLBACK_LABEL"`
	PasscodeHash  string        `yaml:"passcode_hash" env:"LT_AUTH_PASSCODE_HASH"`
	MaxAttempts   int           `yaml:"max_attempts" env:"LT_AUTH_MAX_ATTEMPTS"`
	Timeout       time.Duration `yaml:"timeout" env:"LT_AUTH_TIMEOUT"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TaskTextMaxLength int `yaml:"task_text_max_length" env:"LT_VALIDATION_TASK_TEXT_MAX"`
}

// ControllerConfig holds task list controller configuration
type ControllerConfig struct {
	IntentPolicy string `yaml:"intent_policy" env:"LT_INTENT_POLICY"`
}

// StoreConfig holds task store configuration
type StoreConfig struct {
	DSN string `yaml:"dsn" env:"LT_STORE_DSN"`
}

// ApplicationConfig holds application-level configuration. Timeout bounds
// shell commands that do not authenticate; authentication is bounded by
// AuthConfig.Timeout only.
type ApplicationConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"LT_APP_TIMEOUT"`
	Verbose bool          `yaml:"verbose" env:"LT_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Auth: AuthConfig{
			PromptMessage: "Authenticate to access your TODO list.",
			FallbackLabel: "Use passcode",
			MaxAttempts:   5,
			Timeout:       0, // wait for the user indefinitely
		},
		Validation: ValidationConfig{
			TaskTextMaxLength: 255,
		},
		Controller: ControllerConfig{
			IntentPolicy: IntentPolicyReject,
		},
		Store: StoreConfig{
			DSN: ":memory:",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetAuthTimeout returns the per-attempt authentication timeout, zero meaning none
func (c *Config) GetAuthTimeout() time.Duration {
	return c.Auth.Timeout
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Auth configuration
	if prompt := os.Getenv("LT_AUTH_PROMPT"); prompt != "" {
		c.Auth.PromptMessage = prompt
	}
	if label := os.Getenv("LT_AUTH_FALLBACK_LABEL"); label != "" {
		c.Auth.FallbackLabel = label
	}
	if hash := os.Getenv("LT_AUTH_PASSCODE_HASH"); hash != "" {
		c.Auth.PasscodeHash = hash
	}
	if attempts := os.Getenv("LT_AUTH_MAX_ATTEMPTS"); attempts != "" {
		if n, err := strconv.Atoi(attempts); err == nil {
			c.Auth.MaxAttempts = n
		}
	}
	if timeout := os.Getenv("LT_AUTH_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Auth.Timeout = d
		}
	}

	// Validation configuration
	if maxLen := os.Getenv("LT_VALIDATION_TASK_TEXT_MAX"); maxLen != "" {
		if n, err := strconv.Atoi(maxLen); err == nil {
			c.Validation.TaskTextMaxLength = n
		}
	}

	// Controller configuration
	if policy := os.Getenv("LT_INTENT_POLICY"); policy != "" {
		c.Controller.IntentPolicy = strings.ToLower(policy)
	}

	// Store configuration
	if dsn := os.Getenv("LT_STORE_DSN"); dsn != "" {
		c.Store.DSN = dsn
	}

	// Application configuration
	if timeout := os.Getenv("LT_APP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Application.Timeout = d
		}
	}
	if verbose := os.Getenv("LT_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate auth configuration
	if c.Auth.PromptMessage == "" {
		return &ConfigError{Field: "auth.prompt_message", Message: "prompt message cannot be empty"}
	}
	if c.Auth.MaxAttempts < 1 {
		return &ConfigError{Field: "auth.max_attempts", Message: "max attempts must be at least 1"}
	}
	if c.Auth.Timeout < 0 {
		return &ConfigError{Field: "auth.timeout", Message: "auth timeout cannot be negative"}
	}

	// Validate validation configuration
	if c.Validation.TaskTextMaxLength < 1 {
		return &ConfigError{Field: "validation.task_text_max_length", Message: "task text maximum length must be at least 1"}
	}

	// Validate controller configuration
	switch c.Controller.IntentPolicy {
	case IntentPolicyReject, IntentPolicyQueue:
	default:
		return &ConfigError{Field: "controller.intent_policy", Message: "intent policy must be \"reject\" or \"queue\""}
	}

	// Validate store configuration; tasks live only for the running session
	if !IsInMemoryDSN(c.Store.DSN) {
		return &ConfigError{Field: "store.dsn", Message: "store must be an in-memory database"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// IsInMemoryDSN reports whether dsn names an in-memory SQLite database
func IsInMemoryDSN(dsn string) bool {
	if dsn == ":memory:" {
		return true
	}
	return strings.HasPrefix(dsn, "file:") && strings.Contains(dsn, "mode=memory")
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
