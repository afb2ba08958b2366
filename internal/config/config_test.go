package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "Authenticate to access your TODO list.", cfg.Auth.PromptMessage)
	assert.Equal(t, "Use passcode", cfg.Auth.FallbackLabel)
	assert.Empty(t, cfg.Auth.PasscodeHash)
	assert.Equal(t, 5, cfg.Auth.MaxAttempts)
	assert.Equal(t, time.Duration(0), cfg.GetAuthTimeout())
	assert.Equal(t, 255, cfg.Validation.TaskTextMaxLength)
	assert.Equal(t, IntentPolicyReject, cfg.Controller.IntentPolicy)
	assert.Equal(t, ":memory:", cfg.Store.DSN)
	assert.Equal(t, 60*time.Second, cfg.Application.Timeout)
	assert.False(t, cfg.Application.Verbose)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_LoadFromEnvironment(t *testing.T) {
	t.Setenv("LT_AUTH_PROMPT", "Unlock")
	t.Setenv("LT_AUTH_FALLBACK_LABEL", "PIN")
	t.Setenv("LT_AUTH_PASSCODE_HASH", "$2a$10$abc")
	t.Setenv("LT_AUTH_MAX_ATTEMPTS", "3")
	t.Setenv("LT_AUTH_TIMEOUT", "30s")
	t.Setenv("LT_VALIDATION_TASK_TEXT_MAX", "80")
	t.Setenv("LT_INTENT_POLICY", "QUEUE")
	t.Setenv("LT_APP_TIMEOUT", "2m")
	t.Setenv("LT_APP_VERBOSE", "true")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, "Unlock", cfg.Auth.PromptMessage)
	assert.Equal(t, "PIN", cfg.Auth.FallbackLabel)
	assert.Equal(t, "$2a$10$abc", cfg.Auth.PasscodeHash)
	assert.Equal(t, 3, cfg.Auth.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.Auth.Timeout)
	assert.Equal(t, 80, cfg.Validation.TaskTextMaxLength)
	assert.Equal(t, IntentPolicyQueue, cfg.Controller.IntentPolicy)
	assert.Equal(t, 2*time.Minute, cfg.Application.Timeout)
	assert.True(t, cfg.Application.Verbose)
}

func TestConfig_LoadFromEnvironment_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("LT_AUTH_MAX_ATTEMPTS", "many")
	t.Setenv("LT_AUTH_TIMEOUT", "soon")
	t.Setenv("LT_APP_VERBOSE", "perhaps")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, 5, cfg.Auth.MaxAttempts)
	assert.Equal(t, time.Duration(0), cfg.Auth.Timeout)
	assert.False(t, cfg.Application.Verbose)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"empty prompt", func(c *Config) { c.Auth.PromptMessage = "" }, "auth.prompt_message"},
		{"zero attempts", func(c *Config) { c.Auth.MaxAttempts = 0 }, "auth.max_attempts"},
		{"negative auth timeout", func(c *Config) { c.Auth.Timeout = -time.Second }, "auth.timeout"},
		{"zero max length", func(c *Config) { c.Validation.TaskTextMaxLength = 0 }, "validation.task_text_max_length"},
		{"unknown policy", func(c *Config) { c.Controller.IntentPolicy = "drop" }, "controller.intent_policy"},
		{"file backed store", func(c *Config) { c.Store.DSN = "todo.db" }, "store.dsn"},
		{"zero app timeout", func(c *Config) { c.Application.Timeout = 0 }, "application.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestIsInMemoryDSN(t *testing.T) {
	assert.True(t, IsInMemoryDSN(":memory:"))
	assert.True(t, IsInMemoryDSN("file:tasks?mode=memory&cache=shared"))
	assert.False(t, IsInMemoryDSN("tasks.db"))
	assert.False(t, IsInMemoryDSN("file:tasks.db"))
	assert.False(t, IsInMemoryDSN(""))
}
