package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"locked-todo/internal/auth"
	"locked-todo/internal/config"
	"locked-todo/internal/testutil"
)

func newGate(t *testing.T, platform *testutil.FakePlatform, cfg *config.Config) *auth.Gate {
	t.Helper()
	return auth.NewGate(context.Background(), platform, cfg, nil)
}

func TestGate_Authenticate(t *testing.T) {
	tests := []struct {
		name          string
		platform      func() *testutil.FakePlatform
		expected      auth.Outcome
		expectedCalls int
	}{
		{
			name:          "should succeed when platform approves",
			platform:      testutil.Approving,
			expected:      auth.OutcomeSuccess,
			expectedCalls: 1,
		},
		{
			name:          "should report cancel",
			platform:      func() *testutil.FakePlatform { return testutil.Denying(auth.OutcomeUserCancelled) },
			expected:      auth.OutcomeUserCancelled,
			expectedCalls: 1,
		},
		{
			name:          "should report lockout",
			platform:      func() *testutil.FakePlatform { return testutil.Denying(auth.OutcomeLockout) },
			expected:      auth.OutcomeLockout,
			expectedCalls: 1,
		},
		{
			name:          "should default unexplained failure to cancel",
			platform:      func() *testutil.FakePlatform { return testutil.Denying(auth.OutcomeSuccess) },
			expected:      auth.OutcomeUserCancelled,
			expectedCalls: 1,
		},
		{
			name: "should map platform error",
			platform: func() *testutil.FakePlatform {
				p := testutil.Approving()
				p.Err = errors.New("sensor failure")
				return p
			},
			expected:      auth.OutcomePlatformError,
			expectedCalls: 1,
		},
		{
			name: "should not invoke platform without hardware",
			platform: func() *testutil.FakePlatform {
				p := testutil.Approving()
				p.Hardware = false
				return p
			},
			expected:      auth.OutcomeNoHardware,
			expectedCalls: 0,
		},
		{
			name: "should not invoke platform when not enrolled",
			platform: func() *testutil.FakePlatform {
				p := testutil.Approving()
				p.Enrolled = false
				return p
			},
			expected:      auth.OutcomeNotEnrolled,
			expectedCalls: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			platform := tt.platform()
			gate := newGate(t, platform, nil)

			outcome := gate.Authenticate(context.Background(), "")

			assert.Equal(t, tt.expected, outcome)
			assert.Equal(t, tt.expectedCalls, platform.Calls())
		})
	}
}

func TestGate_CapabilityIsSnapshotted(t *testing.T) {
	platform := testutil.Approving()
	gate := newGate(t, platform, nil)

	platform.Enrolled = false
	for i := 0; i < 3; i++ {
		assert.Equal(t, auth.Capability{HardwareAvailable: true, Enrolled: true}, gate.CheckCapability())
		assert.Equal(t, auth.OutcomeSuccess, gate.Authenticate(context.Background(), ""))
	}

	hardware, enrolled := platform.CapabilityChecks()
	assert.Equal(t, 1, hardware)
	assert.Equal(t, 1, enrolled)
}

func TestGate_Prompt(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Auth.PromptMessage = "Unlock tasks"
	cfg.Auth.FallbackLabel = "Passcode"
	platform := testutil.Approving()
	gate := newGate(t, platform, cfg)

	gate.Authenticate(context.Background(), "")
	gate.Authenticate(context.Background(), "Delete task?")

	prompts := platform.Prompts()
	require.Len(t, prompts, 2)
	assert.Equal(t, auth.Options{PromptMessage: "Unlock tasks", FallbackLabel: "Passcode"}, prompts[0])
	assert.Equal(t, "Delete task?", prompts[1].PromptMessage)
	assert.Equal(t, "Passcode", prompts[1].FallbackLabel)
}

func TestGate_TimeoutResolvesAsPlatformError(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Auth.Timeout = 20 * time.Millisecond
	platform := testutil.Approving()
	platform.Block = make(chan struct{})
	gate := newGate(t, platform, cfg)

	outcome := gate.Authenticate(context.Background(), "")

	assert.Equal(t, auth.OutcomePlatformError, outcome)
}
