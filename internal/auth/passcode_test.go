package auth

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testHash(t *testing.T, passcode string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestPasscodePlatform_Authenticate(t *testing.T) {
	hash := testHash(t, "2468")

	tests := []struct {
		name     string
		input    string
		expected Result
	}{
		{name: "should accept correct passcode", input: "2468\n", expected: Result{Success: true}},
		{name: "should accept CRLF line endings", input: "2468\r\n", expected: Result{Success: true}},
		{name: "should treat empty line as cancel", input: "\n", expected: Result{Reason: OutcomeUserCancelled}},
		{name: "should treat end of input as cancel", input: "", expected: Result{Reason: OutcomeUserCancelled}},
		{name: "should reject wrong passcode", input: "1357\n", expected: Result{Reason: OutcomeFailed}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			platform := NewPasscodePlatform(hash, 3, strings.NewReader(tt.input), &out)

			result, err := platform.Authenticate(context.Background(), Options{PromptMessage: "Unlock", FallbackLabel: "Passcode"})

			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
			assert.Contains(t, out.String(), "Unlock\nPasscode: ")
		})
	}
}

func TestPasscodePlatform_Lockout(t *testing.T) {
	hash := testHash(t, "2468")
	input := strings.NewReader("0000\n1111\n2468\n")
	platform := NewPasscodePlatform(hash, 2, input, &bytes.Buffer{})
	ctx := context.Background()

	result, err := platform.Authenticate(ctx, Options{})
	require.NoError(t, err)
	assert.Equal(t, OutcomeFailed, result.Reason)

	result, err = platform.Authenticate(ctx, Options{})
	require.NoError(t, err)
	assert.Equal(t, OutcomeLockout, result.Reason)

	// even the right passcode is not read once locked out
	result, err = platform.Authenticate(ctx, Options{})
	require.NoError(t, err)
	assert.Equal(t, Result{Reason: OutcomeLockout}, result)
	assert.Equal(t, 5, platform.in.Buffered())
}

func TestPasscodePlatform_SuccessResetsFailures(t *testing.T) {
	hash := testHash(t, "2468")
	platform := NewPasscodePlatform(hash, 2, strings.NewReader("0000\n2468\n0000\n"), &bytes.Buffer{})
	ctx := context.Background()

	for _, expected := range []Result{{Reason: OutcomeFailed}, {Success: true}, {Reason: OutcomeFailed}} {
		result, err := platform.Authenticate(ctx, Options{})
		require.NoError(t, err)
		assert.Equal(t, expected, result)
	}
}

func TestPasscodePlatform_Capability(t *testing.T) {
	ctx := context.Background()

	enrolled := NewPasscodePlatform(testHash(t, "1"), 1, strings.NewReader(""), &bytes.Buffer{})
	assert.True(t, enrolled.HasHardware(ctx))
	assert.True(t, enrolled.IsEnrolled(ctx))

	unenrolled := NewPasscodePlatform("", 1, strings.NewReader(""), &bytes.Buffer{})
	assert.True(t, unenrolled.HasHardware(ctx))
	assert.False(t, unenrolled.IsEnrolled(ctx))
}

func TestPasscodePlatform_CancelledContext(t *testing.T) {
	platform := NewPasscodePlatform(testHash(t, "2468"), 3, strings.NewReader("2468\n"), &bytes.Buffer{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := platform.Authenticate(ctx, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHashPasscode(t *testing.T) {
	hash, err := HashPasscode("2468")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("2468")))

	_, err = HashPasscode("  ")
	assert.Error(t, err)
}
