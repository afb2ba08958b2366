package auth

import "context"

// Options are passed to the platform for a single authentication challenge.
type Options struct {
	PromptMessage string
	FallbackLabel string
}

// Result is what the platform reports once a challenge resolves.
// Reason is only consulted when Success is false.
type Result struct {
	Success bool
	Reason  Outcome
}

// Platform is the device authentication boundary: biometric hardware,
// enrollment state and the challenge itself. Implementations must not
// retry on their own.
type Platform interface {
	HasHardware(ctx context.Context) bool
	IsEnrolled(ctx context.Context) bool
	Authenticate(ctx context.Context, opts Options) (Result, error)
}

// Capability is a snapshot of what the platform supports.
type Capability struct {
	HardwareAvailable bool
	Enrolled          bool
}

// Available reports whether a challenge can be attempted at all.
func (c Capability) Available() bool {
	return c.HardwareAvailable && c.Enrolled
}
