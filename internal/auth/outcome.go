package auth

import (
	"locked-todo/internal/errors"
)

// Outcome is the detailed result of an authentication attempt.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeUserCancelled
	OutcomeFailed
	OutcomeNotEnrolled
	OutcomeNoHardware
	OutcomeLockout
	OutcomePlatformError
)

var outcomeNames = map[Outcome]string{
	OutcomeSuccess:       "success",
	OutcomeUserCancelled: "user_cancelled",
	OutcomeFailed:        "authentication_failed",
	OutcomeNotEnrolled:   "not_enrolled",
	OutcomeNoHardware:    "no_hardware",
	OutcomeLockout:       "lockout",
	OutcomePlatformError: "platform_error",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return "unknown"
}

// Succeeded reports whether the mutation guarded by this outcome may proceed.
func (o Outcome) Succeeded() bool {
	return o == OutcomeSuccess
}

// Unavailable reports whether the outcome was decided without a challenge.
func (o Outcome) Unavailable() bool {
	return o == OutcomeNoHardware || o == OutcomeNotEnrolled
}

// Err converts the outcome into an application error for the named intent.
// It returns nil on success.
func (o Outcome) Err(intent string) error {
	switch {
	case o.Succeeded():
		return nil
	case o.Unavailable():
		return errors.NewAuthUnavailableError(intent, o.String())
	default:
		return errors.NewAuthDeniedError(intent, o.String(), nil)
	}
}

// OutcomeOf extracts the outcome recorded in an auth error.
func OutcomeOf(err error) (Outcome, bool) {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return 0, false
	}
	name := appErr.ContextString("outcome")
	for outcome, n := range outcomeNames {
		if n == name {
			return outcome, true
		}
	}
	return 0, false
}

// reasonOutcome maps a platform-reported failure reason onto an outcome.
func reasonOutcome(reason Outcome) Outcome {
	switch reason {
	case OutcomeUserCancelled, OutcomeFailed, OutcomeLockout, OutcomePlatformError,
		OutcomeNotEnrolled, OutcomeNoHardware:
		return reason
	default:
		return OutcomeUserCancelled
	}
}
