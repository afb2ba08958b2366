package auth

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// PasscodePlatform is the terminal fallback when no biometric hardware is
// present. It is enrolled once a bcrypt hash is configured.
type PasscodePlatform struct {
	mu          sync.Mutex
	hash        []byte
	maxAttempts int
	failures    int
	in          *bufio.Reader
	out         io.Writer
}

// NewPasscodePlatform reads passcodes from in and writes prompts to out.
func NewPasscodePlatform(hash string, maxAttempts int, in io.Reader, out io.Writer) *PasscodePlatform {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &PasscodePlatform{
		hash:        []byte(hash),
		maxAttempts: maxAttempts,
		in:          bufio.NewReader(in),
		out:         out,
	}
}

// HashPasscode returns the bcrypt hash to put in auth.passcode_hash.
func HashPasscode(passcode string) (string, error) {
	if strings.TrimSpace(passcode) == "" {
		return "", fmt.Errorf("passcode cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash passcode: %w", err)
	}
	return string(hash), nil
}

func (p *PasscodePlatform) HasHardware(ctx context.Context) bool {
	return true
}

func (p *PasscodePlatform) IsEnrolled(ctx context.Context) bool {
	return len(p.hash) > 0
}

// Authenticate prompts for a passcode and reads one line. An empty line
// cancels. After maxAttempts consecutive mismatches every attempt reports
// lockout until the platform is rebuilt.
func (p *PasscodePlatform) Authenticate(ctx context.Context, opts Options) (Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.failures >= p.maxAttempts {
		return Result{Reason: OutcomeLockout}, nil
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	label := opts.FallbackLabel
	if label == "" {
		label = "Passcode"
	}
	fmt.Fprintf(p.out, "%s\n%s: ", opts.PromptMessage, label)

	line, err := p.in.ReadString('\n')
	if err != nil && !stderrors.Is(err, io.EOF) {
		return Result{}, fmt.Errorf("failed to read passcode: %w", err)
	}
	fmt.Fprintln(p.out)
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	passcode := strings.TrimRight(line, "\r\n")
	if passcode == "" {
		return Result{Reason: OutcomeUserCancelled}, nil
	}

	err = bcrypt.CompareHashAndPassword(p.hash, []byte(passcode))
	switch {
	case err == nil:
		p.failures = 0
		return Result{Success: true}, nil
	case stderrors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		p.failures++
		if p.failures >= p.maxAttempts {
			return Result{Reason: OutcomeLockout}, nil
		}
		return Result{Reason: OutcomeFailed}, nil
	default:
		return Result{}, fmt.Errorf("failed to verify passcode: %w", err)
	}
}
