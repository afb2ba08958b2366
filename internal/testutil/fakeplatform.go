package testutil

import (
	"context"
	"sync"

	"locked-todo/internal/auth"
)

// FakePlatform is a scripted auth.Platform. Results are consumed in order;
// once the script runs out the Default result is returned.
type FakePlatform struct {
	mu sync.Mutex

	Hardware bool
	Enrolled bool
	Default  auth.Result
	Err      error

	script  []auth.Result
	calls   int
	prompts []auth.Options

	// Block, when set, is received from before each challenge resolves.
	Block chan struct{}
	// Entered, when set, is signalled as soon as a challenge starts.
	Entered chan struct{}

	hardwareChecks int
	enrolledChecks int
}

// NewFakePlatform returns an enrolled platform that approves every challenge.
func NewFakePlatform() *FakePlatform {
	return &FakePlatform{
		Hardware: true,
		Enrolled: true,
		Default:  auth.Result{Success: true},
	}
}

// Approving is NewFakePlatform under a name that reads well in tests.
func Approving() *FakePlatform {
	return NewFakePlatform()
}

// Denying returns an enrolled platform that reports reason for every challenge.
func Denying(reason auth.Outcome) *FakePlatform {
	p := NewFakePlatform()
	p.Default = auth.Result{Reason: reason}
	return p
}

// Script queues results to return before falling back to Default.
func (p *FakePlatform) Script(results ...auth.Result) *FakePlatform {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.script = append(p.script, results...)
	return p
}

func (p *FakePlatform) HasHardware(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hardwareChecks++
	return p.Hardware
}

func (p *FakePlatform) IsEnrolled(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enrolledChecks++
	return p.Enrolled
}

func (p *FakePlatform) Authenticate(ctx context.Context, opts auth.Options) (auth.Result, error) {
	p.mu.Lock()
	p.calls++
	p.prompts = append(p.prompts, opts)
	entered, block := p.Entered, p.Block
	p.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return auth.Result{}, ctx.Err()
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return auth.Result{}, p.Err
	}
	if len(p.script) > 0 {
		result := p.script[0]
		p.script = p.script[1:]
		return result, nil
	}
	return p.Default, nil
}

// Calls returns how many challenges were started.
func (p *FakePlatform) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// Prompts returns the options of every challenge, in order.
func (p *FakePlatform) Prompts() []auth.Options {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]auth.Options(nil), p.prompts...)
}

// CapabilityChecks returns how many times hardware and enrollment were queried.
func (p *FakePlatform) CapabilityChecks() (hardware, enrolled int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hardwareChecks, p.enrolledChecks
}
