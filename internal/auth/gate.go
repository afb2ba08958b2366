package auth

import (
	"context"
	"time"

	"go.uber.org/zap"
	"locked-todo/internal/config"
)

// Gate decides whether a mutation may proceed. The platform capability is
// read once at construction and never polled again.
type Gate struct {
	platform   Platform
	capability Capability
	options    Options
	timeout    time.Duration
	logger     *zap.Logger
}

// NewGate snapshots the platform capability and returns a gate using the
// prompt, fallback label and timeout from cfg.
func NewGate(ctx context.Context, platform Platform, cfg *config.Config, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = config.NewConfig()
	}

	capability := Capability{HardwareAvailable: platform.HasHardware(ctx)}
	if capability.HardwareAvailable {
		capability.Enrolled = platform.IsEnrolled(ctx)
	}

	logger.Debug("auth capability",
		zap.Bool("hardware", capability.HardwareAvailable),
		zap.Bool("enrolled", capability.Enrolled))

	return &Gate{
		platform:   platform,
		capability: capability,
		options: Options{
			PromptMessage: cfg.Auth.PromptMessage,
			FallbackLabel: cfg.Auth.FallbackLabel,
		},
		timeout: cfg.GetAuthTimeout(),
		logger:  logger,
	}
}

// CheckCapability returns the snapshot taken when the gate was built.
func (g *Gate) CheckCapability() Capability {
	return g.capability
}

// Authenticate runs a single challenge. An empty prompt falls back to the
// configured one. The platform is not invoked when authentication is
// unavailable on this device.
func (g *Gate) Authenticate(ctx context.Context, prompt string) Outcome {
	if !g.capability.HardwareAvailable {
		return OutcomeNoHardware
	}
	if !g.capability.Enrolled {
		return OutcomeNotEnrolled
	}

	opts := g.options
	if prompt != "" {
		opts.PromptMessage = prompt
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	result, err := g.platform.Authenticate(ctx, opts)
	if err != nil {
		g.logger.Warn("platform authentication error", zap.Error(err))
		return OutcomePlatformError
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		g.logger.Warn("authentication did not resolve in time", zap.Error(ctxErr))
		return OutcomePlatformError
	}
	if result.Success {
		return OutcomeSuccess
	}
	return reasonOutcome(result.Reason)
}
