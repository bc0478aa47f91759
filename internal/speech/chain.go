package speech

import (
	"context"
	"log/slog"

	"github.com/serenia-app/serenia/internal/domain"
)

// Chain tries each engine in order, skipping unavailable ones, and returns
// the first successful synthesis.
type Chain struct {
	engines []Synthesizer
	logger  *slog.Logger
}

// NewChain creates a chain over the given engines, in preference order.
func NewChain(logger *slog.Logger, engines ...Synthesizer) *Chain {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chain{engines: engines, logger: logger}
}

// Synthesize walks the engine list. Failures are logged and the next engine
// is tried; when every engine is unavailable or failed, a provider
// exhaustion error is returned.
func (c *Chain) Synthesize(ctx context.Context, text string) ([]byte, string, error) {
	for _, engine := range c.engines {
		if !engine.Available() {
			c.logger.Debug("speech engine unavailable", slog.String("engine", engine.Name()))
			continue
		}

		audio, contentType, err := engine.Synthesize(ctx, text)
		if err != nil {
			c.logger.Warn("speech engine failed",
				slog.String("engine", engine.Name()),
				slog.String("error", err.Error()),
			)
			continue
		}

		c.logger.Info("speech synthesized",
			slog.String("engine", engine.Name()),
			slog.Int("bytes", len(audio)),
		)
		return audio, contentType, nil
	}

	return nil, "", domain.ErrProvidersExhausted("no speech engine available")
}
