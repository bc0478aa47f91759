package analysis

import (
	"context"
	"log/slog"

	"github.com/serenia-app/serenia/internal/api/anthropic"
	"github.com/serenia-app/serenia/internal/domain"
)

// CompletionClient is the surface of the provider client the cascade needs.
type CompletionClient interface {
	CreateMessage(ctx context.Context, req *anthropic.MessagesRequest) (*anthropic.MessagesResponse, error)
}

// Cascade tries an ordered list of model identifiers against one completion
// endpoint until one succeeds. Later identifiers are cheaper fallbacks, so
// attempts are strictly sequential; parallelizing would burn quota on the
// premium models when an early one would have worked.
type Cascade struct {
	client CompletionClient
	models []string
	logger *slog.Logger
}

// NewCascade creates a cascade over the given ordered model identifiers.
func NewCascade(client CompletionClient, models []string, logger *slog.Logger) *Cascade {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cascade{
		client: client,
		models: models,
		logger: logger,
	}
}

// Invoke issues one attempt per model, in order, and returns the first
// successful reply together with the model that produced it. HTTP-level and
// transport-level failures are treated identically: log and advance. An
// attempt is never retried on the same model. When every model fails the
// cascade reports provider exhaustion.
func (c *Cascade) Invoke(ctx context.Context, req *anthropic.MessagesRequest) (*anthropic.MessagesResponse, string, error) {
	for _, model := range c.models {
		attempt := *req
		attempt.Model = model

		resp, err := c.client.CreateMessage(ctx, &attempt)
		if err != nil {
			c.logger.Warn("model attempt failed",
				slog.String("model", model),
				slog.String("error", truncate(err.Error(), 180)),
			)
			continue
		}

		c.logger.Info("model attempt succeeded", slog.String("model", model))
		return resp, model, nil
	}

	return nil, "", domain.ErrProvidersExhausted("no candidate model produced a response")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n])
	}
	return s
}
