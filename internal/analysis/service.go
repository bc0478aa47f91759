package analysis

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/serenia-app/serenia/internal/api/anthropic"
	"github.com/serenia-app/serenia/internal/domain"
)

// MinTextLength is the minimum trimmed length accepted for analysis.
const MinTextLength = 20

// Service runs one analysis round-trip: validate, invoke the cascade, extract
// the JSON candidate, sanitize it into the bounded result.
type Service struct {
	cascade    *Cascade
	configured bool
	maxTokens  int
	logger     *slog.Logger
}

// NewService wires the analysis pipeline. configured reports whether a
// provider credential is present; when false every call fails with a
// configuration error before any network I/O.
func NewService(cascade *Cascade, configured bool, maxTokens int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cascade:    cascade,
		configured: configured,
		maxTokens:  maxTokens,
		logger:     logger,
	}
}

// Analyze validates text, runs the cascade and returns the normalized
// analysis paired with the model that produced it. Errors carry the canonical
// taxonomy: invalid_request for short input, configuration for a missing
// credential, provider_exhausted / upstream_format for upstream failures.
func (s *Service) Analyze(ctx context.Context, text string) (*domain.AnalysisResult, error) {
	// Count runes, not bytes: accented Spanish text would otherwise pass
	// at half the intended length.
	if utf8.RuneCountInString(strings.TrimSpace(text)) < MinTextLength {
		return nil, domain.ErrInvalidRequest("texto insuficiente (mínimo 20 caracteres)")
	}
	if !s.configured {
		return nil, domain.ErrConfiguration("missing ANTHROPIC_API_KEY")
	}

	prompt := BuildPrompt(text)
	req := &anthropic.MessagesRequest{
		MaxTokens: s.maxTokens,
		Messages:  []anthropic.Message{{Role: "user", Content: prompt}},
	}

	s.logger.Debug("starting analysis",
		slog.Int("text_len", len(text)),
		slog.Int("prompt_tokens_estimate", EstimateTokens(prompt)),
	)

	reply, usedModel, err := s.cascade.Invoke(ctx, req)
	if err != nil {
		return nil, err
	}

	candidate, ok := FirstJSONObject(reply.Text())
	if !ok {
		s.logger.Warn("no JSON found in upstream reply", slog.String("model", usedModel))
		return nil, domain.ErrUpstreamFormat("no JSON found in upstream response")
	}

	result := &domain.AnalysisResult{
		UsedModel: usedModel,
		Analysis:  Sanitize(candidate),
	}
	return result, nil
}
