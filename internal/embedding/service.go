package embedding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hartlaw-ai/lexrag/internal/config"
)

// ErrNoProvider means no remote credential was configured and the local
// fallback was disabled, so there is nothing to embed with.
var ErrNoProvider = errors.New("no embedding provider available")

// Service routes embedding requests to the remote provider, retrying
// transient failures with exponential backoff, and degrades to the local
// model when the remote is absent or exhausted. Degradation changes answer
// quality, so every retry and fallback activation is logged.
//
// The service holds no mutable state beyond the lazily built local embedder,
// so it is safe for concurrent use.
type Service struct {
	primary Embedder // nil when no credential configured

	localFn   func() Embedder
	localOnce sync.Once
	local     Embedder

	fallbackEnabled bool
	retryAttempts   int
	backoffBase     time.Duration
}

func NewService(cfg config.EmbeddingConfig) *Service {
	var primary Embedder
	if cfg.APIKey != "" {
		primary = NewMistralEmbedder(cfg.APIKey, cfg.BaseURL, cfg.Model)
	}
	return newService(
		primary,
		func() Embedder { return NewOllamaEmbedder(cfg.LocalBaseURL, cfg.LocalModel) },
		cfg.FallbackEnabled,
		cfg.RetryAttempts,
		time.Second,
	)
}

// NewServiceWith builds a service around explicit embedders, for callers
// that assemble their own providers.
func NewServiceWith(primary, local Embedder, fallbackEnabled bool, retryAttempts int, backoffBase time.Duration) *Service {
	return newService(primary, func() Embedder { return local }, fallbackEnabled, retryAttempts, backoffBase)
}

func newService(primary Embedder, localFn func() Embedder, fallbackEnabled bool, retryAttempts int, backoffBase time.Duration) *Service {
	if retryAttempts <= 0 {
		retryAttempts = 6
	}
	return &Service{
		primary:         primary,
		localFn:         localFn,
		fallbackEnabled: fallbackEnabled,
		retryAttempts:   retryAttempts,
		backoffBase:     backoffBase,
	}
}

// Embed returns one vector per input text, in input order. Empty input is a
// no-op, not an error.
func (s *Service) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	if s.primary == nil {
		if !s.fallbackEnabled {
			return nil, ErrNoProvider
		}
		return s.localEmbedder().Embed(ctx, texts)
	}

	vectors, err := s.embedWithRetry(ctx, texts)
	if err == nil {
		return vectors, nil
	}

	var pErr *ProviderError
	if errors.As(err, &pErr) && !pErr.Kind.Transient() {
		// Credential or request errors are fatal; falling back here would
		// hide a misconfiguration.
		return nil, err
	}

	if !s.fallbackEnabled {
		return nil, errors.Join(err, ErrFallbackDisabled)
	}

	slog.Warn("remote embedding exhausted retries, using local fallback",
		"provider", s.primary.Name(),
		"error", err,
	)
	return s.localEmbedder().Embed(ctx, texts)
}

// EmbedSingle embeds one text.
func (s *Service) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	vectors, err := s.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}
	return vectors[0], nil
}

func (s *Service) embedWithRetry(ctx context.Context, texts []string) ([][]float32, error) {
	var lastErr error
	for attempt := 1; attempt <= s.retryAttempts; attempt++ {
		if attempt > 1 {
			backoff := s.backoffBase << (attempt - 2)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			slog.Debug("retrying remote embedding",
				"provider", s.primary.Name(),
				"attempt", attempt,
				"backoff", backoff,
			)
		}

		vectors, err := s.primary.Embed(ctx, texts)
		if err == nil {
			return vectors, nil
		}
		lastErr = err

		var pErr *ProviderError
		if errors.As(err, &pErr) && !pErr.Kind.Transient() {
			return nil, err
		}
		slog.Warn("remote embedding attempt failed",
			"provider", s.primary.Name(),
			"attempt", attempt,
			"error", err,
		)
	}
	return nil, fmt.Errorf("embedding retries exhausted after %d attempts: %w", s.retryAttempts, lastErr)
}

// localEmbedder builds the fallback exactly once, even under concurrent
// first use.
func (s *Service) localEmbedder() Embedder {
	s.localOnce.Do(func() {
		s.local = s.localFn()
		slog.Info("initialized local embedding fallback", "provider", s.local.Name())
	})
	return s.local
}
