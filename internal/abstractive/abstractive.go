// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package abstractive generates paraphrasing summaries with a pretrained
// sequence-to-sequence model hosted elsewhere (Hugging Face Inference API
// or a local Ollama server).
//
// Input is sent whole. There is no chunking: text longer than the model's
// input window is truncated by the model host, so only the beginning of a
// long document shapes the summary.
package abstractive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/pdfsum/pkg/types"
)

var (
	// ErrEmptyText is returned when there is no text to summarize.
	ErrEmptyText = errors.New("no text to summarize")

	// ErrEmptySummary is returned when the model produced nothing.
	ErrEmptySummary = errors.New("model returned no summary")
)

// Params bounds the generated summary, in model tokens.
type Params struct {
	MaxLength int
	MinLength int
}

// Backend abstracts the model host so tests can supply a fake.
type Backend interface {
	Name() string
	Generate(ctx context.Context, text string, p Params) (string, error)
}

// Summarizer produces one deterministic summary per call.
type Summarizer struct {
	backend    Backend
	params     Params
	tokenLimit int
	log        *zap.Logger
}

// New creates a Summarizer for the backend named in cfg.
func New(cfg types.AbstractiveConfig, log *zap.Logger) (*Summarizer, error) {
	var (
		b   Backend
		err error
	)
	switch cfg.Backend {
	case types.BackendHuggingFace, "":
		b = NewHuggingFace(cfg, log)
	case types.BackendOllama:
		b, err = NewOllama(cfg)
	default:
		return nil, fmt.Errorf("unsupported abstractive backend %q: use huggingface or ollama", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return NewWithBackend(b, cfg, log), nil
}

// NewWithBackend creates a Summarizer around an explicit backend.
func NewWithBackend(b Backend, cfg types.AbstractiveConfig, log *zap.Logger) *Summarizer {
	if log == nil {
		log = zap.NewNop()
	}
	p := Params{MaxLength: cfg.MaxLength, MinLength: cfg.MinLength}
	if p.MaxLength <= 0 {
		p.MaxLength = types.DefaultMaxLength
	}
	if p.MinLength <= 0 {
		p.MinLength = types.DefaultMinLength
	}
	if p.MinLength > p.MaxLength {
		p.MinLength = p.MaxLength
	}
	limit := cfg.InputTokenLimit
	if limit <= 0 {
		limit = types.DefaultInputTokenLimit
	}
	return &Summarizer{backend: b, params: p, tokenLimit: limit, log: log}
}

// Params returns the length bounds in effect.
func (s *Summarizer) Params() Params { return s.params }

// Summarize returns the first summary the model generates for text.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}

	if est := EstimateTokens(text); est > s.tokenLimit {
		s.log.Warn("input exceeds model window and will be truncated by the model host",
			zap.String("backend", s.backend.Name()),
			zap.Int("estimated_tokens", est),
			zap.Int("limit", s.tokenLimit),
		)
	}

	out, err := s.backend.Generate(ctx, text, s.params)
	if err != nil {
		return "", fmt.Errorf("summarizing with %s: %w", s.backend.Name(), err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", ErrEmptySummary
	}
	return out, nil
}

// EstimateTokens approximates the subword token count of text at four
// tokens per three words.
func EstimateTokens(text string) int {
	return len(strings.Fields(text)) * 4 / 3
}
