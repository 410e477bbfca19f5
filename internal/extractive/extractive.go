// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extractive builds summaries by selecting sentences from the
// source text. Sentences are ranked by a pluggable Ranker (LexRank by
// default) and the best N are returned in document order.
package extractive

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/pdfsum/pkg/types"
)

// ErrEmptyText is returned when the input yields no sentences.
var ErrEmptyText = errors.New("no sentences to summarize")

// SentenceSplitter splits text into sentences.
type SentenceSplitter interface {
	Sentences(text string) []string
}

// Ranker scores each sentence; a higher score means more representative.
// The returned slice is parallel to sentences.
type Ranker interface {
	Name() string
	Rank(sentences []string) []float64
}

// Summarizer selects the top-ranked sentences of a text.
type Summarizer struct {
	splitter SentenceSplitter
	ranker   Ranker
	log      *zap.Logger
}

// New creates a Summarizer for cfg.Method and cfg.Language.
func New(cfg types.ExtractiveConfig, splitter SentenceSplitter, log *zap.Logger) (*Summarizer, error) {
	var r Ranker
	switch cfg.Method {
	case types.MethodLexRank, "":
		r = NewLexRank()
	case types.MethodTFIDF:
		r = NewTermFrequency(StopWords(cfg.Language))
	default:
		return nil, fmt.Errorf("unsupported method %q: use lexrank or tfidf", cfg.Method)
	}
	return NewWithRanker(splitter, r, log), nil
}

// NewWithRanker creates a Summarizer with an explicit ranker.
func NewWithRanker(splitter SentenceSplitter, r Ranker, log *zap.Logger) *Summarizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Summarizer{splitter: splitter, ranker: r, log: log}
}

// Summarize returns up to n sentences of text joined by single spaces.
// A text with fewer than n sentences is returned whole.
func (s *Summarizer) Summarize(text string, n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("sentence count must be positive, got %d", n)
	}
	sentences := s.splitter.Sentences(text)
	if len(sentences) == 0 {
		return "", ErrEmptyText
	}

	scores := s.ranker.Rank(sentences)
	picked := best(scores, n)

	s.log.Debug("ranked sentences",
		zap.String("method", s.ranker.Name()),
		zap.Int("sentences", len(sentences)),
		zap.Ints("selected", picked),
	)

	out := make([]string, len(picked))
	for i, idx := range picked {
		out[i] = sentences[idx]
	}
	return strings.Join(out, " "), nil
}

// best returns the indices of the n highest scores in ascending index
// order. Ties keep the earlier sentence.
func best(scores []float64, n int) []int {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})
	if n < len(idx) {
		idx = idx[:n]
	}
	sort.Ints(idx)
	return idx
}
