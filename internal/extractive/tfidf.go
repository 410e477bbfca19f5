// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extractive

// TermFrequency scores a sentence by the sum, over its non-stop words, of
// how often each word occurs in the whole text. Long sentences made of
// frequent words rank highest.
type TermFrequency struct {
	StopWords map[string]bool
}

// NewTermFrequency returns a TermFrequency ranker ignoring stopWords.
func NewTermFrequency(stopWords map[string]bool) *TermFrequency {
	return &TermFrequency{StopWords: stopWords}
}

// Name implements Ranker.
func (t *TermFrequency) Name() string { return "tfidf" }

// Rank implements Ranker.
func (t *TermFrequency) Rank(sentences []string) []float64 {
	bags := make([][]string, len(sentences))
	freq := make(map[string]float64)
	for i, s := range sentences {
		for _, w := range words(s) {
			if t.StopWords[w] {
				continue
			}
			bags[i] = append(bags[i], w)
			freq[w]++
		}
	}

	scores := make([]float64, len(sentences))
	for i, bag := range bags {
		for _, w := range bag {
			scores[i] += freq[w]
		}
	}
	return scores
}
