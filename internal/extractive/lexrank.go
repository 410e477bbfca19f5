// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extractive

import "math"

const (
	// DefaultThreshold is the cosine similarity above which two sentences
	// are linked in the graph.
	DefaultThreshold = 0.1
	// DefaultEpsilon stops the power iteration once successive score
	// vectors differ by less than this (Euclidean norm).
	DefaultEpsilon = 0.1

	maxIterations = 1000
)

// LexRank scores sentences by eigenvector centrality in a graph whose
// edges join sentences with TF-IDF cosine similarity above Threshold.
type LexRank struct {
	Threshold float64
	Epsilon   float64
	StopWords map[string]bool
}

// NewLexRank returns a LexRank ranker with the default threshold and
// epsilon and no stop words.
func NewLexRank() *LexRank {
	return &LexRank{Threshold: DefaultThreshold, Epsilon: DefaultEpsilon}
}

// Name implements Ranker.
func (l *LexRank) Name() string { return "lexrank" }

// Rank implements Ranker.
func (l *LexRank) Rank(sentences []string) []float64 {
	n := len(sentences)
	if n == 0 {
		return nil
	}

	bags := make([][]string, n)
	for i, s := range sentences {
		for _, w := range words(s) {
			if !l.StopWords[w] {
				bags[i] = append(bags[i], w)
			}
		}
	}

	tf := termFrequencies(bags)
	idf := inverseDocumentFrequencies(bags)

	matrix := make([][]float64, n)
	for row := range matrix {
		matrix[row] = make([]float64, n)
		degree := 0.0
		for col := range matrix[row] {
			if cosine(tf[row], tf[col], idf) > l.Threshold {
				matrix[row][col] = 1
				degree++
			}
		}
		if degree == 0 {
			degree = 1
		}
		for col := range matrix[row] {
			matrix[row][col] /= degree
		}
	}

	return powerMethod(matrix, l.Epsilon)
}

// termFrequencies returns, per sentence, each term's count divided by the
// count of the sentence's most frequent term.
func termFrequencies(bags [][]string) []map[string]float64 {
	out := make([]map[string]float64, len(bags))
	for i, bag := range bags {
		counts := make(map[string]float64, len(bag))
		maxCount := 1.0
		for _, w := range bag {
			counts[w]++
			if counts[w] > maxCount {
				maxCount = counts[w]
			}
		}
		for w := range counts {
			counts[w] /= maxCount
		}
		out[i] = counts
	}
	return out
}

// inverseDocumentFrequencies treats each sentence as a document:
// idf(t) = ln(N / (1 + number of sentences containing t)).
func inverseDocumentFrequencies(bags [][]string) map[string]float64 {
	containing := make(map[string]int)
	for _, bag := range bags {
		seen := make(map[string]bool, len(bag))
		for _, w := range bag {
			if !seen[w] {
				seen[w] = true
				containing[w]++
			}
		}
	}
	n := float64(len(bags))
	idf := make(map[string]float64, len(containing))
	for w, c := range containing {
		idf[w] = math.Log(n / float64(1+c))
	}
	return idf
}

// cosine is the TF-IDF weighted cosine similarity of two sentences.
func cosine(tf1, tf2 map[string]float64, idf map[string]float64) float64 {
	var num, d1, d2 float64
	for w, f1 := range tf1 {
		weight := idf[w] * idf[w]
		if f2, ok := tf2[w]; ok {
			num += f1 * f2 * weight
		}
		d1 += f1 * f1 * weight
	}
	for w, f2 := range tf2 {
		d2 += f2 * f2 * idf[w] * idf[w]
	}
	if d1 <= 0 || d2 <= 0 {
		return 0
	}
	return num / (math.Sqrt(d1) * math.Sqrt(d2))
}

// powerMethod iterates p = Mᵀp from the uniform vector until successive
// vectors are within epsilon.
func powerMethod(matrix [][]float64, epsilon float64) []float64 {
	n := len(matrix)
	p := make([]float64, n)
	for i := range p {
		p[i] = 1 / float64(n)
	}

	for iter := 0; iter < maxIterations; iter++ {
		next := make([]float64, n)
		for col := 0; col < n; col++ {
			for row := 0; row < n; row++ {
				next[col] += matrix[row][col] * p[row]
			}
		}
		var diff float64
		for i := range next {
			d := next[i] - p[i]
			diff += d * d
		}
		p = next
		if math.Sqrt(diff) <= epsilon {
			break
		}
	}
	return p
}
