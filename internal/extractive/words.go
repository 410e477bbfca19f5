// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extractive

import (
	"regexp"
	"strings"
)

var wordPattern = regexp.MustCompile(`\p{L}[\p{L}'\-]*`)

// words returns the lower-cased words of a sentence. Numbers and
// punctuation are dropped.
func words(sentence string) []string {
	found := wordPattern.FindAllString(sentence, -1)
	for i, w := range found {
		found[i] = strings.ToLower(w)
	}
	return found
}

// StopWords returns the stop-word set for an ISO language code. Unknown
// languages get an empty set.
func StopWords(lang string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range stopWords[strings.ToLower(lang)] {
		set[w] = true
	}
	return set
}

var stopWords = map[string][]string{
	"en": {
		"a", "about", "above", "after", "again", "against", "all", "am", "an", "and",
		"any", "are", "as", "at", "be", "because", "been", "before", "being", "below",
		"between", "both", "but", "by", "can", "could", "did", "do", "does", "doing",
		"down", "during", "each", "few", "for", "from", "further", "had", "has", "have",
		"having", "he", "her", "here", "hers", "herself", "him", "himself", "his", "how",
		"i", "if", "in", "into", "is", "it", "its", "itself", "just", "me", "more",
		"most", "my", "myself", "no", "nor", "not", "now", "of", "off", "on", "once",
		"only", "or", "other", "our", "ours", "ourselves", "out", "over", "own", "same",
		"she", "should", "so", "some", "such", "than", "that", "the", "their", "theirs",
		"them", "themselves", "then", "there", "these", "they", "this", "those", "through",
		"to", "too", "under", "until", "up", "very", "was", "we", "were", "what", "when",
		"where", "which", "while", "who", "whom", "why", "will", "with", "would", "you",
		"your", "yours", "yourself", "yourselves",
	},
	"es": {
		"a", "al", "algo", "algunas", "algunos", "ante", "antes", "como", "con", "contra",
		"cual", "cuando", "de", "del", "desde", "donde", "durante", "e", "el", "ella",
		"ellas", "ellos", "en", "entre", "era", "es", "esa", "esas", "ese", "eso", "esos",
		"esta", "estaba", "estas", "este", "esto", "estos", "fue", "ha", "hay", "la",
		"las", "le", "les", "lo", "los", "mas", "me", "mi", "mis", "mucho", "muy", "nada",
		"ni", "no", "nos", "nosotros", "o", "os", "otra", "otro", "para", "pero", "poco",
		"por", "porque", "que", "quien", "se", "ser", "si", "sin", "sobre", "son", "su",
		"sus", "también", "te", "tiene", "todo", "todos", "tu", "un", "una", "uno",
		"unos", "y", "ya", "yo",
	},
}

// DefaultKeywords is the keyword count used when none is given.
const DefaultKeywords = 10

// Keywords returns up to n distinct lower-cased words of text in order of
// first appearance, skipping stop words for lang and anything that is not
// a word (numbers, punctuation).
func Keywords(text, lang string, n int) []string {
	if n <= 0 {
		return nil
	}
	stop := StopWords(lang)
	seen := make(map[string]bool)
	var out []string
	for _, w := range words(text) {
		if stop[w] || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
		if len(out) == n {
			break
		}
	}
	return out
}
