// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tokenize splits text into sentences using Punkt abbreviation
// tables and installs those tables on first use.
package tokenize

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	openers = "\"'([{‘“«¿¡"
	closers = "\"')]}’”»"
)

var paragraphBreak = regexp.MustCompile(`\n[ \t\r\f]*\n`)

// Tokenizer splits text into sentences. A period ends a sentence unless the
// word before it is a known abbreviation, an initial, or the next word
// starts in lower case. Abbreviations still end a sentence when the next
// word is a capitalized frequent sentence starter.
type Tokenizer struct {
	abbrevs  map[string]bool
	starters map[string]bool
}

// New creates a Tokenizer from lower-case abbreviations (without the final
// period, e.g. "dr", "e.g") and lower-case sentence starters.
func New(abbrevs, starters []string) *Tokenizer {
	t := &Tokenizer{
		abbrevs:  make(map[string]bool, len(abbrevs)),
		starters: make(map[string]bool, len(starters)),
	}
	for _, a := range abbrevs {
		if a = strings.TrimSpace(strings.ToLower(a)); a != "" {
			t.abbrevs[a] = true
		}
	}
	for _, s := range starters {
		if s = strings.TrimSpace(strings.ToLower(s)); s != "" {
			t.starters[s] = true
		}
	}
	return t
}

// Sentences returns the sentences of text in order. Runs of whitespace
// inside a sentence collapse to a single space. Blank lines always end a
// sentence.
func (t *Tokenizer) Sentences(text string) []string {
	var out []string
	for _, para := range paragraphBreak.Split(text, -1) {
		out = append(out, t.split(strings.Fields(para))...)
	}
	return out
}

func (t *Tokenizer) split(tokens []string) []string {
	var (
		out []string
		cur []string
	)
	for i, tok := range tokens {
		cur = append(cur, tok)
		if i+1 < len(tokens) && t.isBoundary(tok, tokens[i+1]) {
			out = append(out, strings.Join(cur, " "))
			cur = cur[:0]
		}
	}
	if len(cur) > 0 {
		out = append(out, strings.Join(cur, " "))
	}
	return out
}

func (t *Tokenizer) isBoundary(tok, next string) bool {
	core := strings.TrimRight(tok, closers)
	if core == "" {
		return false
	}
	if strings.HasSuffix(core, "…") {
		return startsUpper(next)
	}

	switch core[len(core)-1] {
	case '!', '?':
		return true
	case '.':
	default:
		return false
	}

	if strings.HasSuffix(core, "..") {
		return startsUpper(next)
	}

	word := strings.ToLower(strings.TrimLeft(strings.TrimSuffix(core, "."), openers))
	if word == "" {
		return false
	}
	if t.abbrevs[word] || isAcronym(word) {
		return startsUpper(next) && t.starters[normalize(next)]
	}
	if isInitial(word) {
		return false
	}
	return !startsLower(next)
}

// isInitial reports whether word is a single letter, as in "J. Smith".
func isInitial(word string) bool {
	r := []rune(word)
	return len(r) == 1 && unicode.IsLetter(r[0])
}

// isAcronym reports whether word looks like "u.s" or "e.g": single letters
// separated by periods.
func isAcronym(word string) bool {
	parts := strings.Split(word, ".")
	if len(parts) < 2 {
		return false
	}
	for _, p := range parts {
		if !isInitial(p) {
			return false
		}
	}
	return true
}

func firstLetter(s string) (rune, bool) {
	for _, r := range strings.TrimLeft(s, openers) {
		return r, true
	}
	return 0, false
}

func startsUpper(s string) bool {
	r, ok := firstLetter(s)
	return ok && unicode.IsUpper(r)
}

func startsLower(s string) bool {
	r, ok := firstLetter(s)
	return ok && unicode.IsLower(r)
}

func normalize(s string) string {
	return strings.ToLower(strings.Trim(s, openers+closers+".,;:!?"))
}
