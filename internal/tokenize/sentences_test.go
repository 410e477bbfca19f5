// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizer_Sentences(t *testing.T) {
	tok := Default("english")

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "simple",
			text: "It was a dreary night. The rain pattered! Was it alive?",
			want: []string{"It was a dreary night.", "The rain pattered!", "Was it alive?"},
		},
		{
			name: "abbreviation before a name",
			text: "Dr. Frankenstein left Geneva. He went north.",
			want: []string{"Dr. Frankenstein left Geneva.", "He went north."},
		},
		{
			name: "abbreviation followed by a sentence starter",
			text: "They sailed from the U.S. However, the ice held them.",
			want: []string{"They sailed from the U.S.", "However, the ice held them."},
		},
		{
			name: "initials",
			text: "The letter was signed by M. Shelley in London. It arrived late.",
			want: []string{"The letter was signed by M. Shelley in London.", "It arrived late."},
		},
		{
			name: "lower case continuation",
			text: "See the figures on p. five and p. six.",
			want: []string{"See the figures on p. five and p. six."},
		},
		{
			name: "closing quote after period",
			text: `He said "Begone." She did not move.`,
			want: []string{`He said "Begone."`, "She did not move."},
		},
		{
			name: "whitespace collapses and blank lines split",
			text: "A heading without a period\n\nThe  body\nwraps   here. End.",
			want: []string{"A heading without a period", "The body wraps here.", "End."},
		},
		{
			name: "ellipsis",
			text: "It waited... Then it spoke. It paused... and went on.",
			want: []string{"It waited...", "Then it spoke.", "It paused... and went on."},
		},
		{
			name: "no terminal punctuation",
			text: "an unfinished thought",
			want: []string{"an unfinished thought"},
		},
		{
			name: "empty",
			text: "   \n\n  ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tok.Sentences(tt.text))
		})
	}
}

func TestTokenizer_CustomTables(t *testing.T) {
	tok := New([]string{"approx"}, nil)
	got := tok.Sentences("It weighed approx. Ten stone. Then it ran.")
	assert.Equal(t, []string{"It weighed approx. Ten stone.", "Then it ran."}, got)
}

func TestPunktLanguage(t *testing.T) {
	name, err := PunktLanguage("EN")
	assert.NoError(t, err)
	assert.Equal(t, "english", name)

	name, err = PunktLanguage("es")
	assert.NoError(t, err)
	assert.Equal(t, "spanish", name)

	_, err = PunktLanguage("fr")
	assert.ErrorContains(t, err, "unsupported language")
}
