// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package abstractive

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/pdiddy/pdfsum/pkg/types"
)

const ollamaPrompt = `Summarize the following text in a single paragraph of between %d and %d words.
Paraphrase; do not copy sentences verbatim. Reply with the summary only.

Text:
%s`

// Ollama generates summaries with a local model through langchaingo.
type Ollama struct {
	llm   llms.Model
	model string
}

// NewOllama connects to the Ollama server at cfg.Endpoint.
func NewOllama(cfg types.AbstractiveConfig) (*Ollama, error) {
	model := cfg.Model
	if model == "" || model == types.DefaultModel {
		model = types.DefaultOllamaModel
	}
	endpoint := cfg.Endpoint
	if endpoint == "" || endpoint == types.DefaultHFEndpoint {
		endpoint = types.DefaultOllamaEndpoint
	}

	llm, err := ollama.New(ollama.WithModel(model), ollama.WithServerURL(endpoint))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ollama: %w", err)
	}
	return &Ollama{llm: llm, model: model}, nil
}

// Name implements Backend.
func (o *Ollama) Name() string { return "ollama:" + o.model }

// Generate implements Backend. The word bounds in the prompt stand in for
// token bounds; temperature 0 keeps the output deterministic.
func (o *Ollama) Generate(ctx context.Context, text string, p Params) (string, error) {
	prompt := fmt.Sprintf(ollamaPrompt, p.MinLength, p.MaxLength, text)
	return llms.GenerateFromSinglePrompt(ctx, o.llm, prompt,
		llms.WithTemperature(0),
		llms.WithMaxTokens(p.MaxLength*2),
	)
}
