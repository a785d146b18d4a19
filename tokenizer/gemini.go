package tokenizer

import (
	"context"

	"google.golang.org/genai"
)

// Gemini sizes text by counting tokens through the Gemini CountTokens
// endpoint. Like Anthropic, each uncached probe is an API call, amortized
// by the engine's memoized sizer, with a character heuristic fallback.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini sizer with the provided client and model.
func NewGemini(client *genai.Client, model string) *Gemini {
	return &Gemini{client: client, model: model}
}

// Size returns the token count reported by the Gemini API, or the
// character heuristic if the call fails.
func (g *Gemini) Size(text string) int {
	if text == "" {
		return 0
	}
	if g.client == nil || g.model == "" {
		return estimateTokens(text)
	}

	result, err := g.client.Models.CountTokens(context.Background(), g.model, genai.Text(text), nil)
	if err != nil {
		return estimateTokens(text)
	}
	return int(result.TotalTokens)
}
