package tokenizer

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
)

// Anthropic sizes text by counting tokens through the Anthropic token
// counting endpoint. Each uncached probe is an API call; the chunking
// engine's memoized sizer keeps that to O(log n) calls per chunk. When the
// endpoint is unreachable the sizer degrades to a character heuristic so
// chunking never fails.
type Anthropic struct {
	client *anthropic.Client
	model  string
}

// NewAnthropic creates an Anthropic sizer with the provided client and
// model.
func NewAnthropic(client *anthropic.Client, model string) *Anthropic {
	return &Anthropic{client: client, model: model}
}

// Size returns the token count reported by the Anthropic API, or the
// character heuristic if the call fails.
func (a *Anthropic) Size(text string) int {
	if text == "" {
		return 0
	}
	if a.client == nil || a.model == "" {
		return estimateTokens(text)
	}

	params := anthropic.MessageCountTokensParams{
		Model: anthropic.Model(a.model),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(text)),
		},
	}
	result, err := a.client.Messages.CountTokens(context.Background(), params)
	if err != nil {
		return estimateTokens(text)
	}
	return int(result.InputTokens)
}
