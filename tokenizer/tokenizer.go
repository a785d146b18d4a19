// Package tokenizer provides chunk sizers backed by tokenizers, so chunk
// capacities can be expressed in model tokens instead of characters.
//
// Tiktoken counts locally with a BPE vocabulary. Anthropic and Gemini
// count through their providers' token-counting endpoints; both fall back
// to a character heuristic when the endpoint is unreachable, because the
// chunking engine never fails mid-iteration.
package tokenizer

import "unicode/utf8"

// heuristicCharsPerToken approximates tokens as chars/4 when a remote
// token count is unavailable.
const heuristicCharsPerToken = 4

// estimateTokens is the shared fallback for remote sizers.
func estimateTokens(text string) int {
	if text == "" {
		return 0
	}
	n := utf8.RuneCountInString(text)
	tokens := n / heuristicCharsPerToken
	if tokens == 0 {
		tokens = 1
	}
	return tokens
}
