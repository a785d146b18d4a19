package tokenizer

import (
	"fmt"

	tiktoken "github.com/tiktoken-go/tokenizer"
)

// Tiktoken sizes text by its BPE token count using a local tiktoken
// vocabulary. Padding tokens are never produced by a plain encode, and
// special tokens follow the codec's own policy, so the reported size
// matches the text's contribution inside a downstream encode call.
type Tiktoken struct {
	codec tiktoken.Codec
}

// NewTiktoken creates a Tiktoken sizer for the given encoding, for example
// tiktoken's Cl100kBase.
func NewTiktoken(encoding tiktoken.Encoding) (*Tiktoken, error) {
	codec, err := tiktoken.Get(encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tokenizer: %w", err)
	}
	return &Tiktoken{codec: codec}, nil
}

// NewTiktokenForModel creates a Tiktoken sizer using the encoding that the
// given OpenAI model uses.
func NewTiktokenForModel(model tiktoken.Model) (*Tiktoken, error) {
	codec, err := tiktoken.ForModel(model)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tokenizer: %w", err)
	}
	return &Tiktoken{codec: codec}, nil
}

// Size returns the number of tokens the text encodes to.
func (t *Tiktoken) Size(text string) int {
	if text == "" {
		return 0
	}
	ids, _, err := t.codec.Encode(text)
	if err != nil {
		// Encode only fails on internal vocabulary errors; fall back to
		// the character heuristic rather than failing mid-chunk.
		return estimateTokens(text)
	}
	return len(ids)
}
