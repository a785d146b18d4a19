// Package options provides functional options for building a chunker
// configuration.
package options

import (
	tiktoken "github.com/tiktoken-go/tokenizer"

	"github.com/botirk38/semanticchunk/chunker"
	"github.com/botirk38/semanticchunk/tokenizer"
	"github.com/botirk38/semanticchunk/types"
)

// Option represents a configuration option for a chunker.
type Option func(*chunker.ChunkConfig) error

// New builds a validated ChunkConfig from the default configuration plus
// the given options.
func New(opts ...Option) (chunker.ChunkConfig, error) {
	config := chunker.DefaultChunkConfig()
	if err := Apply(&config, opts...); err != nil {
		return chunker.ChunkConfig{}, err
	}
	if err := config.Validate(); err != nil {
		return chunker.ChunkConfig{}, err
	}
	return config, nil
}

// Apply applies all the given options to the config.
func Apply(config *chunker.ChunkConfig, opts ...Option) error {
	for _, opt := range opts {
		if err := opt(config); err != nil {
			return err
		}
	}
	return nil
}

// WithCapacity sets a fixed chunk capacity: desired and max are both size.
func WithCapacity(size int) Option {
	return func(config *chunker.ChunkConfig) error {
		config.Capacity = chunker.NewCapacity(size)
		return nil
	}
}

// WithCapacityRange sets a chunk capacity range. Chunks aim for the
// desired size but may grow up to max to stay at a coarser semantic level.
func WithCapacityRange(desired, max int) Option {
	return func(config *chunker.ChunkConfig) error {
		capacity, err := chunker.NewCapacityRange(desired, max)
		if err != nil {
			return err
		}
		config.Capacity = capacity
		return nil
	}
}

// WithOverlap sets the maximum size of content shared between adjacent
// chunks.
func WithOverlap(overlap int) Option {
	return func(config *chunker.ChunkConfig) error {
		config.Overlap = overlap
		return nil
	}
}

// WithTrim enables or disables whitespace trimming of emitted chunks.
func WithTrim(trim bool) Option {
	return func(config *chunker.ChunkConfig) error {
		config.Trim = trim
		return nil
	}
}

// WithSizer sets a custom sizer.
func WithSizer(sizer types.Sizer) Option {
	return func(config *chunker.ChunkConfig) error {
		if sizer == nil {
			return chunker.ErrNilSizer
		}
		config.Sizer = sizer
		return nil
	}
}

// WithSizerFunc sets a callback sizer.
func WithSizerFunc(size func(text string) int) Option {
	return func(config *chunker.ChunkConfig) error {
		if size == nil {
			return chunker.ErrNilSizer
		}
		config.Sizer = types.SizerFunc(size)
		return nil
	}
}

// WithTiktokenSizer sets a tiktoken-backed token sizer for the given
// encoding, so capacity and overlap are measured in tokens.
func WithTiktokenSizer(encoding tiktoken.Encoding) Option {
	return func(config *chunker.ChunkConfig) error {
		sizer, err := tokenizer.NewTiktoken(encoding)
		if err != nil {
			return err
		}
		config.Sizer = sizer
		return nil
	}
}
