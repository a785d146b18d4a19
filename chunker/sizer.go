package chunker

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Characters sizes text by its number of Unicode scalar values.
// This is the default sizer.
type Characters struct{}

// Size returns the number of Unicode scalar values in text.
func (Characters) Size(text string) int {
	return utf8.RuneCountInString(text)
}

// Bytes sizes text by its UTF-8 encoded length.
type Bytes struct{}

// Size returns len(text).
func (Bytes) Size(text string) int {
	return len(text)
}

// Graphemes sizes text by its number of extended grapheme clusters,
// i.e. user-perceived characters.
type Graphemes struct{}

// Size returns the number of grapheme clusters in text.
func (Graphemes) Size(text string) int {
	return uniseg.GraphemeClusterCount(text)
}
