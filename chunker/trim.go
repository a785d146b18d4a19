package chunker

import (
	"strings"
	"unicode"
)

// trimPolicy controls how whitespace is stripped from emitted chunks.
type trimPolicy int

const (
	// trimAll removes all leading and trailing whitespace.
	trimAll trimPolicy = iota

	// trimPreserveIndentation removes leading newlines and trailing
	// whitespace. If the chunk spans multiple lines, leading spaces or
	// tabs are kept so indentation-sensitive text (Markdown, code) stays
	// parseable. Single-line chunks trim like trimAll.
	trimPreserveIndentation
)

// trim strips whitespace from chunk per the policy, returning the adjusted
// byte offset of the remaining text and the trimmed slice.
func (p trimPolicy) trim(offset int, chunk string) (int, string) {
	if p == trimPreserveIndentation && strings.ContainsAny(strings.TrimSpace(chunk), "\r\n") {
		trimmed := strings.TrimLeft(chunk, "\r\n")
		offset += len(chunk) - len(trimmed)
		return offset, strings.TrimRightFunc(trimmed, unicode.IsSpace)
	}
	trimmed := strings.TrimLeftFunc(chunk, unicode.IsSpace)
	offset += len(chunk) - len(trimmed)
	return offset, strings.TrimRightFunc(trimmed, unicode.IsSpace)
}
