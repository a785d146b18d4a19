package chunker

import (
	"regexp"

	"github.com/rivo/uniseg"
)

// TextChunker splits plain text. Boundaries, coarsest to finest: runs of
// newlines (longer runs are coarser, so paragraph breaks beat line
// breaks), Unicode sentences, words, grapheme clusters, and finally
// individual characters.
type TextChunker struct {
	engine
}

// NewTextChunker creates a TextChunker for the given configuration.
func NewTextChunker(config ChunkConfig) (*TextChunker, error) {
	eng, err := newEngine(config, textProvider{}, trimAll)
	if err != nil {
		return nil, err
	}
	return &TextChunker{engine: eng}, nil
}

// lineBreaks matches a run of newlines. Matching \r\n pairs first keeps a
// CRLF sequence in a single run.
var lineBreaks = regexp.MustCompile(`(?:\r\n)+|\r+|\n+`)

// textProvider derives boundary ranges from newline runs. Each distinct
// run length is its own level: n newlines rank just above a run of n-1.
type textProvider struct{}

func (textProvider) parse(text string) []boundary {
	matches := lineBreaks.FindAllStringIndex(text, -1)
	ranges := make([]boundary, 0, len(matches))
	for _, m := range matches {
		newlines := uniseg.GraphemeClusterCount(text[m[0]:m[1]])
		ranges = append(ranges, boundary{
			level: LevelSentence + Level(newlines),
			start: m[0],
			end:   m[1],
		})
	}
	return ranges
}

func (textProvider) position(Level) splitPosition { return splitOwn }

func (textProvider) glueWhitespace(Level) bool { return false }
