package chunker

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// section is a half-open byte range of the input text.
type section struct {
	start int
	end   int
}

// sectionSource lazily yields candidate sections in offset order.
type sectionSource interface {
	next() (section, bool)
}

// fallbackStream segments the text from a starting offset at one of the
// universal Unicode levels. Providers never materialize these; they are
// computed on demand so a huge document only pays for the prefix the
// engine actually probes.
type fallbackStream struct {
	rest   string
	offset int
	level  Level
	state  int
}

func newFallbackStream(text string, offset int, level Level) *fallbackStream {
	return &fallbackStream{
		rest:   text[offset:],
		offset: offset,
		level:  level,
		state:  -1,
	}
}

func (f *fallbackStream) next() (section, bool) {
	if len(f.rest) == 0 {
		return section{}, false
	}
	var n int
	switch f.level {
	case LevelGrapheme:
		cluster, rest, _, state := uniseg.FirstGraphemeClusterInString(f.rest, f.state)
		f.state = state
		f.rest = rest
		n = len(cluster)
	case LevelWord:
		word, rest, state := uniseg.FirstWordInString(f.rest, f.state)
		f.state = state
		f.rest = rest
		n = len(word)
	case LevelSentence:
		sentence, rest, state := uniseg.FirstSentenceInString(f.rest, f.state)
		f.state = state
		f.rest = rest
		n = len(sentence)
	default:
		_, n = utf8.DecodeRuneInString(f.rest)
		f.rest = f.rest[n:]
	}
	s := section{start: f.offset, end: f.offset + n}
	f.offset += n
	return s, true
}
