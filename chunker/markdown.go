package chunker

import (
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	gtext "github.com/yuin/goldmark/text"
)

// MarkdownChunker splits Markdown documents parsed per CommonMark plus the
// GitHub Flavored Markdown extensions (tables, strikethrough, task lists)
// and footnotes. Boundaries, coarsest to finest: headings by level,
// thematic breaks, block elements, inline elements, soft line breaks, then
// the plain-text Unicode levels.
//
// Trimming preserves indentation on chunks that span multiple lines, so
// list items and code stay parseable.
type MarkdownChunker struct {
	engine
}

// NewMarkdownChunker creates a MarkdownChunker for the given configuration.
func NewMarkdownChunker(config ChunkConfig) (*MarkdownChunker, error) {
	eng, err := newEngine(config, &markdownProvider{}, trimPreserveIndentation)
	if err != nil {
		return nil, err
	}
	return &MarkdownChunker{engine: eng}, nil
}

// Markdown levels, finest provider level first.
const (
	mdLevelSoftBreak = levelProvider + iota
	mdLevelInline
	mdLevelBlock
	mdLevelRule
	// headings occupy the next six levels: H6 is mdLevelRule+1, H1 is
	// mdLevelRule+6
	mdLevelHeadingBase
)

func mdHeadingLevel(heading int) Level {
	return mdLevelHeadingBase + Level(6-heading)
}

type markdownProvider struct{}

func (p *markdownProvider) position(level Level) splitPosition {
	if level >= mdLevelHeadingBase {
		// a heading belongs to the text it titles
		return splitNext
	}
	return splitOwn
}

func (p *markdownProvider) glueWhitespace(level Level) bool {
	return level == mdLevelBlock
}

func (p *markdownProvider) parse(text string) []boundary {
	source := []byte(text)
	md := goldmark.New(goldmark.WithExtensions(extension.GFM, extension.Footnote))
	doc := md.Parser().Parse(gtext.NewReader(source))

	var ranges []boundary
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Kind() == ast.KindDocument {
			return ast.WalkContinue, nil
		}
		ranges = p.classify(ranges, n, source)
		return ast.WalkContinue, nil
	})
	return ranges
}

// classify appends the boundary ranges for one AST node, when its source
// span can be recovered.
func (p *markdownProvider) classify(ranges []boundary, n ast.Node, source []byte) []boundary {
	switch t := n.(type) {
	case *ast.Heading:
		start, end, ok := nodeSpan(n, source)
		if !ok {
			return ranges
		}
		return append(ranges, boundary{level: mdHeadingLevel(t.Level), start: lineStart(source, start), end: end})

	case *ast.ThematicBreak:
		start, end, ok := thematicBreakSpan(n, source)
		if !ok {
			return ranges
		}
		return append(ranges, boundary{level: mdLevelRule, start: start, end: end})

	case *ast.Text:
		ranges = append(ranges, boundary{level: mdLevelInline, start: t.Segment.Start, end: t.Segment.Stop})
		if t.SoftLineBreak() {
			// the newline after the segment is its own, finer boundary
			if brk := newlineSpan(source, t.Segment.Stop); brk.end > brk.start {
				ranges = append(ranges, boundary{level: mdLevelSoftBreak, start: brk.start, end: brk.end})
			}
		}
		return ranges
	}

	if n.Type() == ast.TypeBlock {
		level := Level(mdLevelBlock)
		if _, ok := n.(*east.TableCell); ok {
			level = mdLevelInline
		}
		start, end, ok := nodeSpan(n, source)
		if !ok {
			return ranges
		}
		return append(ranges, boundary{level: level, start: lineStart(source, start), end: end})
	}

	// remaining inline elements: emphasis, strong, strikethrough, links,
	// images, code spans, raw html, footnote references
	start, end, ok := nodeSpan(n, source)
	if !ok {
		return ranges
	}
	return append(ranges, boundary{level: mdLevelInline, start: start, end: end})
}

// nodeSpan recovers the byte span of a node from its line segments and its
// descendants. Not every node records a position (autolinks, task markers);
// those report ok=false and simply contribute no boundary.
func nodeSpan(n ast.Node, source []byte) (int, int, bool) {
	switch t := n.(type) {
	case *ast.Text:
		return t.Segment.Start, t.Segment.Stop, true
	case *ast.RawHTML:
		if t.Segments.Len() > 0 {
			return t.Segments.At(0).Start, t.Segments.At(t.Segments.Len() - 1).Stop, true
		}
		return 0, 0, false
	}

	start, end := -1, -1
	if n.Type() == ast.TypeBlock {
		if lines := n.Lines(); lines != nil && lines.Len() > 0 {
			start = lines.At(0).Start
			end = lines.At(lines.Len() - 1).Stop
		}
		if fenced, ok := n.(*ast.FencedCodeBlock); ok && fenced.Info != nil {
			seg := fenced.Info.Segment
			if start < 0 || seg.Start < start {
				start = seg.Start
			}
			if seg.Stop > end {
				end = seg.Stop
			}
		}
	}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		cs, ce, ok := nodeSpan(child, source)
		if !ok {
			continue
		}
		if start < 0 || cs < start {
			start = cs
		}
		if ce > end {
			end = ce
		}
	}
	if start < 0 {
		return 0, 0, false
	}
	return start, end, true
}

// thematicBreakRule matches a horizontal rule line.
var thematicBreakRule = regexp.MustCompile(`(?m)^ {0,3}(?:(?:- *){3,}|(?:\* *){3,}|(?:_ *){3,})$`)

// thematicBreakSpan locates a thematic break, which records no position of
// its own, by searching the gap between its positioned neighbors.
func thematicBreakSpan(n ast.Node, source []byte) (int, int, bool) {
	searchStart := 0
	if prev := n.PreviousSibling(); prev != nil {
		if _, end, ok := nodeSpan(prev, source); ok {
			searchStart = end
		}
	}
	searchEnd := len(source)
	if next := n.NextSibling(); next != nil {
		if start, _, ok := nodeSpan(next, source); ok {
			searchEnd = start
		}
	}
	if searchStart > searchEnd {
		return 0, 0, false
	}
	loc := thematicBreakRule.FindIndex(source[searchStart:searchEnd])
	if loc == nil {
		return 0, 0, false
	}
	return searchStart + loc[0], searchStart + loc[1], true
}

// newlineSpan returns the newline sequence starting at pos, if any.
func newlineSpan(source []byte, pos int) section {
	if pos < len(source) && source[pos] == '\r' {
		if pos+1 < len(source) && source[pos+1] == '\n' {
			return section{start: pos, end: pos + 2}
		}
		return section{start: pos, end: pos + 1}
	}
	if pos < len(source) && source[pos] == '\n' {
		return section{start: pos, end: pos + 1}
	}
	return section{start: pos, end: pos}
}

// lineStart walks back to the beginning of the line containing pos, so
// heading markers and list bullets are included in their element's span.
func lineStart(source []byte, pos int) int {
	for pos > 0 && source[pos-1] != '\n' && source[pos-1] != '\r' {
		pos--
	}
	return pos
}
