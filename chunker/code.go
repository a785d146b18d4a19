package chunker

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
)

// Language identifies the grammar used by a CodeChunker.
type Language string

// LanguageGo parses input with the Go standard library parser.
const LanguageGo Language = "go"

// CodeChunker splits source code along syntax tree boundaries. The whole
// file is the coarsest level, each nesting depth one level finer, with the
// plain-text Unicode levels below the deepest nodes. Syntax errors degrade
// gracefully: chunking continues on the partial tree, and regions with no
// tree at all fall back to the Unicode levels.
type CodeChunker struct {
	engine
}

// NewCodeChunker creates a CodeChunker for the given language and
// configuration. Returns ErrUnsupportedLanguage for languages without a
// grammar.
func NewCodeChunker(config ChunkConfig, lang Language) (*CodeChunker, error) {
	if lang != LanguageGo {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	eng, err := newEngine(config, codeProvider{}, trimPreserveIndentation)
	if err != nil {
		return nil, err
	}
	return &CodeChunker{engine: eng}, nil
}

// codeDepthLevels is how many tree depths get distinct levels. Nodes
// nested deeper all share the finest provider level, which still ranks
// above the Unicode fallbacks.
const codeDepthLevels = 26

// codeLevel maps tree depth (1 = direct child of the file) to a level.
func codeLevel(depth int) Level {
	level := levelProvider + Level(codeDepthLevels-depth)
	if level < levelProvider {
		level = levelProvider
	}
	return level
}

type codeProvider struct{}

func (codeProvider) parse(text string) []boundary {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "input.go", text, parser.ParseComments|parser.SkipObjectResolution)
	// Syntax errors are non-fatal: the parser returns a partial AST and
	// whatever it recovered still yields usable boundaries.
	_ = err
	if file == nil {
		return nil
	}
	tf := fset.File(file.Pos())
	if tf == nil {
		return nil
	}

	var ranges []boundary
	depth := 0
	ast.Inspect(file, func(n ast.Node) bool {
		if n == nil {
			depth--
			return true
		}
		if depth > 0 && n.Pos().IsValid() && n.End().IsValid() {
			start := tf.Offset(n.Pos())
			end := tf.Offset(n.End())
			if end > start && end <= len(text) {
				ranges = append(ranges, boundary{level: codeLevel(depth), start: start, end: end})
			}
		}
		depth++
		return true
	})
	return ranges
}

func (codeProvider) position(Level) splitPosition { return splitOwn }

func (codeProvider) glueWhitespace(Level) bool { return false }
