// Package lexer turns PHP source into the token stream read by the class
// scanner, using tree-sitter's PHP grammar for tokenization.
//
// Only the leaves of the syntax tree are used. Gaps between leaves become
// whitespace tokens, so joining every token's text reproduces the input.
package lexer

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/php"

	"github.com/QTest-hq/classscan/internal/token"
)

// Nodes whose whole text is one token even when tree-sitter gives them children.
var atomic = map[string]token.Kind{
	"variable_name":   token.Variable,
	"string":          token.String,
	"encapsed_string": token.String,
	"heredoc":         token.String,
	"nowdoc":          token.String,
	"integer":         token.Number,
	"float":           token.Number,
	"comment":         token.Comment,
	"php_tag":         token.OpenTag,
}

var identRe = regexp.MustCompile(`^[A-Za-z_\x80-\xff][A-Za-z0-9_\x80-\xff]*$`)

// Lexer tokenizes PHP source. It is safe for concurrent use.
type Lexer struct {
	mu     sync.Mutex
	parser *sitter.Parser
}

// New creates a lexer for PHP.
func New() *Lexer {
	p := sitter.NewParser()
	p.SetLanguage(php.GetLanguage())
	return &Lexer{parser: p}
}

// TokenizeFile reads and tokenizes a PHP file.
func (l *Lexer) TokenizeFile(ctx context.Context, path string) ([]token.Token, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return l.Tokenize(ctx, content)
}

// Tokenize converts source into tokens. Lines start at 1.
func (l *Lexer) Tokenize(ctx context.Context, source []byte) ([]token.Token, error) {
	l.mu.Lock()
	tree, err := l.parser.ParseCtx(ctx, nil, source)
	l.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to parse: %w", err)
	}
	defer tree.Close()

	e := &emitter{source: source, line: 1}
	e.walk(tree.RootNode())
	e.gap(uint32(len(source)))
	return e.tokens, nil
}

type emitter struct {
	source []byte
	tokens []token.Token
	offset uint32
	line   int
}

func (e *emitter) walk(n *sitter.Node) {
	if kind, ok := atomic[n.Type()]; ok {
		e.leaf(n, kind)
		return
	}
	count := int(n.ChildCount())
	if count == 0 {
		e.leaf(n, "")
		return
	}
	for i := 0; i < count; i++ {
		e.walk(n.Child(i))
	}
}

func (e *emitter) leaf(n *sitter.Node, kind token.Kind) {
	start, end := n.StartByte(), n.EndByte()
	if n.IsMissing() || end <= start || start < e.offset {
		return
	}
	e.gap(start)

	text := string(e.source[start:end])
	if kind == "" {
		kind = classify(n, text)
	}
	if kind == token.Comment && strings.HasPrefix(text, "/**") {
		kind = token.DocComment
	}
	e.emit(kind, text)
	e.offset = end
}

// gap emits the source between the last token and upto.
func (e *emitter) gap(upto uint32) {
	if upto <= e.offset {
		return
	}
	text := string(e.source[e.offset:upto])
	if strings.TrimSpace(text) == "" {
		e.emit(token.Whitespace, text)
	} else {
		e.emit(token.Other, text)
	}
	e.offset = upto
}

func (e *emitter) emit(kind token.Kind, text string) {
	if kind == token.Char {
		e.tokens = append(e.tokens, token.NewChar(text))
	} else {
		e.tokens = append(e.tokens, token.New(kind, text, e.line))
	}
	e.line += strings.Count(text, "\n")
}

func classify(n *sitter.Node, text string) token.Kind {
	switch {
	case n.Type() == "name":
		return token.Identifier
	case text == `\`:
		return token.NsSep
	}
	if k, ok := token.Keyword(text); ok {
		return k
	}
	switch {
	case identRe.MatchString(text):
		return token.Identifier
	case len(text) == 1:
		return token.Char
	default:
		return token.Other
	}
}
