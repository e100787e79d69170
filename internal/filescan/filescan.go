// Package filescan locates class and interface declarations in a whole-file
// token stream and hands each one, with its namespace and import aliases, to
// a scanner.ClassScanner.
package filescan

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	"github.com/rs/zerolog/log"

	"github.com/QTest-hq/classscan/internal/resolver"
	"github.com/QTest-hq/classscan/internal/scanner"
	"github.com/QTest-hq/classscan/internal/token"
)

// Class is one declaration found in a file.
type Class struct {
	Namespace  string
	Imports    resolver.ImportMap
	TokenStart int
	TokenEnd   int
	Scanner    *scanner.ClassScanner
}

// File holds the declarations of one file in source order.
type File struct {
	Classes []Class
}

type options struct {
	namespace string
	imports   resolver.ImportMap
	filter    glob.Glob
	scanOpts  []scanner.Option
}

// Option configures Scan.
type Option func(*options) error

// WithNamespace sets the namespace used before any namespace statement.
func WithNamespace(ns string) Option {
	return func(o *options) error {
		o.namespace = strings.Trim(ns, resolver.Separator)
		return nil
	}
}

// WithImports seeds every namespace's alias table.
func WithImports(imports resolver.ImportMap) Option {
	return func(o *options) error {
		o.imports = imports.Clone()
		return nil
	}
}

// WithFilter keeps only classes whose fully qualified name matches pattern.
// Segments are separated by "\" or "/"; "*" stays within a segment and "**"
// crosses segments.
func WithFilter(pattern string) Option {
	return func(o *options) error {
		if pattern == "" {
			return nil
		}
		g, err := glob.Compile(toSlashes(pattern), '/')
		if err != nil {
			return fmt.Errorf("invalid class filter %q: %w", pattern, err)
		}
		o.filter = g
		return nil
	}
}

// WithScannerOptions passes options to every ClassScanner created.
func WithScannerOptions(opts ...scanner.Option) Option {
	return func(o *options) error {
		o.scanOpts = append(o.scanOpts, opts...)
		return nil
	}
}

func toSlashes(name string) string {
	return strings.ReplaceAll(name, resolver.Separator, "/")
}

// Scan walks tokens once, tracking namespace and use statements, and slices
// out every class or interface declaration.
func Scan(tokens []token.Token, opts ...Option) (*File, error) {
	o := &options{imports: resolver.ImportMap{}}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	w := &walker{
		cur:       token.NewCursor(tokens),
		opts:      o,
		namespace: o.namespace,
		imports:   o.imports.Clone(),
		nsBrace:   -1,
	}
	if err := w.run(); err != nil {
		return nil, err
	}

	file := &File{Classes: []Class{}}
	for _, c := range w.classes {
		if o.filter != nil {
			name, err := c.Scanner.Name()
			if err != nil {
				return nil, err
			}
			if !o.filter.Match(toSlashes(name)) {
				continue
			}
		}
		file.Classes = append(file.Classes, c)
	}

	log.Debug().
		Int("tokens", len(tokens)).
		Int("found", len(w.classes)).
		Int("kept", len(file.Classes)).
		Msg("file scanned")

	return file, nil
}

type walker struct {
	cur       token.Cursor
	opts      *options
	namespace string
	imports   resolver.ImportMap
	depth     int
	nsBrace   int // depth outside a braced namespace block, or -1
	classes   []Class
}

func (w *walker) useDepth() int {
	if w.nsBrace >= 0 {
		return w.nsBrace + 1
	}
	return 0
}

func (w *walker) run() error {
	for i := 0; i < w.cur.Len(); {
		tok := w.cur.Get(i)

		switch {
		case tok.Kind == token.Namespace && w.depth == 0 && !w.cur.IsKind(i+1, token.NsSep):
			i = w.namespaceStmt(i + 1)
			continue

		case tok.Kind == token.Use && w.depth == w.useDepth() && w.isImport(i):
			i = w.useStmt(i + 1)
			continue

		case (tok.Kind == token.Class || tok.Kind == token.Interface) && w.isDeclaration(i):
			next, err := w.declaration(i)
			if err != nil {
				return err
			}
			i = next
			continue

		case tok.IsChar("{"):
			w.depth++

		case tok.IsChar("}"):
			w.depth--
			if w.nsBrace >= 0 && w.depth == w.nsBrace {
				w.enterNamespace(w.opts.namespace)
				w.nsBrace = -1
			}
		}
		i++
	}
	return nil
}

func (w *walker) enterNamespace(ns string) {
	w.namespace = ns
	w.imports = w.opts.imports.Clone()
}

// namespaceStmt reads "namespace A\B;" or "namespace A\B {" and returns the
// index after the terminator.
func (w *walker) namespaceStmt(i int) int {
	var name strings.Builder
	for ; w.cur.InRange(i); i++ {
		tok := w.cur.Get(i)
		switch {
		case tok.IsChar(";"):
			w.enterNamespace(strings.Trim(name.String(), resolver.Separator))
			return i + 1
		case tok.IsChar("{"):
			w.enterNamespace(strings.Trim(name.String(), resolver.Separator))
			w.nsBrace = w.depth
			w.depth++
			return i + 1
		case tok.Kind.IsName():
			name.WriteString(tok.Text)
		}
	}
	return i
}

// useStmt reads an import statement into the alias table, including group
// imports such as "use A\{B, C as D};". Function and constant imports are
// skipped. It returns the index after the terminating ";".
func (w *walker) useStmt(i int) int {
	var (
		prefix string
		name   strings.Builder
		alias  string
		inAs   bool
		skip   bool
	)
	if first := w.cur.NextSignificant(i); first >= 0 {
		k := w.cur.Get(first).Kind
		skip = k == token.Function || k == token.Const
	}

	commit := func() {
		full := strings.TrimPrefix(prefix+name.String(), resolver.Separator)
		if full != "" && !skip {
			a := alias
			if a == "" {
				a = resolver.ShortName(full)
			}
			w.imports[a] = full
		}
		name.Reset()
		alias = ""
		inAs = false
	}

	for ; w.cur.InRange(i); i++ {
		tok := w.cur.Get(i)
		switch {
		case tok.IsChar(";"):
			commit()
			return i + 1
		case tok.IsChar(","):
			commit()
		case tok.IsChar("{"):
			prefix = name.String()
			name.Reset()
		case tok.IsChar("}"):
			commit()
			prefix = ""
		case tok.Kind == token.As:
			inAs = true
		case tok.Kind == token.Identifier && inAs:
			alias = tok.Text
		case tok.Kind.IsName():
			name.WriteString(tok.Text)
		}
	}
	return i
}

// isImport rejects the "use (...)" clause of a closure, which follows the
// closure's parameter list.
func (w *walker) isImport(i int) bool {
	if prev := w.cur.PrevSignificant(i - 1); w.cur.IsChar(prev, ")") {
		return false
	}
	next := w.cur.NextSignificant(i + 1)
	return !w.cur.IsChar(next, "(")
}

// isDeclaration rejects "Foo::class", "$obj->class" and anonymous "new class".
func (w *walker) isDeclaration(i int) bool {
	prev := w.cur.PrevSignificant(i - 1)
	if prev < 0 {
		return true
	}
	p := w.cur.Get(prev)
	switch p.Text {
	case "::", "->", "?->":
		return false
	}
	if p.IsChar(":") || p.IsChar(">") {
		return false
	}
	return !(p.Kind == token.Identifier && strings.EqualFold(p.Text, "new"))
}

func isClassModifier(tok token.Token) bool {
	switch tok.Kind {
	case token.Final, token.Abstract:
		return true
	case token.Identifier:
		return strings.EqualFold(tok.Text, "readonly")
	}
	return false
}

// declaration slices the class starting at keyword index i, including any
// modifiers in front of it, and returns the index after its closing brace.
func (w *walker) declaration(i int) (int, error) {
	start := i
	for {
		prev := w.cur.PrevSignificant(start - 1)
		if prev < 0 {
			break
		}
		if !isClassModifier(w.cur.Get(prev)) {
			break
		}
		start = prev
	}

	open := i
	for w.cur.InRange(open) && !w.cur.IsChar(open, "{") {
		open++
	}
	if !w.cur.InRange(open) {
		return 0, fmt.Errorf("%w: declaration at token %d has no body", scanner.ErrMalformed, i)
	}

	depth := 0
	for end := open; w.cur.InRange(end); end++ {
		switch {
		case w.cur.IsChar(end, "{"):
			depth++
		case w.cur.IsChar(end, "}"):
			depth--
			if depth == 0 {
				imports := w.imports.Clone()
				w.classes = append(w.classes, Class{
					Namespace:  w.namespace,
					Imports:    imports,
					TokenStart: start,
					TokenEnd:   end + 1,
					Scanner:    scanner.New(w.cur.Slice(start, end+1), w.namespace, imports, w.opts.scanOpts...),
				})
				return end + 1, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: declaration at token %d is not closed", scanner.ErrMalformed, i)
}
