package scanner

import (
	"fmt"
	"strings"
	"sync"

	"github.com/QTest-hq/classscan/internal/resolver"
	"github.com/QTest-hq/classscan/internal/token"
)

// MethodScanner is the capability every method sub-scanner provides.
type MethodScanner interface {
	Name() string
	ClassName() string
	Tokens() []token.Token
}

// MethodFactory builds a method sub-scanner over one method's tokens.
type MethodFactory[T MethodScanner] func(tokens []token.Token, className string, imports resolver.ImportMap) T

// Method is the base method sub-scanner. It reads its own token slice
// lazily and independently of the class scanner that created it.
type Method struct {
	tokens    []token.Token
	className string

	once   sync.Once
	name   string
	mods   Modifiers
	params []string
	body   bool
}

// NewMethod creates a method sub-scanner. It satisfies MethodFactory.
func NewMethod(tokens []token.Token, className string, _ resolver.ImportMap) *Method {
	return &Method{tokens: tokens, className: className}
}

func (m *Method) scan() {
	m.once.Do(func() {
		cur := token.NewCursor(m.tokens)
		seg := &segmenter{cur: cur}
		var fnIdx int
		m.mods, fnIdx = seg.readModifiers(0, token.Function)
		m.name = seg.methodName(fnIdx)

		depth := 0
		for i := fnIdx + 1; cur.InRange(i); i++ {
			tok := cur.Get(i)
			switch {
			case tok.IsChar("("):
				depth++
			case tok.IsChar(")"):
				depth--
			case tok.Kind == token.Variable && depth == 1:
				m.params = append(m.params, strings.TrimPrefix(tok.Text, "$"))
			case tok.IsChar("{") && depth == 0:
				m.body = true
				return
			case tok.IsChar(";") && depth == 0:
				return
			}
		}
	})
}

func (m *Method) Name() string {
	m.scan()
	return m.name
}

// ClassName returns the fully qualified name of the declaring class.
func (m *Method) ClassName() string {
	return m.className
}

// Tokens returns the method's own token slice.
func (m *Method) Tokens() []token.Token {
	return m.tokens
}

func (m *Method) Modifiers() Modifiers {
	m.scan()
	return m.mods
}

// Parameters returns parameter names without the leading "$".
func (m *Method) Parameters() []string {
	m.scan()
	return cloneStrings(m.params)
}

// HasBody reports whether the method has a body, as opposed to an abstract
// or interface signature.
func (m *Method) HasBody() bool {
	m.scan()
	return m.body
}

// Signature is a method sub-scanner that renders the declaration up to its body.
type Signature struct {
	*Method
}

// NewSignature creates a Signature scanner. It satisfies MethodFactory.
func NewSignature(tokens []token.Token, className string, imports resolver.ImportMap) *Signature {
	return &Signature{Method: NewMethod(tokens, className, imports)}
}

// String returns the declaration with whitespace collapsed, e.g.
// "public function foo($a, $b): int".
func (s *Signature) String() string {
	return renderUntil(s.tokens, func(tok token.Token) bool {
		return tok.IsChar("{") || tok.IsChar(";")
	})
}

// renderUntil joins token text until stop matches, collapsing whitespace
// and comments to single spaces.
func renderUntil(tokens []token.Token, stop func(token.Token) bool) string {
	var b strings.Builder
	pendingSpace := false
	for _, tok := range tokens {
		if stop(tok) {
			break
		}
		if tok.Kind.IsInsignificant() {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteString(tok.Text)
	}
	return b.String()
}

// MethodWith builds a sub-scanner of the caller's type over the method
// selected by ref. A nil factory is rejected with ErrScannerType.
func MethodWith[T MethodScanner](s *ClassScanner, ref MemberRef, factory MethodFactory[T]) (T, error) {
	var zero T
	if factory == nil {
		return zero, fmt.Errorf("%w: nil factory", ErrScannerType)
	}
	info, err := s.member(ref, KindMethod)
	if err != nil {
		return zero, err
	}
	res, _ := s.scanned()
	return factory(s.memberTokens(info), res.desc.Name, s.imports), nil
}

// MethodsWith builds a sub-scanner of the caller's type for every method.
func MethodsWith[T MethodScanner](s *ClassScanner, factory MethodFactory[T]) ([]T, error) {
	if factory == nil {
		return nil, fmt.Errorf("%w: nil factory", ErrScannerType)
	}
	res, err := s.scanned()
	if err != nil {
		return nil, err
	}
	out := []T{}
	for _, info := range res.members {
		if info.Kind == KindMethod {
			out = append(out, factory(s.memberTokens(info), res.desc.Name, s.imports))
		}
	}
	return out, nil
}

// Method returns the base sub-scanner for the method selected by ref.
// A name with no match yields ErrNotFound; an index that does not point
// at a method yields ErrInvalidArgument.
func (s *ClassScanner) Method(ref MemberRef) (*Method, error) {
	return MethodWith[*Method](s, ref, NewMethod)
}

// MethodScanners returns a base sub-scanner for every method.
func (s *ClassScanner) MethodScanners() ([]*Method, error) {
	return MethodsWith[*Method](s, NewMethod)
}
