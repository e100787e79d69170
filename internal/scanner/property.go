package scanner

import (
	"strings"
	"sync"

	"github.com/QTest-hq/classscan/internal/resolver"
	"github.com/QTest-hq/classscan/internal/token"
)

// Property is the property sub-scanner.
type Property struct {
	tokens    []token.Token
	className string

	once     sync.Once
	name     string
	mods     Modifiers
	defValue string
	hasValue bool
}

// NewProperty creates a property sub-scanner over one property's tokens.
func NewProperty(tokens []token.Token, className string, _ resolver.ImportMap) *Property {
	return &Property{tokens: tokens, className: className}
}

func (p *Property) scan() {
	p.once.Do(func() {
		for i, tok := range p.tokens {
			if tok.Kind == token.Variable {
				p.name = strings.TrimPrefix(tok.Text, "$")
				p.scanDefault(p.tokens[i+1:])
				return
			}
			p.mods.apply(tok)
		}
	})
}

func (p *Property) scanDefault(rest []token.Token) {
	for i, tok := range rest {
		if tok.Kind.IsInsignificant() {
			continue
		}
		if !tok.IsChar("=") {
			return
		}
		p.hasValue = true
		p.defValue = renderUntil(rest[i+1:], func(tok token.Token) bool {
			return tok.IsChar(";")
		})
		p.defValue = strings.TrimSpace(p.defValue)
		return
	}
}

func (p *Property) Name() string {
	p.scan()
	return p.name
}

func (p *Property) ClassName() string {
	return p.className
}

func (p *Property) Tokens() []token.Token {
	return p.tokens
}

func (p *Property) Modifiers() Modifiers {
	p.scan()
	return p.mods
}

// Default returns the initializer text and whether one was written.
func (p *Property) Default() (string, bool) {
	p.scan()
	return p.defValue, p.hasValue
}

// Property returns the sub-scanner for the property selected by ref.
func (s *ClassScanner) Property(ref MemberRef) (*Property, error) {
	info, err := s.member(ref, KindProperty)
	if err != nil {
		return nil, err
	}
	res, _ := s.scanned()
	return NewProperty(s.memberTokens(info), res.desc.Name, s.imports), nil
}

// PropertyScanners returns a sub-scanner for every property.
func (s *ClassScanner) PropertyScanners() ([]*Property, error) {
	res, err := s.scanned()
	if err != nil {
		return nil, err
	}
	out := []*Property{}
	for _, info := range res.members {
		if info.Kind == KindProperty {
			out = append(out, NewProperty(s.memberTokens(info), res.desc.Name, s.imports))
		}
	}
	return out, nil
}
