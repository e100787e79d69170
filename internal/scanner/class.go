// Package scanner extracts the structure of a single class or interface
// declaration from its token slice without building a syntax tree.
//
// A ClassScanner does no work until it is first queried. The first query
// runs one left-to-right pass that reads the header (modifiers, name,
// inheritance) and bounds every constant, property and method in the body.
// The result is cached and shared by all later queries.
package scanner

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/QTest-hq/classscan/internal/resolver"
	"github.com/QTest-hq/classscan/internal/token"
)

// ClassScanner answers structural queries about one class declaration.
// It is safe for concurrent use.
type ClassScanner struct {
	tokens    []token.Token
	namespace string
	imports   resolver.ImportMap
	observer  func(MemberInfo)

	once    sync.Once
	result  *scanResult
	scanErr error
}

type scanResult struct {
	desc    ClassDescriptor
	members []MemberInfo
}

// Option configures a ClassScanner.
type Option func(*ClassScanner)

// WithObserver registers fn to be called once for every member the scan
// records, in declaration order.
func WithObserver(fn func(MemberInfo)) Option {
	return func(s *ClassScanner) {
		s.observer = fn
	}
}

// New creates a scanner over tokens, which must span exactly one declaration
// from its leading modifier through its closing brace. An empty namespace
// is the global namespace. Neither tokens nor imports may be mutated later.
func New(tokens []token.Token, namespace string, imports resolver.ImportMap, opts ...Option) *ClassScanner {
	s := &ClassScanner{
		tokens:    tokens,
		namespace: namespace,
		imports:   imports,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ClassScanner) scanned() (*scanResult, error) {
	s.once.Do(func() {
		s.result, s.scanErr = s.scan()
	})
	return s.result, s.scanErr
}

func (s *ClassScanner) scan() (*scanResult, error) {
	if len(s.tokens) == 0 {
		return nil, ErrNoTokens
	}

	cur := token.NewCursor(s.tokens)
	seg := &segmenter{cur: cur}
	res := &scanResult{}
	named := false

	for i := 0; i < cur.Len(); {
		tok := cur.Get(i)
		consumed := 0

		var (
			info MemberInfo
			err  error
		)
		switch tok.Kind {
		case token.Class, token.Interface:
			if named {
				break
			}
			res.desc, consumed, err = parseHeader(cur, i, s.namespace, s.imports)
			named = err == nil

		case token.Const:
			if !named {
				break
			}
			info, consumed, err = seg.constant(i)

		case token.Final, token.Abstract, token.Public, token.Protected, token.Private,
			token.Static, token.Function, token.Var:
			// Modifiers seen before the header belong to it.
			if !named {
				break
			}
			switch classifyMember(cur, i) {
			case memberMethod:
				info, consumed, err = seg.method(i)
			case memberProperty:
				info, consumed, err = seg.property(i)
			case memberConstant:
				info, consumed, err = seg.constant(i)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.label(res), err)
		}

		if info.Kind != 0 {
			res.members = append(res.members, info)
			if s.observer != nil {
				s.observer(info)
			}
			log.Debug().
				Str("class", res.desc.Name).
				Str("kind", info.Kind.String()).
				Str("member", info.Name).
				Int("line", info.LineStart).
				Msg("member scanned")
		}

		if consumed > 0 {
			i += consumed
		} else {
			i++
		}
	}

	if !named {
		return nil, fmt.Errorf("%w: no class or interface keyword", ErrMalformed)
	}

	log.Debug().
		Str("class", res.desc.Name).
		Int("tokens", cur.Len()).
		Int("members", len(res.members)).
		Msg("class scanned")

	return res, nil
}

func (s *ClassScanner) label(res *scanResult) string {
	if res.desc.Name != "" {
		return res.desc.Name
	}
	return "class"
}

// Tokens returns the token slice the scanner was built from.
func (s *ClassScanner) Tokens() []token.Token {
	return s.tokens
}

// Namespace returns the namespace the declaration lives in.
func (s *ClassScanner) Namespace() string {
	return s.namespace
}

// Descriptor returns a copy of the class header information.
func (s *ClassScanner) Descriptor() (ClassDescriptor, error) {
	res, err := s.scanned()
	if err != nil {
		return ClassDescriptor{}, err
	}
	return res.desc.clone(), nil
}

// Name returns the fully qualified class name.
func (s *ClassScanner) Name() (string, error) {
	res, err := s.scanned()
	if err != nil {
		return "", err
	}
	return res.desc.Name, nil
}

// ShortName returns the class name as written.
func (s *ClassScanner) ShortName() (string, error) {
	res, err := s.scanned()
	if err != nil {
		return "", err
	}
	return res.desc.ShortName, nil
}

func (s *ClassScanner) IsFinal() (bool, error) {
	res, err := s.scanned()
	if err != nil {
		return false, err
	}
	return res.desc.IsFinal, nil
}

func (s *ClassScanner) IsAbstract() (bool, error) {
	res, err := s.scanned()
	if err != nil {
		return false, err
	}
	return res.desc.IsAbstract, nil
}

func (s *ClassScanner) IsInterface() (bool, error) {
	res, err := s.scanned()
	if err != nil {
		return false, err
	}
	return res.desc.IsInterface, nil
}

// Parent returns the resolved parent class, or "" when there is none.
func (s *ClassScanner) Parent() (string, error) {
	res, err := s.scanned()
	if err != nil {
		return "", err
	}
	return res.desc.Parent, nil
}

// ShortParent returns the parent class as written, or "".
func (s *ClassScanner) ShortParent() (string, error) {
	res, err := s.scanned()
	if err != nil {
		return "", err
	}
	return res.desc.ShortParent, nil
}

// Interfaces returns the resolved interface names in declaration order.
func (s *ClassScanner) Interfaces() ([]string, error) {
	res, err := s.scanned()
	if err != nil {
		return nil, err
	}
	return cloneStrings(res.desc.Interfaces), nil
}

// ShortInterfaces returns the interface names as written.
func (s *ClassScanner) ShortInterfaces() ([]string, error) {
	res, err := s.scanned()
	if err != nil {
		return nil, err
	}
	return cloneStrings(res.desc.ShortInterfaces), nil
}

// Members returns a copy of every member in declaration order.
func (s *ClassScanner) Members() ([]MemberInfo, error) {
	res, err := s.scanned()
	if err != nil {
		return nil, err
	}
	out := make([]MemberInfo, len(res.members))
	copy(out, res.members)
	return out, nil
}

func (s *ClassScanner) names(kind MemberKind) ([]string, error) {
	res, err := s.scanned()
	if err != nil {
		return nil, err
	}
	out := []string{}
	for _, m := range res.members {
		if m.Kind == kind {
			out = append(out, m.Name)
		}
	}
	return out, nil
}

// Constants returns constant names in declaration order.
func (s *ClassScanner) Constants() ([]string, error) {
	return s.names(KindConstant)
}

// ConstantValue returns the literal value text of the named constant.
func (s *ClassScanner) ConstantValue(name string) (string, error) {
	info, err := s.member(ByName(name), KindConstant)
	if err != nil {
		return "", err
	}
	return info.Value, nil
}

// Properties returns property names in declaration order.
func (s *ClassScanner) Properties() ([]string, error) {
	return s.names(KindProperty)
}

// Methods returns method names in declaration order.
func (s *ClassScanner) Methods() ([]string, error) {
	return s.names(KindMethod)
}

func (s *ClassScanner) member(ref MemberRef, kind MemberKind) (MemberInfo, error) {
	res, err := s.scanned()
	if err != nil {
		return MemberInfo{}, err
	}
	idx, err := ref.locate(res.members, kind)
	if err != nil {
		return MemberInfo{}, err
	}
	return res.members[idx], nil
}

// memberTokens returns a copy of the tokens spanned by info.
func (s *ClassScanner) memberTokens(info MemberInfo) []token.Token {
	return token.NewCursor(s.tokens).Slice(info.TokenStart, info.TokenEnd)
}
