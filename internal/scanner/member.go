package scanner

import "github.com/QTest-hq/classscan/internal/token"

// MemberKind classifies a class member.
type MemberKind int

const (
	KindConstant MemberKind = iota + 1
	KindProperty
	KindMethod
)

func (k MemberKind) String() string {
	switch k {
	case KindConstant:
		return "constant"
	case KindProperty:
		return "property"
	case KindMethod:
		return "method"
	default:
		return "unknown"
	}
}

// Modifiers are the keywords written in front of a member.
type Modifiers struct {
	Visibility string // as written: public, protected, private, or empty
	Static     bool
	Abstract   bool
	Final      bool
}

// EffectiveVisibility returns the written visibility, or public when none was written.
func (m Modifiers) EffectiveVisibility() string {
	if m.Visibility == "" {
		return "public"
	}
	return m.Visibility
}

func (m *Modifiers) apply(tok token.Token) {
	switch tok.Kind {
	case token.Public, token.Protected, token.Private:
		m.Visibility = tok.Kind.VisibilityName()
	case token.Var:
		if m.Visibility == "" {
			m.Visibility = "public"
		}
	case token.Static:
		m.Static = true
	case token.Abstract:
		m.Abstract = true
	case token.Final:
		m.Final = true
	}
}

// MemberInfo bounds one member declaration inside the class token slice.
// TokenEnd is exclusive: tokens[TokenStart:TokenEnd] is the whole member
// including its terminating ";" or "}".
type MemberInfo struct {
	Kind       MemberKind
	Name       string
	TokenStart int
	TokenEnd   int
	LineStart  int
	LineEnd    int
	Modifiers  Modifiers
	// Value holds the literal text of a constant's value, whitespace excluded.
	Value      string
}

// ClassDescriptor is the header information of a class or interface.
// An empty Parent means the declaration extends nothing.
type ClassDescriptor struct {
	ShortName       string
	Name            string
	IsFinal         bool
	IsAbstract      bool
	IsInterface     bool
	ShortParent     string
	Parent          string
	ShortInterfaces []string
	Interfaces      []string
	LineStart       int
}

func (d ClassDescriptor) clone() ClassDescriptor {
	d.ShortInterfaces = cloneStrings(d.ShortInterfaces)
	d.Interfaces = cloneStrings(d.Interfaces)
	return d
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
