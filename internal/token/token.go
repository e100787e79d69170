package token

// Token is one lexical unit. Line is zero for bare character tokens.
type Token struct {
	Kind Kind
	Text string
	Line int
}

// New creates a structured token.
func New(kind Kind, text string, line int) Token {
	return Token{Kind: kind, Text: text, Line: line}
}

// NewChar creates a bare punctuation token.
func NewChar(text string) Token {
	return Token{Kind: Char, Text: text}
}

// IsChar reports whether t is the bare character token s.
func (t Token) IsChar(s string) bool {
	return t.Kind == Char && t.Text == s
}

// Is reports whether t is a structured token of kind k.
func (t Token) Is(k Kind) bool {
	return t.Kind == k
}

func (t Token) String() string {
	if t.Kind == Char {
		return t.Text
	}
	return string(t.Kind) + "(" + t.Text + ")"
}
