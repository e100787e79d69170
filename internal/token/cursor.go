package token

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when a cursor index falls outside the token slice.
var ErrOutOfRange = errors.New("token index out of range")

// Cursor is a read-only, index-addressed view over a token slice.
type Cursor struct {
	tokens []Token
}

// NewCursor wraps tokens. The slice must not be mutated afterwards.
func NewCursor(tokens []Token) Cursor {
	return Cursor{tokens: tokens}
}

// Len returns the number of tokens in view.
func (c Cursor) Len() int {
	return len(c.tokens)
}

// At returns the token at index i.
func (c Cursor) At(i int) (Token, error) {
	if i < 0 || i >= len(c.tokens) {
		return Token{}, fmt.Errorf("%w: %d (len %d)", ErrOutOfRange, i, len(c.tokens))
	}
	return c.tokens[i], nil
}

// Get returns the token at index i, or the zero token when out of range.
func (c Cursor) Get(i int) Token {
	if i < 0 || i >= len(c.tokens) {
		return Token{}
	}
	return c.tokens[i]
}

// InRange reports whether i addresses a token.
func (c Cursor) InRange(i int) bool {
	return i >= 0 && i < len(c.tokens)
}

// IsChar reports whether the token at i is the bare character s.
func (c Cursor) IsChar(i int, s string) bool {
	return c.InRange(i) && c.tokens[i].IsChar(s)
}

// IsKind reports whether the token at i is of kind k.
func (c Cursor) IsKind(i int, k Kind) bool {
	return c.InRange(i) && c.tokens[i].Kind == k
}

// NextSignificant returns the index of the first token at or after i that is
// not whitespace or a comment, or -1.
func (c Cursor) NextSignificant(i int) int {
	for ; i < len(c.tokens); i++ {
		if !c.tokens[i].Kind.IsInsignificant() {
			return i
		}
	}
	return -1
}

// PrevSignificant returns the index of the last token at or before i that is
// not whitespace or a comment, or -1.
func (c Cursor) PrevSignificant(i int) int {
	if i >= len(c.tokens) {
		i = len(c.tokens) - 1
	}
	for ; i >= 0; i-- {
		if !c.tokens[i].Kind.IsInsignificant() {
			return i
		}
	}
	return -1
}

// Slice returns a copy of the tokens in [start, end), clamped to the view.
func (c Cursor) Slice(start, end int) []Token {
	if start < 0 {
		start = 0
	}
	if end > len(c.tokens) {
		end = len(c.tokens)
	}
	if start >= end {
		return []Token{}
	}
	out := make([]Token, end-start)
	copy(out, c.tokens[start:end])
	return out
}
