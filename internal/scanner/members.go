package scanner

import (
	"fmt"
	"strings"

	"github.com/QTest-hq/classscan/internal/token"
)

// memberClass is the outcome of looking ahead from a member's first keyword.
type memberClass int

const (
	memberUndetermined memberClass = iota
	memberConstant
	memberProperty
	memberMethod
)

// classifyMember looks ahead from start until the declaration reveals its
// kind: a function keyword makes it a method, a const keyword a constant,
// and an "=" or the terminating ";" after a variable a property.
func classifyMember(cur token.Cursor, start int) memberClass {
	sawVariable := false
	for i := start; cur.InRange(i); i++ {
		tok := cur.Get(i)
		switch {
		case tok.Kind == token.Function:
			return memberMethod
		case tok.Kind == token.Const:
			return memberConstant
		case tok.Kind == token.Variable:
			sawVariable = true
		case tok.IsChar("=") || tok.IsChar(";"):
			if sawVariable {
				return memberProperty
			}
			return memberUndetermined
		case tok.IsChar("{") || tok.IsChar("}"):
			return memberUndetermined
		}
	}
	return memberUndetermined
}

// segmenter bounds members within one class body.
type segmenter struct {
	cur token.Cursor
}

// span tracks the extent of a member while it is being read. pos is the
// line the next token starts on.
type span struct {
	info MemberInfo
	pos  int
}

func (s *segmenter) begin(kind MemberKind, start int) *span {
	first := s.cur.Get(start)
	return &span{
		info: MemberInfo{
			Kind:       kind,
			TokenStart: start,
			LineStart:  first.Line,
			LineEnd:    first.Line,
		},
		pos: first.Line,
	}
}

// touch advances the line position past tok. Bare characters carry no line
// and never contain a newline.
func (sp *span) touch(tok token.Token) {
	if tok.Line > 0 {
		sp.pos = tok.Line + strings.Count(tok.Text, "\n")
	}
}

// end closes the span at the terminator index last. The end line is the
// line the terminator sits on.
func (sp *span) end(last int, terminator token.Token) (MemberInfo, int) {
	switch {
	case terminator.Line > 0:
		sp.info.LineEnd = terminator.Line
	case sp.pos > 0:
		sp.info.LineEnd = sp.pos
	}
	sp.info.TokenEnd = last + 1
	return sp.info, sp.info.TokenEnd - sp.info.TokenStart
}

// readModifiers collects modifier keywords from start up to, but not
// including, stop.
func (s *segmenter) readModifiers(start int, stop token.Kind) (Modifiers, int) {
	var mods Modifiers
	i := start
	for ; s.cur.InRange(i); i++ {
		tok := s.cur.Get(i)
		if tok.Kind == stop {
			break
		}
		mods.apply(tok)
	}
	return mods, i
}

// constant reads a constant declaration starting at start, which is either
// the const keyword or a modifier in front of it.
func (s *segmenter) constant(start int) (MemberInfo, int, error) {
	sp := s.begin(KindConstant, start)
	mods, constIdx := s.readModifiers(start, token.Const)
	sp.info.Modifiers = mods

	var (
		value    strings.Builder
		inValue  bool
		depth    int
		lastName string
	)
	for i := constIdx + 1; ; i++ {
		tok, err := s.cur.At(i)
		if err != nil {
			return MemberInfo{}, 0, fmt.Errorf("%w: unterminated constant", ErrMalformed)
		}
		if tok.IsChar(";") && depth == 0 {
			sp.info.Name = lastName
			sp.info.Value = value.String()
			info, n := sp.end(i, tok)
			return info, n, nil
		}
		sp.touch(tok)
		if tok.Kind.IsInsignificant() {
			continue
		}
		depth += nesting(tok)

		switch {
		case !inValue && tok.IsChar("="):
			inValue = true
			continue
		case !inValue && tok.Kind == token.Identifier:
			lastName = tok.Text
		case inValue:
			value.WriteString(tok.Text)
		}
	}
}

// property reads a property declaration through its terminating ";".
func (s *segmenter) property(start int) (MemberInfo, int, error) {
	sp := s.begin(KindProperty, start)
	var mods Modifiers
	depth := 0

	for i := start; ; i++ {
		tok, err := s.cur.At(i)
		if err != nil {
			return MemberInfo{}, 0, fmt.Errorf("%w: unterminated property", ErrMalformed)
		}
		if tok.IsChar(";") && depth == 0 {
			sp.info.Modifiers = mods
			info, n := sp.end(i, tok)
			return info, n, nil
		}
		sp.touch(tok)
		depth += nesting(tok)
		if sp.info.Name == "" {
			if tok.Kind == token.Variable {
				sp.info.Name = strings.TrimPrefix(tok.Text, "$")
			} else {
				mods.apply(tok)
			}
		}
	}
}

// method reads a method declaration. A method ends at the "}" that closes
// its body, or at ";" when it has no body.
func (s *segmenter) method(start int) (MemberInfo, int, error) {
	sp := s.begin(KindMethod, start)
	mods, fnIdx := s.readModifiers(start, token.Function)
	sp.info.Modifiers = mods
	sp.info.Name = s.methodName(fnIdx)

	depth := 0
	opened := false
	for i := fnIdx + 1; ; i++ {
		tok, err := s.cur.At(i)
		if err != nil {
			return MemberInfo{}, 0, fmt.Errorf("%w: unterminated method %s", ErrMalformed, sp.info.Name)
		}
		switch {
		case tok.IsChar("{"):
			depth++
			opened = true
		case tok.IsChar("}"):
			if depth == 1 {
				info, n := sp.end(i, tok)
				return info, n, nil
			}
			depth--
		case tok.IsChar(";") && !opened:
			info, n := sp.end(i, tok)
			return info, n, nil
		}
		sp.touch(tok)
	}
}

// methodName returns the text of the first significant token after the
// function keyword, skipping a by-reference marker.
func (s *segmenter) methodName(fnIdx int) string {
	i := s.cur.NextSignificant(fnIdx + 1)
	if s.cur.IsChar(i, "&") {
		i = s.cur.NextSignificant(i + 1)
	}
	if i < 0 {
		return ""
	}
	return s.cur.Get(i).Text
}

// nesting returns the depth change contributed by a bracket token.
func nesting(tok token.Token) int {
	if tok.Kind != token.Char {
		return 0
	}
	switch tok.Text {
	case "(", "[", "{":
		return 1
	case ")", "]", "}":
		return -1
	}
	return 0
}
