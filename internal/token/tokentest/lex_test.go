package tokentest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QTest-hq/classscan/internal/token"
)

func TestLex(t *testing.T) {
	tokens := Lex("final class Foo extends \\A\\B {\n  public $x = 'y';\n}")

	kinds := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind != token.Whitespace {
			kinds = append(kinds, tok.Kind)
		}
	}
	assert.Equal(t, []token.Kind{
		token.Final, token.Class, token.Identifier, token.Extends,
		token.NsSep, token.Identifier, token.NsSep, token.Identifier,
		token.Char,
		token.Public, token.Variable, token.Char, token.String, token.Char,
		token.Char,
	}, kinds)

	last := tokens[len(tokens)-1]
	assert.True(t, last.IsChar("}"))

	var prop token.Token
	for _, tok := range tokens {
		if tok.Kind == token.Variable {
			prop = tok
		}
	}
	require.Equal(t, "$x", prop.Text)
	assert.Equal(t, 2, prop.Line)
}
