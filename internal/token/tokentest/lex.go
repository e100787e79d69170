// Package tokentest builds token streams from PHP-like source snippets for tests.
//
// Lex is deliberately small: it knows whitespace, comments, variables, names,
// namespace separators, numbers, quoted strings and single punctuation
// characters. It is not a PHP lexer.
package tokentest

import (
	"regexp"
	"strings"

	"github.com/QTest-hq/classscan/internal/token"
)

var pattern = regexp.MustCompile(`(?s)^(?:` +
	`(?P<ws>\s+)|` +
	`(?P<comment>//[^\n]*|/\*.*?\*/)|` +
	`(?P<tag><\?php)|` +
	`(?P<var>\$[A-Za-z_][A-Za-z0-9_]*)|` +
	`(?P<name>[A-Za-z_][A-Za-z0-9_]*)|` +
	`(?P<num>[0-9]+(?:\.[0-9]+)?)|` +
	`(?P<str>'(?:[^'\\]|\\.)*'|"(?:[^"\\]|\\.)*")|` +
	`(?P<sep>\\)|` +
	`(?P<char>.))`)

// Lex tokenizes src. Lines start at 1.
func Lex(src string) []token.Token {
	var out []token.Token
	line := 1
	names := pattern.SubexpNames()

	for len(src) > 0 {
		m := pattern.FindStringSubmatchIndex(src)
		if m == nil {
			break
		}
		text := src[:m[1]]
		group := ""
		for i := 1; i < len(names); i++ {
			if m[2*i] >= 0 {
				group = names[i]
				break
			}
		}

		switch group {
		case "ws":
			out = append(out, token.New(token.Whitespace, text, line))
		case "comment":
			out = append(out, token.New(token.Comment, text, line))
		case "tag":
			out = append(out, token.New(token.OpenTag, text, line))
		case "var":
			out = append(out, token.New(token.Variable, text, line))
		case "name":
			if k, ok := token.Keyword(text); ok {
				out = append(out, token.New(k, text, line))
			} else {
				out = append(out, token.New(token.Identifier, text, line))
			}
		case "num":
			out = append(out, token.New(token.Number, text, line))
		case "str":
			out = append(out, token.New(token.String, text, line))
		case "sep":
			out = append(out, token.New(token.NsSep, text, line))
		default:
			out = append(out, token.NewChar(text))
		}

		line += strings.Count(text, "\n")
		src = src[m[1]:]
	}
	return out
}
