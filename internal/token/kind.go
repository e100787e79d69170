// Package token defines the lexical token stream consumed by the class scanner.
//
// Tokens mirror the shape of a PHP token_get_all dump: structured tokens carry
// a kind, their literal text and a source line, while single punctuation
// characters travel as bare strings with no line.
package token

import "strings"

// Kind identifies the lexical category of a token.
type Kind string

const (
	Class      Kind = "T_CLASS"
	Interface  Kind = "T_INTERFACE"
	Extends    Kind = "T_EXTENDS"
	Implements Kind = "T_IMPLEMENTS"
	Final      Kind = "T_FINAL"
	Abstract   Kind = "T_ABSTRACT"
	Const      Kind = "T_CONST"
	Function   Kind = "T_FUNCTION"
	Var        Kind = "T_VAR"
	Public     Kind = "T_PUBLIC"
	Protected  Kind = "T_PROTECTED"
	Private    Kind = "T_PRIVATE"
	Static     Kind = "T_STATIC"
	Identifier Kind = "T_STRING"
	NsSep      Kind = "T_NS_SEPARATOR"
	Variable   Kind = "T_VARIABLE"
	Whitespace Kind = "T_WHITESPACE"
	Comment    Kind = "T_COMMENT"
	DocComment Kind = "T_DOC_COMMENT"

	// File-level kinds, only inspected by the file orchestration layer.
	Namespace Kind = "T_NAMESPACE"
	Use       Kind = "T_USE"
	As        Kind = "T_AS"
	OpenTag   Kind = "T_OPEN_TAG"
	Number    Kind = "T_LNUMBER"
	String    Kind = "T_CONSTANT_ENCAPSED_STRING"

	// Char is a bare punctuation token such as "{" or ";".
	Char  Kind = "CHAR"
	// Other covers any structured token this package does not name.
	Other Kind = "T_OTHER"
)

var keywords = map[string]Kind{
	"class":      Class,
	"interface":  Interface,
	"extends":    Extends,
	"implements": Implements,
	"final":      Final,
	"abstract":   Abstract,
	"const":      Const,
	"function":   Function,
	"var":        Var,
	"public":     Public,
	"protected":  Protected,
	"private":    Private,
	"static":     Static,
	"namespace":  Namespace,
	"use":        Use,
	"as":         As,
}

// Keyword returns the keyword kind for word, matched case-insensitively.
func Keyword(word string) (Kind, bool) {
	k, ok := keywords[strings.ToLower(word)]
	return k, ok
}

// IsVisibility reports whether k is public, protected or private.
func (k Kind) IsVisibility() bool {
	return k == Public || k == Protected || k == Private
}

// IsInsignificant reports whether tokens of kind k carry no structure.
func (k Kind) IsInsignificant() bool {
	return k == Whitespace || k == Comment || k == DocComment
}

// IsName reports whether k contributes text to a written type name.
func (k Kind) IsName() bool {
	return k == Identifier || k == NsSep
}

// VisibilityName returns the lower-case visibility keyword for k.
func (k Kind) VisibilityName() string {
	switch k {
	case Public:
		return "public"
	case Protected:
		return "protected"
	case Private:
		return "private"
	}
	return ""
}
