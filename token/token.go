// Package token defines the lexical tokens of the language together with operations like
// printing and keyword lookup.
//
// The language is hybrid: the same token stream carries markup trivia, code tokens, and math
// tokens, disambiguated by the [Kind] and by the mode the scanner/parser are in when the token
// was produced (see the quill package for mode tracking).
package token

import "fmt"

// Kind represents the type of a lexical token.
//
// Unlike a DOT-sized grammar, this language has on the order of ninety distinct token kinds
// across its three modes, so Kind is a plain enumeration rather than a bitmask: a bitmask only
// pays for itself when callers need set-membership tests over many kinds at once, which nothing
// here does.
type Kind int

const (
	ERROR Kind = iota
	// EOF is not part of the language and is used to indicate the end of the file or stream. No
	// language token should follow the EOF token.
	EOF

	// Shared trivia
	Space
	LineComment
	BlockComment
	Hash // '#', enters code mode from markup/math

	// Markup
	Text
	Star      // strong '*'
	Underscore // emph '_'
	Eq         // heading marker '='
	Minus      // list marker '-'
	Plus       // enum marker '+'
	Slash      // term marker '/'
	Colon
	LeftBracket  // content block '['
	RightBracket // ']'
	RawFence     // '`' or '```'
	Linebreak    // '\' at end of line
	Parbreak     // blank line in markup

	// Code punctuation
	LeftParen
	RightParen
	LeftBrace
	RightBrace
	Comma
	Semicolon
	Dot
	DotDot
	Arrow // '=>' closure body
	Question

	// Code operators
	Plus2 // binary '+'
	Minus2
	Star2
	Slash2
	Percent
	Eq2      // '=='
	Ne       // '!='
	Lt
	Le
	Gt
	Ge
	Assign   // '='
	PlusEq
	MinusEq
	StarEq
	SlashEq
	Not
	And
	Or
	In
	Amp // spread '..'

	// Code literals
	Ident
	Int
	Float
	Str
	MathIdentTok

	// Code keywords
	Let
	Set
	Show
	If
	Else
	While
	For
	Import
	Include
	Return
	Break
	Continue
	None
	Auto
	As
	Context

	// Math
	MathAlignPoint // '&'
	MathShorthand
	Underscript // '_' in math (subscript)
	Superscript // '^' in math (superscript)
	Prime       // '\''
	Fraction    // '/' in math used as a fraction separator (distinguished by mode)
	MathText
)

var names = map[Kind]string{
	ERROR:          "ERROR",
	EOF:            "EOF",
	Space:          "Space",
	LineComment:    "LineComment",
	BlockComment:   "BlockComment",
	Hash:           "#",
	Text:           "Text",
	Star:           "*",
	Underscore:     "_",
	Eq:             "=",
	Minus:          "-",
	Plus:           "+",
	Slash:          "/",
	Colon:          ":",
	LeftBracket:    "[",
	RightBracket:   "]",
	RawFence:       "`",
	Linebreak:      "Linebreak",
	Parbreak:       "Parbreak",
	LeftParen:      "(",
	RightParen:     ")",
	LeftBrace:      "{",
	RightBrace:     "}",
	Comma:          ",",
	Semicolon:      ";",
	Dot:            ".",
	DotDot:         "..",
	Arrow:          "=>",
	Question:       "?",
	Plus2:          "+",
	Minus2:         "-",
	Star2:          "*",
	Slash2:         "/",
	Percent:        "%",
	Eq2:            "==",
	Ne:             "!=",
	Lt:             "<",
	Le:             "<=",
	Gt:             ">",
	Ge:             ">=",
	Assign:         "=",
	PlusEq:         "+=",
	MinusEq:        "-=",
	StarEq:         "*=",
	SlashEq:        "/=",
	Not:            "not",
	And:            "and",
	Or:             "or",
	In:             "in",
	Amp:            "..",
	Ident:          "Ident",
	Int:            "Int",
	Float:          "Float",
	Str:            "Str",
	MathIdentTok:   "MathIdent",
	Let:            "let",
	Set:            "set",
	Show:           "show",
	If:             "if",
	Else:           "else",
	While:          "while",
	For:            "for",
	Import:         "import",
	Include:        "include",
	Return:         "return",
	Break:          "break",
	Continue:       "continue",
	None:           "none",
	Auto:           "auto",
	As:             "as",
	Context:        "context",
	MathAlignPoint: "&",
	MathShorthand:  "MathShorthand",
	Underscript:    "_",
	Superscript:    "^",
	Prime:          "'",
	Fraction:       "/",
	MathText:       "MathText",
}

// String returns the string representation of the token kind.
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	panic(fmt.Sprintf("missing String() case for token.Kind: %d", k))
}

var keywords = map[string]Kind{
	"let":      Let,
	"set":      Set,
	"show":     Show,
	"if":       If,
	"else":     Else,
	"while":    While,
	"for":      For,
	"in":       In,
	"import":   Import,
	"include":  Include,
	"return":   Return,
	"break":    Break,
	"continue": Continue,
	"none":     None,
	"auto":     Auto,
	"as":       As,
	"not":      Not,
	"and":      And,
	"or":       Or,
	"context":  Context,
}

// Lookup returns the keyword Kind for identifier, or Ident if identifier is not a keyword.
func Lookup(identifier string) Kind {
	if k, ok := keywords[identifier]; ok {
		return k
	}
	return Ident
}

// Token represents a token of the language.
type Token struct {
	Type       Kind
	Literal    string
	Error      string // Error message for ERROR tokens, empty otherwise
	Start, End Position
}

// String returns the string representation of the token: its literal for identifiers, literals
// and trivia, or its Kind's string representation otherwise.
func (t Token) String() string {
	switch t.Type {
	case Ident, Int, Float, Str, Text, MathText, MathIdentTok, Space, LineComment, BlockComment:
		return t.Literal
	default:
		return t.Type.String()
	}
}

// IsKeyword reports whether the token is one of the language's reserved keywords.
func (t Token) IsKeyword() bool {
	switch t.Type {
	case Let, Set, Show, If, Else, While, For, In, Import, Include, Return, Break, Continue,
		None, Auto, As, Not, And, Or, Context:
		return true
	default:
		return false
	}
}

// IsTrivia reports whether the token carries no semantic content of its own: whitespace and
// comments.
func (t Token) IsTrivia() bool {
	switch t.Type {
	case Space, LineComment, BlockComment:
		return true
	default:
		return false
	}
}
