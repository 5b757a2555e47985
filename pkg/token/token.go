// Package token defines the calc language lexical tokens.
package token

import (
	"fmt"
	"strconv"
)

// Kind identifies the kind of a token.
type Kind int

const (
	// Structural
	LBrace    Kind = iota // {
	RBrace                // }
	Semicolon             // ;
	Assign                // =
	LParen                // (
	RParen                // )

	// Operators
	Add // +
	Sub // -
	Mul // *
	Div // /

	// Payload-bearing
	Number // float64 literal
	Ident  // variable name

	// Special
	EOF
)

// Span represents a source location range.
type Span struct {
	File      string `json:"file"`
	StartLine int    `json:"startLine"`
	StartCol  int    `json:"startCol"`
	EndLine   int    `json:"endLine"`
	EndCol    int    `json:"endCol"`
}

// Token represents a single lexical unit. Number tokens carry Num,
// Ident tokens carry Text; all other kinds carry no payload.
type Token struct {
	Kind Kind
	Text string
	Num  float64
	Span Span
}

// Clone returns an independent copy of the token and its payload.
func (t Token) Clone() Token {
	return t
}

// Equal reports whether two tokens have the same kind and payload.
// Spans are not part of token identity.
func (t Token) Equal(o Token) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case Number:
		return t.Num == o.Num
	case Ident:
		return t.Text == o.Text
	default:
		return true
	}
}

// String returns a human-readable description of the token kind,
// used in diagnostics.
func (k Kind) String() string {
	switch k {
	case LBrace:
		return "'{'"
	case RBrace:
		return "'}'"
	case Semicolon:
		return "';'"
	case Assign:
		return "'='"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case Add:
		return "'+'"
	case Sub:
		return "'-'"
	case Mul:
		return "'*'"
	case Div:
		return "'/'"
	case Number:
		return "number"
	case Ident:
		return "identifier"
	case EOF:
		return "end of file"
	default:
		return fmt.Sprintf("token(%d)", int(k))
	}
}

// Describe returns the token's payload if it has one, otherwise its kind.
func (t Token) Describe() string {
	switch t.Kind {
	case Number:
		return strconv.FormatFloat(t.Num, 'g', -1, 64)
	case Ident:
		return fmt.Sprintf("'%s'", t.Text)
	default:
		return t.Kind.String()
	}
}
