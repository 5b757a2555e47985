// Package lexer implements the calc language tokenizer.
package lexer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xelox/calc/pkg/diagnostics"
	"github.com/xelox/calc/pkg/token"
)

// Lexer produces one token at a time from a source buffer. It holds no
// buffered lookahead; repeated Next calls are the only way to progress.
type Lexer struct {
	source   string
	filename string
	pos      int
	line     int
	col      int
}

// New creates a Lexer over the given source buffer.
func New(source, filename string) *Lexer {
	return &Lexer{
		source:   source,
		filename: filename,
		pos:      0,
		line:     1,
		col:      1,
	}
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.source)
}

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.source[l.pos]
}

func (l *Lexer) advance() byte {
	ch := l.source[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

func (l *Lexer) span(startLine, startCol int) token.Span {
	return token.Span{
		File:      l.filename,
		StartLine: startLine,
		StartCol:  startCol,
		EndLine:   l.line,
		EndCol:    l.col,
	}
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() {
		ch := l.peek()
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
			l.advance()
		} else {
			break
		}
	}
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlphaNumeric(ch byte) bool {
	return isAlpha(ch) || isDigit(ch)
}

// LexError wraps a diagnostic for lex errors.
type LexError struct {
	Diag diagnostics.Diagnostic
}

func (e *LexError) Error() string {
	return e.Diag.Message
}

func (l *Lexer) lexError(code string, startLine, startCol int, msg string) error {
	span := l.span(startLine, startCol)
	return &LexError{Diag: diagnostics.MakeDiag(code, msg, &span, "")}
}

// scanNumber consumes a maximal run of digits and dots. More than one
// dot in the run is a malformed literal.
func (l *Lexer) scanNumber() (token.Token, error) {
	startLine, startCol := l.line, l.col
	startPos := l.pos
	dots := 0

	for !l.atEnd() && (isDigit(l.peek()) || l.peek() == '.') {
		if l.peek() == '.' {
			dots++
		}
		l.advance()
	}

	text := l.source[startPos:l.pos]
	if dots > 1 {
		return token.Token{}, l.lexError(diagnostics.EMalformedNumber, startLine, startCol,
			fmt.Sprintf("malformed number literal '%s'", text))
	}

	val, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token.Token{}, l.lexError(diagnostics.EMalformedNumber, startLine, startCol,
			fmt.Sprintf("malformed number literal '%s'", text))
	}

	return token.Token{
		Kind: token.Number,
		Text: text,
		Num:  val,
		Span: l.span(startLine, startCol),
	}, nil
}

// scanIdent consumes a maximal run of alphanumeric/underscore characters.
func (l *Lexer) scanIdent() token.Token {
	startLine, startCol := l.line, l.col
	startPos := l.pos

	for !l.atEnd() && isAlphaNumeric(l.peek()) {
		l.advance()
	}

	return token.Token{
		Kind: token.Ident,
		Text: l.source[startPos:l.pos],
		Span: l.span(startLine, startCol),
	}
}

// Next scans and returns the next token. At end of input it returns an
// EOF token; calling Next again keeps returning EOF.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespace()

	if l.atEnd() {
		return token.Token{
			Kind: token.EOF,
			Span: l.span(l.line, l.col),
		}, nil
	}

	ch := l.peek()
	startLine, startCol := l.line, l.col

	switch ch {
	case '{':
		l.advance()
		return token.Token{Kind: token.LBrace, Text: "{", Span: l.span(startLine, startCol)}, nil
	case '}':
		l.advance()
		return token.Token{Kind: token.RBrace, Text: "}", Span: l.span(startLine, startCol)}, nil
	case ';':
		l.advance()
		return token.Token{Kind: token.Semicolon, Text: ";", Span: l.span(startLine, startCol)}, nil
	case '=':
		l.advance()
		return token.Token{Kind: token.Assign, Text: "=", Span: l.span(startLine, startCol)}, nil
	case '+':
		l.advance()
		return token.Token{Kind: token.Add, Text: "+", Span: l.span(startLine, startCol)}, nil
	case '-':
		l.advance()
		return token.Token{Kind: token.Sub, Text: "-", Span: l.span(startLine, startCol)}, nil
	case '*':
		l.advance()
		return token.Token{Kind: token.Mul, Text: "*", Span: l.span(startLine, startCol)}, nil
	case '/':
		l.advance()
		return token.Token{Kind: token.Div, Text: "/", Span: l.span(startLine, startCol)}, nil
	case '(':
		l.advance()
		return token.Token{Kind: token.LParen, Text: "(", Span: l.span(startLine, startCol)}, nil
	case ')':
		l.advance()
		return token.Token{Kind: token.RParen, Text: ")", Span: l.span(startLine, startCol)}, nil
	}

	if isDigit(ch) {
		return l.scanNumber()
	}

	if isAlpha(ch) {
		return l.scanIdent(), nil
	}

	l.advance()
	msg := fmt.Sprintf("unknown symbol '%c'", ch)
	if !strconv.IsPrint(rune(ch)) {
		msg = fmt.Sprintf("unknown symbol 0x%02x", ch)
	}
	return token.Token{}, l.lexError(diagnostics.EUnknownSymbol, startLine, startCol, msg)
}

// Tokenize breaks source code into a slice of tokens, ending with EOF.
func Tokenize(source, filename string) ([]token.Token, error) {
	l := New(source, filename)
	var tokens []token.Token

	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	return tokens, nil
}

// Render joins token descriptions for debugging output.
func Render(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.Describe()
	}
	return strings.Join(parts, " ")
}
