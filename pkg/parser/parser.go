// Package parser implements the calc language parser.
//
// The parser is recursive descent with one token of lookahead, pulling
// tokens from the lexer on demand. A mismatch at an eat point aborts the
// parse immediately; there is no error recovery.
package parser

import (
	"fmt"

	"github.com/xelox/calc/pkg/ast"
	"github.com/xelox/calc/pkg/diagnostics"
	"github.com/xelox/calc/pkg/lexer"
	"github.com/xelox/calc/pkg/token"
)

// ParseError wraps a diagnostic for parse errors.
type ParseError struct {
	Diag diagnostics.Diagnostic
}

func (e *ParseError) Error() string {
	return e.Diag.Message
}

type parser struct {
	lx  *lexer.Lexer
	cur token.Token
}

// Parse parses a whole program: a single block followed by end of input.
func Parse(source, filename string) (*ast.Block, error) {
	p, err := newParser(source, filename)
	if err != nil {
		return nil, err
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.EOF); err != nil {
		return nil, err
	}
	return block, nil
}

// ParseExpression parses a single expression followed by end of input.
func ParseExpression(source, filename string) (ast.Node, error) {
	p, err := newParser(source, filename)
	if err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.EOF); err != nil {
		return nil, err
	}
	return expr, nil
}

// ParseStatement parses a single statement followed by end of input.
func ParseStatement(source, filename string) (ast.Node, error) {
	p, err := newParser(source, filename)
	if err != nil {
		return nil, err
	}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.EOF); err != nil {
		return nil, err
	}
	return stmt, nil
}

func newParser(source, filename string) (*parser, error) {
	p := &parser{lx: lexer.New(source, filename)}
	if err := p.next(); err != nil {
		return nil, err
	}
	return p, nil
}

// next pulls one token from the lexer into the lookahead slot.
func (p *parser) next() error {
	tok, err := p.lx.Next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

// eat advances past the current token if it matches the expected kind;
// otherwise the parse fails immediately.
func (p *parser) eat(kind token.Kind) (token.Token, error) {
	tok := p.cur
	if tok.Kind != kind {
		return tok, p.unexpected(kind, tok)
	}
	if err := p.next(); err != nil {
		return tok, err
	}
	return tok, nil
}

func (p *parser) unexpected(expected token.Kind, actual token.Token) error {
	span := actual.Span
	return &ParseError{Diag: diagnostics.MakeDiag(
		diagnostics.EUnexpectedToken,
		fmt.Sprintf("expected %s, got %s", expected, actual.Describe()),
		&span,
		"",
	)}
}

// block := '{' statement (';' statement)* '}'
func (p *parser) parseBlock() (*ast.Block, error) {
	open, err := p.eat(token.LBrace)
	if err != nil {
		return nil, err
	}

	var stmts []ast.Node
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmts = append(stmts, stmt)

	for p.cur.Kind == token.Semicolon {
		if _, err := p.eat(token.Semicolon); err != nil {
			return nil, err
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}

	closing, err := p.eat(token.RBrace)
	if err != nil {
		return nil, err
	}

	span := token.Span{
		File:      open.Span.File,
		StartLine: open.Span.StartLine,
		StartCol:  open.Span.StartCol,
		EndLine:   closing.Span.EndLine,
		EndCol:    closing.Span.EndCol,
	}
	return ast.NewBlock(span, stmts), nil
}

// statement := assignment | block | ε
//
// Anything that cannot start a statement parses as the empty statement;
// the enclosing block's ';' / '}' discipline rejects stray tokens.
func (p *parser) parseStatement() (ast.Node, error) {
	switch p.cur.Kind {
	case token.Ident:
		return p.parseAssignment()
	case token.LBrace:
		return p.parseBlock()
	default:
		return &ast.NoOp{Span: p.cur.Span}, nil
	}
}

// assignment := identifier '=' expr
func (p *parser) parseAssignment() (ast.Node, error) {
	nameTok, err := p.eat(token.Ident)
	if err != nil {
		return nil, err
	}
	target, err := ast.NewVariable(nameTok)
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.Assign); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return ast.NewAssign(target, value)
}

// expr := term (('+' | '-') term)*
func (p *parser) parseExpr() (ast.Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for p.cur.Kind == token.Add || p.cur.Kind == token.Sub {
		op, err := p.eat(p.cur.Kind)
		if err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left, err = ast.NewBinOp(op, left, right)
		if err != nil {
			return nil, err
		}
	}

	return left, nil
}

// term := factor (('*' | '/') factor)*
func (p *parser) parseTerm() (ast.Node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for p.cur.Kind == token.Mul || p.cur.Kind == token.Div {
		op, err := p.eat(p.cur.Kind)
		if err != nil {
			return nil, err
		}
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left, err = ast.NewBinOp(op, left, right)
		if err != nil {
			return nil, err
		}
	}

	return left, nil
}

// factor := ('+' | '-') factor | number | identifier | '(' expr ')'
func (p *parser) parseFactor() (ast.Node, error) {
	switch p.cur.Kind {
	case token.Add, token.Sub:
		op, err := p.eat(p.cur.Kind)
		if err != nil {
			return nil, err
		}
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryOp(op, operand)

	case token.Number:
		tok, err := p.eat(token.Number)
		if err != nil {
			return nil, err
		}
		return ast.NewNumber(tok)

	case token.Ident:
		tok, err := p.eat(token.Ident)
		if err != nil {
			return nil, err
		}
		return ast.NewVariable(tok)

	case token.LParen:
		if _, err := p.eat(token.LParen); err != nil {
			return nil, err
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.eat(token.RParen); err != nil {
			return nil, err
		}
		return expr, nil

	default:
		span := p.cur.Span
		return nil, &ParseError{Diag: diagnostics.MakeDiag(
			diagnostics.EUnexpectedToken,
			fmt.Sprintf("expected number, identifier or '(', got %s", p.cur.Describe()),
			&span,
			"",
		)}
	}
}
