// Package ast defines the calc language AST node types.
//
// Every non-leaf node exclusively owns its children: factories take
// freshly built subtrees and never alias them, so a well-formed tree is
// acyclic by construction. Clone produces a structurally independent
// deep copy.
package ast

import (
	"fmt"

	"github.com/xelox/calc/pkg/diagnostics"
	"github.com/xelox/calc/pkg/token"
)

// Node is the interface implemented by all AST nodes.
type Node interface {
	Kind() string
	NodeSpan() token.Span
	node() // sealed marker
}

// BadTokenError reports an AST factory invoked with a token incompatible
// with the requested node kind. Under a correct parser this does not
// occur; it indicates an internal contract violation.
type BadTokenError struct {
	Diag diagnostics.Diagnostic
}

func (e *BadTokenError) Error() string {
	return e.Diag.Message
}

func badToken(nodeKind string, tok token.Token) error {
	span := tok.Span
	return &BadTokenError{Diag: diagnostics.MakeDiag(
		diagnostics.EBadToken,
		fmt.Sprintf("cannot build %s node from %s", nodeKind, tok.Describe()),
		&span,
		"",
	)}
}

// --- Leaf nodes ---

// Number is a numeric literal, holding its number token.
type Number struct {
	Tok token.Token
}

func (n *Number) Kind() string         { return "Number" }
func (n *Number) NodeSpan() token.Span { return n.Tok.Span }
func (n *Number) node()                {}

// Value returns the literal's numeric value.
func (n *Number) Value() float64 { return n.Tok.Num }

// NewNumber builds a Number node from a number token.
func NewNumber(tok token.Token) (*Number, error) {
	if tok.Kind != token.Number {
		return nil, badToken("Number", tok)
	}
	return &Number{Tok: tok.Clone()}, nil
}

// Variable is a variable reference, holding its identifier token.
type Variable struct {
	Tok token.Token
}

func (n *Variable) Kind() string         { return "Variable" }
func (n *Variable) NodeSpan() token.Span { return n.Tok.Span }
func (n *Variable) node()                {}

// Name returns the variable's name.
func (n *Variable) Name() string { return n.Tok.Text }

// NewVariable builds a Variable node from an identifier token.
func NewVariable(tok token.Token) (*Variable, error) {
	if tok.Kind != token.Ident {
		return nil, badToken("Variable", tok)
	}
	return &Variable{Tok: tok.Clone()}, nil
}

// NoOp is the empty statement.
type NoOp struct {
	Span token.Span
}

func (n *NoOp) Kind() string         { return "NoOp" }
func (n *NoOp) NodeSpan() token.Span { return n.Span }
func (n *NoOp) node()                {}

// --- Interior nodes ---

// BinOp applies a binary arithmetic operator to two owned children.
type BinOp struct {
	Op    token.Token // Add, Sub, Mul, or Div
	Left  Node
	Right Node
}

func (n *BinOp) Kind() string { return "BinOp" }
func (n *BinOp) NodeSpan() token.Span {
	return joinSpans(n.Left.NodeSpan(), n.Right.NodeSpan())
}
func (n *BinOp) node() {}

// NewBinOp builds a BinOp node from an operator token and two operands.
func NewBinOp(op token.Token, left, right Node) (*BinOp, error) {
	switch op.Kind {
	case token.Add, token.Sub, token.Mul, token.Div:
		return &BinOp{Op: op.Clone(), Left: left, Right: right}, nil
	}
	return nil, badToken("BinOp", op)
}

// UnaryOp applies unary plus or minus to a single owned operand.
type UnaryOp struct {
	Op      token.Token // Add or Sub
	Operand Node
}

func (n *UnaryOp) Kind() string { return "UnaryOp" }
func (n *UnaryOp) NodeSpan() token.Span {
	return joinSpans(n.Op.Span, n.Operand.NodeSpan())
}
func (n *UnaryOp) node() {}

// NewUnaryOp builds a UnaryOp node from an operator token and an operand.
func NewUnaryOp(op token.Token, operand Node) (*UnaryOp, error) {
	switch op.Kind {
	case token.Add, token.Sub:
		return &UnaryOp{Op: op.Clone(), Operand: operand}, nil
	}
	return nil, badToken("UnaryOp", op)
}

// Assign binds the value of Right to the variable on the Left.
type Assign struct {
	Left  *Variable
	Right Node
}

func (n *Assign) Kind() string { return "Assign" }
func (n *Assign) NodeSpan() token.Span {
	return joinSpans(n.Left.NodeSpan(), n.Right.NodeSpan())
}
func (n *Assign) node() {}

// NewAssign builds an Assign node. The assignment target must be a
// Variable node.
func NewAssign(left Node, right Node) (*Assign, error) {
	v, ok := left.(*Variable)
	if !ok {
		span := left.NodeSpan()
		return nil, &BadTokenError{Diag: diagnostics.MakeDiag(
			diagnostics.EBadToken,
			fmt.Sprintf("assignment target must be a variable, got %s", left.Kind()),
			&span,
			"",
		)}
	}
	return &Assign{Left: v, Right: right}, nil
}

// Block is an ordered sequence of owned statements; sequence order is
// evaluation order.
type Block struct {
	Span       token.Span
	Statements []Node
}

func (n *Block) Kind() string         { return "Block" }
func (n *Block) NodeSpan() token.Span { return n.Span }
func (n *Block) node()                {}

// NewBlock builds a Block node spanning the given braces.
func NewBlock(span token.Span, statements []Node) *Block {
	return &Block{Span: span, Statements: statements}
}

// --- Clone ---

// Clone produces a structurally independent deep copy of a node: fresh
// owned children and token payloads all the way down.
func Clone(n Node) Node {
	switch node := n.(type) {
	case *Number:
		return &Number{Tok: node.Tok.Clone()}
	case *Variable:
		return &Variable{Tok: node.Tok.Clone()}
	case *NoOp:
		return &NoOp{Span: node.Span}
	case *BinOp:
		return &BinOp{
			Op:    node.Op.Clone(),
			Left:  Clone(node.Left),
			Right: Clone(node.Right),
		}
	case *UnaryOp:
		return &UnaryOp{
			Op:      node.Op.Clone(),
			Operand: Clone(node.Operand),
		}
	case *Assign:
		return &Assign{
			Left:  Clone(node.Left).(*Variable),
			Right: Clone(node.Right),
		}
	case *Block:
		stmts := make([]Node, len(node.Statements))
		for i, s := range node.Statements {
			stmts[i] = Clone(s)
		}
		return &Block{Span: node.Span, Statements: stmts}
	}
	return nil
}

func joinSpans(a, b token.Span) token.Span {
	return token.Span{
		File:      a.File,
		StartLine: a.StartLine,
		StartCol:  a.StartCol,
		EndLine:   b.EndLine,
		EndCol:    b.EndCol,
	}
}
