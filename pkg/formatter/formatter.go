// Package formatter renders a calc AST back to canonical source text.
package formatter

import (
	"strconv"
	"strings"

	"github.com/xelox/calc/pkg/ast"
	"github.com/xelox/calc/pkg/token"
)

const indent = "  "

// Precedence table for binary operators (higher = tighter binding)
var precedence = map[token.Kind]int{
	token.Add: 1, token.Sub: 1,
	token.Mul: 2, token.Div: 2,
}

func needsParens(child ast.Node, parentOp token.Kind, isRight bool) bool {
	bin, ok := child.(*ast.BinOp)
	if !ok {
		return false
	}
	childPrec := precedence[bin.Op.Kind]
	parentPrec := precedence[parentOp]
	if childPrec < parentPrec {
		return true
	}
	// Left-associative operators: same precedence on the right side
	// needs parens to preserve evaluation order for '-' and '/'.
	if childPrec == parentPrec && isRight {
		return true
	}
	return false
}

// Format pretty-prints a calc AST back to source code.
func Format(node ast.Node) string {
	if block, ok := node.(*ast.Block); ok {
		return formatBlock(block, 0) + "\n"
	}
	return formatStmt(node, 0) + "\n"
}

func formatBlock(block *ast.Block, depth int) string {
	stmts := block.Statements

	// Trailing empty statements render as nothing; drop them so the
	// closing brace does not follow a dangling separator.
	for len(stmts) > 0 {
		if _, ok := stmts[len(stmts)-1].(*ast.NoOp); !ok {
			break
		}
		stmts = stmts[:len(stmts)-1]
	}

	if len(stmts) == 0 {
		return "{ }"
	}

	var sb strings.Builder
	sb.WriteString("{\n")
	inner := strings.Repeat(indent, depth+1)
	for i, stmt := range stmts {
		sb.WriteString(inner)
		sb.WriteString(formatStmt(stmt, depth+1))
		if i < len(stmts)-1 {
			sb.WriteString(";")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(strings.Repeat(indent, depth))
	sb.WriteString("}")
	return sb.String()
}

func formatStmt(node ast.Node, depth int) string {
	switch s := node.(type) {
	case *ast.Assign:
		return s.Left.Name() + " = " + formatExpr(s.Right)
	case *ast.Block:
		return formatBlock(s, depth)
	case *ast.NoOp:
		return ""
	default:
		return formatExpr(node)
	}
}

func formatExpr(node ast.Node) string {
	switch e := node.(type) {
	case *ast.Number:
		return formatNumber(e.Value())

	case *ast.Variable:
		return e.Name()

	case *ast.BinOp:
		left := formatExpr(e.Left)
		if needsParens(e.Left, e.Op.Kind, false) {
			left = "(" + left + ")"
		}
		right := formatExpr(e.Right)
		if needsParens(e.Right, e.Op.Kind, true) {
			right = "(" + right + ")"
		}
		return left + " " + opText(e.Op.Kind) + " " + right

	case *ast.UnaryOp:
		operand := formatExpr(e.Operand)
		if _, ok := e.Operand.(*ast.BinOp); ok {
			operand = "(" + operand + ")"
		}
		return opText(e.Op.Kind) + operand

	default:
		return ""
	}
}

func opText(k token.Kind) string {
	switch k {
	case token.Add:
		return "+"
	case token.Sub:
		return "-"
	case token.Mul:
		return "*"
	case token.Div:
		return "/"
	}
	return "?"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
