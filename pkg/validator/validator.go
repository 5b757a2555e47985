// Package validator implements static analysis of calc programs.
//
// The language has no control flow, so statements execute exactly once in
// source order. That makes read-before-assignment statically decidable:
// the validator walks the program the same way the interpreter would and
// flags every variable read that no earlier assignment covers.
package validator

import (
	"fmt"

	"github.com/xelox/calc/pkg/ast"
	"github.com/xelox/calc/pkg/diagnostics"
	"github.com/xelox/calc/pkg/interp"
)

type validator struct {
	diags    []diagnostics.Diagnostic
	assigned map[string]bool
}

// Validate analyzes a parsed program and returns diagnostics. An empty
// slice means the program will not fail an undefined-variable check at
// evaluation time.
func Validate(program *ast.Block) []diagnostics.Diagnostic {
	v := &validator{assigned: make(map[string]bool)}
	v.checkBlock(program)

	if !v.assigned[interp.ResultVar] {
		span := program.NodeSpan()
		v.diags = append(v.diags, diagnostics.MakeDiag(
			diagnostics.ENoResult,
			fmt.Sprintf("'%s' is never assigned; the program computes no value", interp.ResultVar),
			&span,
			fmt.Sprintf("assign the final value to '%s'", interp.ResultVar),
		))
	}

	return v.diags
}

func (v *validator) checkBlock(block *ast.Block) {
	for _, stmt := range block.Statements {
		v.checkStatement(stmt)
	}
}

func (v *validator) checkStatement(stmt ast.Node) {
	switch s := stmt.(type) {
	case *ast.Assign:
		// Right-hand side is evaluated before the binding takes effect.
		v.checkExpr(s.Right)
		v.assigned[s.Left.Name()] = true

	case *ast.Block:
		v.checkBlock(s)

	case *ast.NoOp:
		// no effect

	default:
		span := stmt.NodeSpan()
		v.diags = append(v.diags, diagnostics.MakeDiag(
			diagnostics.EUnexpectedStmt,
			fmt.Sprintf("%s node is not a statement", stmt.Kind()),
			&span,
			"",
		))
	}
}

func (v *validator) checkExpr(expr ast.Node) {
	switch e := expr.(type) {
	case *ast.Variable:
		if !v.assigned[e.Name()] {
			span := e.NodeSpan()
			v.diags = append(v.diags, diagnostics.MakeDiag(
				diagnostics.EUnbound,
				fmt.Sprintf("variable '%s' is read before any assignment", e.Name()),
				&span,
				fmt.Sprintf("assign '%s' before this point", e.Name()),
			))
		}

	case *ast.BinOp:
		v.checkExpr(e.Left)
		v.checkExpr(e.Right)

	case *ast.UnaryOp:
		v.checkExpr(e.Operand)
	}
}
