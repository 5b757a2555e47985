// Package interp implements the calc tree-walking interpreter.
package interp

import (
	"fmt"

	"github.com/xelox/calc/pkg/ast"
	"github.com/xelox/calc/pkg/diagnostics"
	"github.com/xelox/calc/pkg/parser"
	"github.com/xelox/calc/pkg/token"
)

// ResultVar is the variable whose final binding is the value of an
// interpretation.
const ResultVar = "result"

// Result holds the outcome of interpreting a program. Value is nil when
// the result variable was never assigned.
type Result struct {
	Value *float64
}

// RuntimeError represents an evaluation error.
type RuntimeError struct {
	Code    string
	Message string
	Span    *token.Span
}

func (e *RuntimeError) Error() string {
	return e.Message
}

// Diagnostic converts the error into a diagnostic.
func (e *RuntimeError) Diagnostic() diagnostics.Diagnostic {
	return diagnostics.MakeDiag(e.Code, e.Message, e.Span, "")
}

// Interpret parses source into an AST, evaluates it against a fresh
// environment, and reports the final value bound to the result variable.
// Any lex, parse, or evaluation failure aborts the whole interpretation.
func Interpret(source, filename string) (*Result, error) {
	program, err := parser.Parse(source, filename)
	if err != nil {
		return nil, err
	}

	env := NewEnv()
	if err := ExecBlock(program, env); err != nil {
		return nil, err
	}

	if val, ok := env.Get(ResultVar); ok {
		return &Result{Value: &val}, nil
	}
	return &Result{}, nil
}

// ExecBlock evaluates a block's statements in sequence order against env.
func ExecBlock(block *ast.Block, env *Env) error {
	for _, stmt := range block.Statements {
		if err := ExecStatement(stmt, env); err != nil {
			return err
		}
	}
	return nil
}

// ExecStatement evaluates a single statement. Only assignments have an
// effect; nested blocks share the same flat environment.
func ExecStatement(stmt ast.Node, env *Env) error {
	switch s := stmt.(type) {
	case *ast.Assign:
		val, err := EvalExpr(s.Right, env)
		if err != nil {
			return err
		}
		env.Set(s.Left.Name(), val)
		return nil

	case *ast.Block:
		return ExecBlock(s, env)

	case *ast.NoOp:
		return nil

	default:
		span := stmt.NodeSpan()
		return &RuntimeError{
			Code:    diagnostics.EUnexpectedStmt,
			Message: fmt.Sprintf("%s node is not a statement", stmt.Kind()),
			Span:    &span,
		}
	}
}

// EvalExpr computes the value of an expression node against env.
func EvalExpr(expr ast.Node, env *Env) (float64, error) {
	switch e := expr.(type) {
	case *ast.Number:
		return e.Value(), nil

	case *ast.Variable:
		val, ok := env.Get(e.Name())
		if !ok {
			span := e.NodeSpan()
			return 0, &RuntimeError{
				Code:    diagnostics.EUndefinedVar,
				Message: fmt.Sprintf("variable '%s' does not exist", e.Name()),
				Span:    &span,
			}
		}
		return val, nil

	case *ast.BinOp:
		left, err := EvalExpr(e.Left, env)
		if err != nil {
			return 0, err
		}
		right, err := EvalExpr(e.Right, env)
		if err != nil {
			return 0, err
		}
		switch e.Op.Kind {
		case token.Add:
			return left + right, nil
		case token.Sub:
			return left - right, nil
		case token.Mul:
			return left * right, nil
		case token.Div:
			// IEEE semantics: division by zero yields ±Inf or NaN.
			return left / right, nil
		}
		span := e.Op.Span
		return 0, &RuntimeError{
			Code:    diagnostics.EUnexpectedNode,
			Message: fmt.Sprintf("unsupported binary operator %s", e.Op.Kind),
			Span:    &span,
		}

	case *ast.UnaryOp:
		val, err := EvalExpr(e.Operand, env)
		if err != nil {
			return 0, err
		}
		if e.Op.Kind == token.Sub {
			return -val, nil
		}
		return val, nil

	default:
		span := expr.NodeSpan()
		return 0, &RuntimeError{
			Code:    diagnostics.EUnexpectedNode,
			Message: fmt.Sprintf("%s node is not an expression", expr.Kind()),
			Span:    &span,
		}
	}
}
