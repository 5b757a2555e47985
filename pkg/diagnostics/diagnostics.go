// Package diagnostics defines calc diagnostic types for lex/parse/runtime errors.
package diagnostics

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xelox/calc/pkg/token"
)

// Diagnostic code constants.
const (
	EUnknownSymbol   = "E_UNKNOWN_SYMBOL"
	EMalformedNumber = "E_MALFORMED_NUMBER"
	EUnexpectedToken = "E_UNEXPECTED_TOKEN"
	EBadToken        = "E_BAD_TOKEN"
	EUndefinedVar    = "E_UNDEFINED_VAR"
	EUnexpectedStmt  = "E_UNEXPECTED_STMT"
	EUnexpectedNode  = "E_UNEXPECTED_NODE"
	EUnbound         = "E_UNBOUND"
	ENoResult        = "E_NO_RESULT"
	EIO              = "E_IO"
)

// Diagnostic represents a lex, parse, validation, or runtime diagnostic.
type Diagnostic struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Span    *token.Span `json:"span,omitempty"`
	Hint    string      `json:"hint,omitempty"`
}

// MakeDiag creates a new Diagnostic.
func MakeDiag(code, message string, span *token.Span, hint string) Diagnostic {
	return Diagnostic{
		Code:    code,
		Message: message,
		Span:    span,
		Hint:    hint,
	}
}

// FormatDiagnostic formats a single diagnostic for display.
func FormatDiagnostic(d Diagnostic, pretty bool) string {
	if !pretty {
		b, _ := json.Marshal(d)
		return string(b)
	}
	loc := "<unknown>"
	if d.Span != nil {
		loc = fmt.Sprintf("%s:%d:%d", d.Span.File, d.Span.StartLine, d.Span.StartCol)
	}
	out := fmt.Sprintf("error[%s]: %s\n  --> %s", d.Code, d.Message, loc)
	if d.Hint != "" {
		out += fmt.Sprintf("\n  hint: %s", d.Hint)
	}
	return out
}

// FormatDiagnostics formats a slice of diagnostics for display.
func FormatDiagnostics(diags []Diagnostic, pretty bool) string {
	if !pretty {
		b, _ := json.Marshal(diags)
		return string(b)
	}
	parts := make([]string, len(diags))
	for i, d := range diags {
		parts[i] = FormatDiagnostic(d, true)
	}
	return strings.Join(parts, "\n\n")
}
