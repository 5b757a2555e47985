package lexer

import (
	"errors"
	"testing"

	"github.com/xelox/calc/pkg/diagnostics"
	"github.com/xelox/calc/pkg/token"
)

// helper to tokenize and fail on error
func mustTokenize(t *testing.T, source string) []token.Token {
	t.Helper()
	tokens, err := Tokenize(source, "test.calc")
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	return tokens
}

// helper that strips the trailing EOF for easier assertions
func mustTokenizeNoEOF(t *testing.T, source string) []token.Token {
	t.Helper()
	tokens := mustTokenize(t, source)
	if len(tokens) == 0 {
		t.Fatal("expected at least one token (EOF)")
	}
	if tokens[len(tokens)-1].Kind != token.EOF {
		t.Fatal("last token is not EOF")
	}
	return tokens[:len(tokens)-1]
}

func lexErrCode(t *testing.T, source string) string {
	t.Helper()
	_, err := Tokenize(source, "test.calc")
	if err == nil {
		t.Fatalf("expected lex error for %q", source)
	}
	var le *LexError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LexError, got %T", err)
	}
	return le.Diag.Code
}

// ---------------------------------------------------------------------------
// Test: empty input produces only EOF
// ---------------------------------------------------------------------------
func TestEmptyInput(t *testing.T) {
	tokens := mustTokenize(t, "")
	if len(tokens) != 1 {
		t.Fatalf("expected 1 token (EOF), got %d", len(tokens))
	}
	if tokens[0].Kind != token.EOF {
		t.Errorf("expected EOF, got %v", tokens[0].Kind)
	}
}

// ---------------------------------------------------------------------------
// Test: all structural tokens
// ---------------------------------------------------------------------------
func TestStructuralTokens(t *testing.T) {
	tests := []struct {
		source   string
		expected token.Kind
	}{
		{"{", token.LBrace},
		{"}", token.RBrace},
		{";", token.Semicolon},
		{"=", token.Assign},
		{"+", token.Add},
		{"-", token.Sub},
		{"*", token.Mul},
		{"/", token.Div},
		{"(", token.LParen},
		{")", token.RParen},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			tokens := mustTokenizeNoEOF(t, tt.source)
			if len(tokens) != 1 {
				t.Fatalf("expected 1 token, got %d", len(tokens))
			}
			if tokens[0].Kind != tt.expected {
				t.Errorf("expected kind %v, got %v", tt.expected, tokens[0].Kind)
			}
			if tokens[0].Text != tt.source {
				t.Errorf("expected text %q, got %q", tt.source, tokens[0].Text)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Test: identifiers are greedy runs of [A-Za-z0-9_] starting with letter or _
// ---------------------------------------------------------------------------
func TestIdentifiers(t *testing.T) {
	tests := []string{"x", "foo", "bar_baz", "_tmp", "v2", "camelCase", "_"}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			tokens := mustTokenizeNoEOF(t, src)
			if len(tokens) != 1 {
				t.Fatalf("expected 1 token, got %d", len(tokens))
			}
			if tokens[0].Kind != token.Ident {
				t.Fatalf("expected identifier, got %v", tokens[0].Kind)
			}
			if tokens[0].Text != src {
				t.Errorf("expected payload %q, got %q", src, tokens[0].Text)
			}
		})
	}
}

func TestIdentifierDoesNotStartWithDigit(t *testing.T) {
	// "2x" lexes as number 2 followed by identifier x
	tokens := mustTokenizeNoEOF(t, "2x")
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(tokens))
	}
	if tokens[0].Kind != token.Number || tokens[0].Num != 2 {
		t.Errorf("expected number 2, got %v %v", tokens[0].Kind, tokens[0].Num)
	}
	if tokens[1].Kind != token.Ident || tokens[1].Text != "x" {
		t.Errorf("expected identifier x, got %v %q", tokens[1].Kind, tokens[1].Text)
	}
}

// ---------------------------------------------------------------------------
// Test: number literals
// ---------------------------------------------------------------------------
func TestNumbers(t *testing.T) {
	tests := []struct {
		source string
		value  float64
	}{
		{"0", 0},
		{"42", 42},
		{"3.14", 3.14},
		{"0.5", 0.5},
		{"1.", 1},
		{"100000", 100000},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			tokens := mustTokenizeNoEOF(t, tt.source)
			if len(tokens) != 1 {
				t.Fatalf("expected 1 token, got %d", len(tokens))
			}
			if tokens[0].Kind != token.Number {
				t.Fatalf("expected number, got %v", tokens[0].Kind)
			}
			if tokens[0].Num != tt.value {
				t.Errorf("expected value %v, got %v", tt.value, tokens[0].Num)
			}
		})
	}
}

func TestMalformedNumber(t *testing.T) {
	for _, src := range []string{"1.2.3", "1..2", "1.2.3.4"} {
		t.Run(src, func(t *testing.T) {
			if code := lexErrCode(t, src); code != diagnostics.EMalformedNumber {
				t.Errorf("expected %s, got %s", diagnostics.EMalformedNumber, code)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Test: unknown symbols
// ---------------------------------------------------------------------------
func TestUnknownSymbol(t *testing.T) {
	for _, src := range []string{"@", "$", "!", "#", "x = 1 ? 2"} {
		t.Run(src, func(t *testing.T) {
			if code := lexErrCode(t, src); code != diagnostics.EUnknownSymbol {
				t.Errorf("expected %s, got %s", diagnostics.EUnknownSymbol, code)
			}
		})
	}
}

// A lone dot is not a number prefix in this language.
func TestLoneDotIsUnknownSymbol(t *testing.T) {
	if code := lexErrCode(t, "."); code != diagnostics.EUnknownSymbol {
		t.Errorf("expected %s, got %s", diagnostics.EUnknownSymbol, code)
	}
}

// ---------------------------------------------------------------------------
// Test: whitespace is insignificant outside tokens
// ---------------------------------------------------------------------------
func TestWhitespaceSkipping(t *testing.T) {
	a := mustTokenizeNoEOF(t, "x=1+2")
	b := mustTokenizeNoEOF(t, "  x\t=\n 1   +\r\n2 ")
	if len(a) != len(b) {
		t.Fatalf("token counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			t.Errorf("token %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

// ---------------------------------------------------------------------------
// Test: a full statement
// ---------------------------------------------------------------------------
func TestStatementTokenSequence(t *testing.T) {
	tokens := mustTokenizeNoEOF(t, "{ result = (a_1 + 2.5) * b; }")
	expected := []token.Kind{
		token.LBrace, token.Ident, token.Assign, token.LParen, token.Ident,
		token.Add, token.Number, token.RParen, token.Mul, token.Ident,
		token.Semicolon, token.RBrace,
	}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, kind := range expected {
		if tokens[i].Kind != kind {
			t.Errorf("token %d: expected %v, got %v", i, kind, tokens[i].Kind)
		}
	}
}

// ---------------------------------------------------------------------------
// Test: pull model, Next keeps returning EOF at end of input
// ---------------------------------------------------------------------------
func TestNextAfterEOF(t *testing.T) {
	l := New("x", "test.calc")
	if tok, err := l.Next(); err != nil || tok.Kind != token.Ident {
		t.Fatalf("expected identifier, got %v (%v)", tok.Kind, err)
	}
	for i := 0; i < 3; i++ {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("unexpected error after end: %v", err)
		}
		if tok.Kind != token.EOF {
			t.Fatalf("call %d: expected EOF, got %v", i, tok.Kind)
		}
	}
}

// ---------------------------------------------------------------------------
// Test: spans track lines and columns
// ---------------------------------------------------------------------------
func TestSpans(t *testing.T) {
	tokens := mustTokenizeNoEOF(t, "x =\n  12")

	if s := tokens[0].Span; s.StartLine != 1 || s.StartCol != 1 {
		t.Errorf("x span = %+v, want line 1 col 1", s)
	}
	if s := tokens[2].Span; s.StartLine != 2 || s.StartCol != 3 {
		t.Errorf("12 span = %+v, want line 2 col 3", s)
	}
	if tokens[0].Span.File != "test.calc" {
		t.Errorf("span file = %q, want test.calc", tokens[0].Span.File)
	}
}
