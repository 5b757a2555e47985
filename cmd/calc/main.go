// Command calc is the calc language CLI entry point.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xelox/calc/internal/logging"
	"github.com/xelox/calc/pkg/ast"
	"github.com/xelox/calc/pkg/diagnostics"
	"github.com/xelox/calc/pkg/formatter"
	"github.com/xelox/calc/pkg/interp"
	"github.com/xelox/calc/pkg/lexer"
	"github.com/xelox/calc/pkg/parser"
	"github.com/xelox/calc/pkg/validator"
)

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "check":
		os.Exit(cmdCheck(os.Args[2:]))
	case "fmt":
		os.Exit(cmdFmt(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "help", "--help", "-h":
		usage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		os.Exit(1)
	}
}

func usage(w *os.File) {
	fmt.Fprintln(w, "usage: calc <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "commands:")
	fmt.Fprintln(w, "  run <file>    interpret a program and print its result")
	fmt.Fprintln(w, "  check <file>  parse and statically validate a program")
	fmt.Fprintln(w, "  fmt <file>    print a program in canonical form")
	fmt.Fprintln(w, "  repl          interactive session")
	fmt.Fprintln(w, "  help          show this help")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "options:")
	fmt.Fprintln(w, "  --pretty      human-readable diagnostics (default: JSON)")
	fmt.Fprintln(w, "  --verbose     debug-level logging to stderr")
	fmt.Fprintln(w, "  --tokens      (check) dump the token stream")
}

func cmdRun(args []string) int {
	var file string
	pretty := false
	verbose := false

	for _, arg := range args {
		switch arg {
		case "--pretty":
			pretty = true
		case "--verbose":
			verbose = true
		default:
			if !strings.HasPrefix(arg, "-") {
				file = arg
			}
		}
	}

	if file == "" {
		fmt.Fprintln(os.Stderr, "usage: calc run <file> [--pretty] [--verbose]")
		return 1
	}

	logger := logging.New(os.Stderr, verbose)

	source, exitCode := readSource(file, pretty)
	if exitCode != 0 {
		return exitCode
	}

	logger.Debug("interpreting", "file", file, "bytes", len(source))

	result, err := interp.Interpret(source, file)
	if err != nil {
		logger.Debug("interpretation failed", "file", file, "err", err)
		return reportError(err, pretty)
	}

	if result.Value == nil {
		fmt.Fprintf(os.Stderr, "no value: '%s' was never assigned\n", interp.ResultVar)
		return 0
	}

	fmt.Println(formatValue(*result.Value))
	return 0
}

func cmdCheck(args []string) int {
	var file string
	pretty := false
	dumpTokens := false

	for _, arg := range args {
		switch arg {
		case "--pretty":
			pretty = true
		case "--tokens":
			dumpTokens = true
		default:
			if !strings.HasPrefix(arg, "-") {
				file = arg
			}
		}
	}

	if file == "" {
		fmt.Fprintln(os.Stderr, "usage: calc check <file> [--pretty] [--tokens]")
		return 1
	}

	source, exitCode := readSource(file, pretty)
	if exitCode != 0 {
		return exitCode
	}

	if dumpTokens {
		tokens, err := lexer.Tokenize(source, file)
		if err != nil {
			return reportError(err, pretty)
		}
		fmt.Println(lexer.Render(tokens))
	}

	program, err := parser.Parse(source, file)
	if err != nil {
		return reportError(err, pretty)
	}

	diags := validator.Validate(program)
	if len(diags) == 0 {
		fmt.Println("ok")
		return 0
	}

	fmt.Fprintln(os.Stderr, diagnostics.FormatDiagnostics(diags, pretty))
	for _, d := range diags {
		if d.Code != diagnostics.ENoResult {
			return 2
		}
	}
	// Only the missing-result warning: the program is still runnable.
	return 0
}

func cmdFmt(args []string) int {
	var file string
	pretty := false

	for _, arg := range args {
		switch arg {
		case "--pretty":
			pretty = true
		default:
			if !strings.HasPrefix(arg, "-") {
				file = arg
			}
		}
	}

	if file == "" {
		fmt.Fprintln(os.Stderr, "usage: calc fmt <file>")
		return 1
	}

	source, exitCode := readSource(file, pretty)
	if exitCode != 0 {
		return exitCode
	}

	program, err := parser.Parse(source, file)
	if err != nil {
		return reportError(err, pretty)
	}

	fmt.Print(formatter.Format(program))
	return 0
}

func readSource(file string, pretty bool) (string, int) {
	data, err := os.ReadFile(file)
	if err != nil {
		diag := diagnostics.MakeDiag(diagnostics.EIO, fmt.Sprintf("cannot read %s: %v", file, err), nil, "")
		fmt.Fprintln(os.Stderr, diagnostics.FormatDiagnostic(diag, pretty))
		return "", 1
	}
	return string(data), 0
}

// reportError prints a pipeline error as a diagnostic and returns the
// exit code: 2 for lex/parse failures, 3 for evaluation failures.
func reportError(err error, pretty bool) int {
	var diag diagnostics.Diagnostic
	code := 2
	switch e := err.(type) {
	case *lexer.LexError:
		diag = e.Diag
	case *parser.ParseError:
		diag = e.Diag
	case *ast.BadTokenError:
		diag = e.Diag
	case *interp.RuntimeError:
		diag = e.Diagnostic()
		code = 3
	default:
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	fmt.Fprintln(os.Stderr, diagnostics.FormatDiagnostic(diag, pretty))
	return code
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
