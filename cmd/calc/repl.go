package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/xelox/calc/pkg/interp"
	"github.com/xelox/calc/pkg/parser"
)

func cmdRepl(args []string) int {
	pretty := true
	for _, arg := range args {
		if arg == "--json" {
			pretty = false
		}
	}

	// Piped input is treated as a whole program, not a session.
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		source, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		result, err := interp.Interpret(string(source), "<stdin>")
		if err != nil {
			return reportError(err, pretty)
		}
		if result.Value == nil {
			fmt.Fprintf(os.Stderr, "no value: '%s' was never assigned\n", interp.ResultVar)
			return 0
		}
		fmt.Println(formatValue(*result.Value))
		return 0
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyPath := historyFile()
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}

	env := interp.NewEnv()
	fmt.Println("calc repl (:vars lists bindings, :quit exits)")

	for {
		input, err := line.Prompt("calc> ")
		if err != nil {
			if err == io.EOF || err == liner.ErrPromptAborted {
				break
			}
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			break
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		switch input {
		case ":quit", ":exit":
			goto done
		case ":vars":
			for _, name := range env.Names() {
				val, _ := env.Get(name)
				fmt.Printf("%s = %s\n", name, formatValue(val))
			}
			continue
		}

		out, err := evalLine(input, env)
		if err != nil {
			reportError(err, pretty)
			continue
		}
		if out != "" {
			fmt.Println(out)
		}
	}

done:
	if historyPath != "" {
		if f, err := os.Create(historyPath); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}
	return 0
}

// evalLine treats the input as a bare expression first, then as a
// statement. Statements mutate the session environment and print nothing.
func evalLine(input string, env *interp.Env) (string, error) {
	if expr, err := parser.ParseExpression(input, "<repl>"); err == nil {
		val, err := interp.EvalExpr(expr, env)
		if err != nil {
			return "", err
		}
		return formatValue(val), nil
	}

	stmt, err := parser.ParseStatement(input, "<repl>")
	if err != nil {
		return "", err
	}
	if err := interp.ExecStatement(stmt, env); err != nil {
		return "", err
	}
	return "", nil
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".calc_history")
}
