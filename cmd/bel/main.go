// Command bel is a small one-shot expression evaluator: it parses a
// program, binds variables supplied on the command line, and prints the
// result. Grounded on the teacher's cmd/funxy/main.go + pkg/cli/entry.go
// structure (flag parsing, reading a script argument or stdin, printing
// a result or a diagnostic), trimmed to a single compile-once/execute-once
// entry point since this engine has no statements, modules, or a
// standalone REPL loop to drive.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/bel/internal/jsonvalue"
	"github.com/funvibe/bel/pkg/bel"
)

type varFlags map[string]bel.Value

func (v varFlags) String() string { return "" }

func (v varFlags) Set(raw string) error {
	name, jsonVal, ok := strings.Cut(raw, "=")
	if !ok {
		return fmt.Errorf("--var expects name=json, got %q", raw)
	}
	val, err := jsonvalue.Decode([]byte(jsonVal))
	if err != nil {
		return fmt.Errorf("--var %s: %w", name, err)
	}
	v[name] = val
	return nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("bel", flag.ContinueOnError)
	fs.SetOutput(stderr)
	vars := varFlags{}
	fs.Var(vars, "var", "bind a variable: --var name=json (repeatable)")
	useRegex := fs.Bool("regex", false, "enable the regex plug-in")
	useTime := fs.Bool("time", false, "enable the time plug-in")
	useIP := fs.Bool("ip", false, "enable the ip plug-in")
	useYAML := fs.Bool("yaml", false, "enable the yaml plug-in")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	source, err := readSource(fs.Args(), stdin)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	program, parseErrs := bel.Compile(source)
	if parseErrs != nil {
		fmt.Fprintln(stderr, colorize(stderr, parseErrs.Error(), 31))
		return 1
	}

	var opts []bel.Option
	if *useRegex {
		opts = append(opts, bel.WithRegex())
	}
	if *useTime {
		opts = append(opts, bel.WithTime())
	}
	if *useIP {
		opts = append(opts, bel.WithIP())
	}
	if *useYAML {
		opts = append(opts, bel.WithYAML())
	}
	ctx := bel.NewDefaultContext(opts...)
	for name, val := range vars {
		ctx = ctx.WithVariable(name, val)
	}

	result, err := program.Execute(ctx)
	if err != nil {
		fmt.Fprintln(stderr, colorize(stderr, err.Error(), 31))
		return 1
	}
	fmt.Fprintln(stdout, colorize(stdout, result.String(), 32))
	return 0
}

func readSource(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

// colorize wraps s in an ANSI color code only when w is a real terminal,
// matching the teacher's use of github.com/mattn/go-isatty to suppress
// escape codes once stdout is piped or redirected.
func colorize(w io.Writer, s string, code int) string {
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return s
	}
	return fmt.Sprintf("\x1b[%dm%s\x1b[0m", code, s)
}
