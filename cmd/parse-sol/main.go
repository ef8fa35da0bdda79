// parse-sol reads a SOL25 program from stdin, validates it and writes its
// XML syntax tree to stdout.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/chazu/sol25/compiler"
	"github.com/chazu/sol25/config"
	"github.com/chazu/sol25/driver"
)

// exitError carries a process exit code out of the command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func withCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse-sol",
		Short: "SOL25 static front end",
		Long: `parse-sol reads a SOL25 program from standard input, checks its syntax,
scoping, class hierarchy and message selectors, and writes the program's
abstract syntax tree as XML to standard output.

Configuration is read from $SOL25_CONFIG, or from the nearest sol25.toml,
sol25.yaml or sol25.yml above the working directory.

Exit codes:
  0   success
  10  invalid invocation
  11  input or configuration cannot be read
  12  output cannot be written
  21  lexical error
  22  syntax error or misused reserved word
  31  missing Main class or run method
  32  undefined name, class or method
  33  block arity does not match selector
  34  assignment to a block parameter
  35  duplicate class or symbol
  99  internal error`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFrontEnd(stdin, stdout)
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.CompletionOptions.DisableDefaultCmd = true
	return cmd
}

func runFrontEnd(stdin io.Reader, stdout io.Writer) error {
	cfg, err := config.Resolve()
	if err != nil {
		return withCode(compiler.ExitInput, err)
	}
	driver.ConfigureLogging(cfg)

	src, err := io.ReadAll(stdin)
	if err != nil {
		return withCode(compiler.ExitInput, fmt.Errorf("read input: %w", err))
	}
	if !utf8.Valid(src) {
		return withCode(compiler.ExitInput, errors.New("input is not valid UTF-8"))
	}

	res, err := driver.Run(string(src), driver.OptionsFrom(cfg))
	if err != nil {
		return withCode(driver.ExitCode(err), err)
	}

	if _, err := stdout.Write(res.Output); err != nil {
		return withCode(compiler.ExitOutput, fmt.Errorf("write output: %w", err))
	}
	return nil
}

// isHelpOnly reports whether args is exactly one help flag.
func isHelpOnly(args []string) bool {
	return len(args) == 1 && (args[0] == "-h" || args[0] == "--help")
}

// execute runs the command with args and returns the process exit code.
func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	// Every argument list except a lone help flag is rejected here, so cobra
	// only ever sees no arguments or -h/--help.
	if len(args) > 0 && !isHelpOnly(args) {
		fmt.Fprintf(stderr, "Error: parse-sol takes no arguments other than -h/--help\n")
		return compiler.ExitUsage
	}

	cmd := newRootCmd(stdin, stdout, stderr)
	// A nil slice would make cobra fall back to os.Args.
	cmd.SetArgs(append([]string{}, args...))
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		var ee *exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		return compiler.ExitUsage
	}
	return compiler.ExitOK
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
