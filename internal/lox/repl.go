package lox

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

// Repl is an interactive session: one Interpreter and one Resolver persist
// across lines, so a variable or function defined on one line is visible on
// the next.
type Repl struct {
	Prompt string

	interp   *Interpreter
	resolver *Resolver
}

// NewRepl creates a Repl whose interpreter writes evaluation output to out.
// Diagnostics go to the writer passed to Run.
func NewRepl(prompt string, out io.Writer) *Repl {
	interp := NewInterpreter(out)
	return &Repl{
		Prompt:   prompt,
		interp:   interp,
		resolver: NewResolver(interp),
	}
}

// Run starts the read-eval-print loop. It returns when the user exits (EOF
// or an explicit quit), never on a Lox-level error: those are reported and
// the loop continues with state intact.
func (r *Repl) Run(out io.Writer) error {
	rl, err := readline.New(r.Prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rl.SaveHistory(line)

		r.evalLine(out, line)
	}
}

func (r *Repl) evalLine(out io.Writer, line string) {
	scanner := NewScanner(line)
	tokens, scanErrs := scanner.ScanTokens()
	if len(scanErrs) > 0 {
		for _, e := range scanErrs {
			printError(out, e)
		}
		return
	}

	parser := NewParser(tokens)
	stmts, parseErrs := parser.Parse()
	if len(parseErrs) > 0 {
		for _, e := range parseErrs {
			printError(out, e)
		}
		return
	}

	if errs := r.resolver.Resolve(stmts); len(errs) > 0 {
		for _, e := range errs {
			printError(out, e)
		}
		return
	}

	if err := r.interp.Interpret(stmts); err != nil {
		printError(out, err)
	}
}

func printError(out io.Writer, err error) {
	color.New(color.FgRed).Fprintf(out, "%s\n", err)
}
