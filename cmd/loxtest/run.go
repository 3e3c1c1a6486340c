package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/mbbutler/lox/internal/lox"
)

// expectation is one `// expect:` or `// expect runtime error:` comment
// pulled out of a script, in source order.
type expectation struct {
	runtimeError bool
	text         string
}

// Outcome is what actually happened running one script.
type Outcome struct {
	Stdout       []string
	RuntimeError string // empty if the script ran to completion
	StaticErrors []string
}

func parseExpectations(source string) []expectation {
	var out []expectation
	for _, line := range strings.Split(source, "\n") {
		switch {
		case strings.Contains(line, "// expect runtime error:"):
			idx := strings.Index(line, "// expect runtime error:")
			out = append(out, expectation{runtimeError: true, text: strings.TrimSpace(line[idx+len("// expect runtime error:"):])})
		case strings.Contains(line, "// expect:"):
			idx := strings.Index(line, "// expect:")
			out = append(out, expectation{text: strings.TrimSpace(line[idx+len("// expect:"):])})
		}
	}
	return out
}

// runScript executes source through the full scan/parse/resolve/interpret
// pipeline in-process, capturing print output and any error the pipeline
// produced.
func runScript(source string) Outcome {
	var outcome Outcome
	var stdout bytes.Buffer

	scanner := lox.NewScanner(source)
	tokens, scanErrs := scanner.ScanTokens()
	for _, e := range scanErrs {
		outcome.StaticErrors = append(outcome.StaticErrors, e.Error())
	}
	if len(scanErrs) > 0 {
		return outcome
	}

	parser := lox.NewParser(tokens)
	stmts, parseErrs := parser.Parse()
	for _, e := range parseErrs {
		outcome.StaticErrors = append(outcome.StaticErrors, e.Error())
	}
	if len(parseErrs) > 0 {
		return outcome
	}

	interp := lox.NewInterpreter(&stdout)
	resolver := lox.NewResolver(interp)
	if resolveErrs := resolver.Resolve(stmts); len(resolveErrs) > 0 {
		for _, e := range resolveErrs {
			outcome.StaticErrors = append(outcome.StaticErrors, e.Error())
		}
		return outcome
	}

	if err := interp.Interpret(stmts); err != nil {
		outcome.RuntimeError = err.Error()
	}

	outcome.Stdout = splitNonEmpty(stdout.String())
	return outcome
}

func splitNonEmpty(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func runCase(tc TestCase) (pass bool, failures []string) {
	source, err := os.ReadFile(tc.Path)
	if err != nil {
		return false, []string{fmt.Sprintf("could not read script: %v", err)}
	}

	expectations := parseExpectations(string(source))
	outcome := runScript(string(source))

	var wantStdout []string
	var wantRuntimeError string
	for _, exp := range expectations {
		if exp.runtimeError {
			wantRuntimeError = exp.text
		} else {
			wantStdout = append(wantStdout, exp.text)
		}
	}

	if wantRuntimeError != "" {
		if !strings.Contains(outcome.RuntimeError, wantRuntimeError) {
			failures = append(failures, fmt.Sprintf("expected runtime error containing %q, got %q", wantRuntimeError, outcome.RuntimeError))
		}
		return len(failures) == 0, failures
	}

	if outcome.RuntimeError != "" {
		failures = append(failures, fmt.Sprintf("unexpected runtime error: %s", outcome.RuntimeError))
	}
	if len(outcome.StaticErrors) > 0 {
		failures = append(failures, fmt.Sprintf("unexpected static errors: %s", strings.Join(outcome.StaticErrors, "; ")))
	}

	for i := 0; i < len(wantStdout) || i < len(outcome.Stdout); i++ {
		var want, got string
		if i < len(wantStdout) {
			want = wantStdout[i]
		}
		if i < len(outcome.Stdout) {
			got = outcome.Stdout[i]
		}
		if want != got {
			failures = append(failures, fmt.Sprintf("line %d: expected %q, got %q", i+1, want, got))
		}
	}

	return len(failures) == 0, failures
}
