package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/mbbutler/lox/internal/lox"
)

// Exit codes follow the sysexits.h convention the codecrafters Lox
// challenge also uses: 64 for a command-line usage error, 65 for a data
// (scan/parse/resolve) error, 70 for a runtime error.
const (
	exitUsage   = 64
	exitDataErr = 65
	exitRuntime = 70
)

func main() {
	switch len(os.Args) {
	case 1:
		repl := lox.NewRepl("lox> ", os.Stdout)
		if err := repl.Run(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitRuntime)
		}
	case 2:
		runFile(os.Args[1])
	default:
		fmt.Fprintln(os.Stderr, "Usage: lox [script]")
		os.Exit(exitUsage)
	}
}

func runFile(path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}

	scanner := lox.NewScanner(string(source))
	tokens, scanErrs := scanner.ScanTokens()
	if len(scanErrs) > 0 {
		reportAll(scanErrs)
		os.Exit(exitDataErr)
	}

	parser := lox.NewParser(tokens)
	stmts, parseErrs := parser.Parse()
	if len(parseErrs) > 0 {
		reportAll(parseErrs)
		os.Exit(exitDataErr)
	}

	interp := lox.NewInterpreter(os.Stdout)
	resolver := lox.NewResolver(interp)
	if resolveErrs := resolver.Resolve(stmts); len(resolveErrs) > 0 {
		reportAll(resolveErrs)
		os.Exit(exitDataErr)
	}

	if err := interp.Interpret(stmts); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(exitRuntime)
	}
}

func reportAll[E error](errs []E) {
	red := color.New(color.FgRed)
	for _, e := range errs {
		red.Fprintln(os.Stderr, e)
	}
}
