// Command loxtest runs every golden script under testdata/scripts through
// the interpreter in-process and checks its output against the `// expect:`
// comments embedded in the script, the same convention the craftinginterpreters
// test suite this pipeline is modeled on uses. It is adapted from a
// reference-vs-target diffing harness: with
// only one implementation to test, the "reference" is the expectation
// comments rather than a second binary.
package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	dir := flag.String("dir", "cmd/loxtest/testdata/scripts", "root directory of golden .lox scripts")
	flag.Parse()

	suites, err := discoverSuites(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "discovering scripts: %v\n", err)
		os.Exit(1)
	}

	total, failed := 0, 0
	for i, suite := range suites {
		if i > 0 {
			fmt.Println()
		}
		printSuiteHeader(suite.Name)

		for _, tc := range suite.Cases {
			pass, failures := runCase(tc)
			printCaseResult(tc.Name, pass, failures)
			total++
			if !pass {
				failed++
			}
		}
	}

	fmt.Println()
	fmt.Println(divider)
	fmt.Printf("Tests run: %d, passed: %d, failed: %d\n", total, total-failed, failed)

	if failed > 0 {
		os.Exit(1)
	}
}
