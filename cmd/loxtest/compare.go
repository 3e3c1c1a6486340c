package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

const width = 100

var divider = strings.Repeat("-", width)

// printSuiteHeader mirrors the teacher framework's per-suite column header.
func printSuiteHeader(name string) {
	columns := "result"
	spacing := strings.Repeat(" ", max(1, width-len(name)-len(columns)))
	fmt.Printf("%s%s%s\n", name, spacing, columns)
}

func printCaseResult(name string, pass bool, failures []string) {
	result := color.GreenString("passed")
	if !pass {
		result = color.RedString("failed")
	}

	resultSpacing := strings.Repeat(" ", max(1, width-len("  [passed] ")-len(name)))
	fmt.Printf("  [%s] %s%s\n", result, name, resultSpacing)

	if !pass {
		fmt.Println(divider)
		for _, f := range failures {
			fmt.Printf("    %s\n", f)
		}
		fmt.Println(divider)
	}
}
