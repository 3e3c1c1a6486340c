package main

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// TestCase is one golden script: its name and path. The expectations in its
// `// expect:` / `// expect runtime error:` comments are read by runCase.
type TestCase struct {
	Name string // relative to the scripts root, e.g. "class/inheritance.lox"
	Path string
}

// TestSuite groups every script found directly under one subdirectory of
// the scripts root. Scripts sitting directly in the root form the "Top
// Level" suite, mirroring how the teacher framework treats ungrouped cases.
type TestSuite struct {
	Name  string
	Cases []TestCase
}

func discoverSuites(root string) ([]*TestSuite, error) {
	bySuite := map[string]*TestSuite{}
	var order []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".lox") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		suiteName := filepath.Dir(rel)
		if suiteName == "." {
			suiteName = "Top Level"
		}

		suite, ok := bySuite[suiteName]
		if !ok {
			suite = &TestSuite{Name: suiteName}
			bySuite[suiteName] = suite
			order = append(order, suiteName)
		}
		suite.Cases = append(suite.Cases, TestCase{Name: rel, Path: path})
		return nil
	})
	if err != nil {
		return nil, err
	}

	suites := make([]*TestSuite, 0, len(order))
	for _, name := range order {
		suites = append(suites, bySuite[name])
	}
	return suites, nil
}
