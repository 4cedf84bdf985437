// Package testutils provides utilities for testing the compiler on source
// code.
package testutils

import (
	"strings"
	"testing"

	"github.com/zephyrtronium/rubypir"
)

// A SourceTestCase is a test case containing source code and a predicate to
// check the result of compiling it.
type SourceTestCase struct {
	// Source is the program to compile.
	Source string
	// Pass is a predicate taking the result of compiling Source. If Pass
	// returns false, then the test fails. The result is nil if the source
	// failed to parse.
	Pass func(result *rubypir.Result, err error) bool
}

// TestFunc returns a test function for the test case. The source is compiled
// with the default configuration, using name as its label.
func (c SourceTestCase) TestFunc(name string) func(*testing.T) {
	return func(t *testing.T) {
		r, err := rubypir.CompileString(c.Source, name)
		if !c.Pass(r, err) {
			var w strings.Builder
			w.WriteString("wrong result compiling:\n")
			w.WriteString(c.Source)
			if err != nil {
				w.WriteString("\nerror: ")
				w.WriteString(err.Error())
			}
			if r != nil {
				w.WriteString("\noutput:\n")
				w.WriteString(r.Output)
			}
			t.Error(w.String())
		}
	}
}

// Lines splits output into lines with surrounding space removed, dropping
// blank lines.
func Lines(out string) []string {
	var lines []string
	for _, l := range strings.Split(out, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// PassSuccess returns a Pass function for a SourceTestCase that returns true
// iff compilation succeeded with no errors.
func PassSuccess() func(*rubypir.Result, error) bool {
	return func(result *rubypir.Result, err error) bool {
		return err == nil && result != nil && !result.Failed()
	}
}

// PassFailure returns a Pass function for a SourceTestCase that returns true
// iff compilation failed for any reason.
func PassFailure() func(*rubypir.Result, error) bool {
	// This doesn't need to be a function returning a function, but it's nice to
	// stay consistent with the other predicate generators.
	return func(result *rubypir.Result, err error) bool {
		return err != nil
	}
}

// PassContains returns a Pass function for a SourceTestCase that returns true
// iff compilation succeeded and every line in want appears in the output.
// Lines are compared with surrounding space removed.
func PassContains(want ...string) func(*rubypir.Result, error) bool {
	return func(result *rubypir.Result, err error) bool {
		if err != nil {
			return false
		}
		have := make(map[string]bool)
		for _, l := range Lines(result.Output) {
			have[l] = true
		}
		for _, l := range want {
			if !have[l] {
				return false
			}
		}
		return true
	}
}

// PassNotContains returns a Pass function for a SourceTestCase that returns
// true iff compilation succeeded and no line of the output contains any of
// the strings in exclude.
func PassNotContains(exclude ...string) func(*rubypir.Result, error) bool {
	return func(result *rubypir.Result, err error) bool {
		if err != nil {
			return false
		}
		for _, l := range Lines(result.Output) {
			for _, x := range exclude {
				if strings.Contains(l, x) {
					return false
				}
			}
		}
		return true
	}
}

// PassLinesInOrder returns a Pass function for a SourceTestCase that returns
// true iff compilation succeeded and the lines of want appear in the output
// in order, not necessarily adjacent.
func PassLinesInOrder(want ...string) func(*rubypir.Result, error) bool {
	return func(result *rubypir.Result, err error) bool {
		if err != nil {
			return false
		}
		return InOrder(Lines(result.Output), want)
	}
}

// PassExact returns a Pass function for a SourceTestCase that returns true iff
// compilation succeeded and the output's lines are exactly want.
func PassExact(want ...string) func(*rubypir.Result, error) bool {
	return func(result *rubypir.Result, err error) bool {
		if err != nil {
			return false
		}
		have := Lines(result.Output)
		if len(have) != len(want) {
			return false
		}
		for i := range have {
			if have[i] != want[i] {
				return false
			}
		}
		return true
	}
}

// PassErrors returns a Pass function for a SourceTestCase that returns true
// iff compilation produced exactly the given semantic errors, formatted as
// "line N: message", in order.
func PassErrors(want ...string) func(*rubypir.Result, error) bool {
	return func(result *rubypir.Result, err error) bool {
		if err == nil || result == nil || !result.Failed() {
			return false
		}
		if len(result.Errors) != len(want) {
			return false
		}
		for i, e := range result.Errors {
			if e.Error() != want[i] {
				return false
			}
		}
		return true
	}
}

// InOrder reports whether want is a subsequence of have.
func InOrder(have, want []string) bool {
	i := 0
	for _, l := range have {
		if i < len(want) && l == want[i] {
			i++
		}
	}
	return i == len(want)
}
