// Package differ compares two transcripts line by line and reports the first
// divergence as a verdict.
package differ

import (
	"strings"

	"github.com/roach88/autograde/internal/verdict"
)

// LineEqual decides whether an actual line matches an expected line. Both
// lines are already trimmed.
type LineEqual func(actual, expected string) bool

// Exact compares lines byte for byte.
func Exact(actual, expected string) bool {
	return actual == expected
}

// IgnoreWhitespace compares lines after collapsing whitespace runs.
func IgnoreWhitespace(actual, expected string) bool {
	return CollapseWhitespace(actual) == CollapseWhitespace(expected)
}

// CollapseWhitespace replaces every run of whitespace with a single space
// and drops leading and trailing whitespace.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Normalize trims the whole text and collapses whitespace runs inside each
// line. Line breaks are kept so mismatches still point at a line.
func Normalize(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, line := range lines {
		lines[i] = CollapseWhitespace(line)
	}
	return strings.Join(lines, "\n")
}

// Lines splits text on "\n" and trims every line. A trailing newline yields
// a final empty line.
func Lines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}

// Compare diffs actual against expected with eq, which defaults to Exact.
//
// The first index where eq fails yields a LineMismatch at that 1-based line.
// If the shorter transcript is a prefix of the longer one, the mismatch is at
// one past the shorter length, with the missing side nil. Otherwise the
// result is Correct.
func Compare(actual, expected string, eq LineEqual) verdict.Verdict {
	if eq == nil {
		eq = Exact
	}

	act := Lines(actual)
	exp := Lines(expected)

	n := min(len(act), len(exp))
	for i := 0; i < n; i++ {
		if !eq(act[i], exp[i]) {
			return mismatch(actual, expected, i+1, verdict.Text(exp[i]), verdict.Text(act[i]))
		}
	}

	switch {
	case len(act) > n:
		return mismatch(actual, expected, n+1, nil, verdict.Text(act[n]))
	case len(exp) > n:
		return mismatch(actual, expected, n+1, verdict.Text(exp[n]), nil)
	}
	return verdict.Correct{}
}

func mismatch(actual, expected string, line int, exp, act *string) verdict.LineMismatch {
	return verdict.LineMismatch{
		Line:                line,
		Expected:            exp,
		Actual:              act,
		ExpectedLines:       countLines(expected),
		ActualLines:         countLines(actual),
		MissingFinalNewline: missingFinalNewline(actual, expected),
	}
}

func missingFinalNewline(actual, expected string) bool {
	return actual != "" &&
		!strings.HasSuffix(actual, "\n") &&
		strings.HasSuffix(expected, "\n")
}

// countLines counts transcript lines the way a reader would: a trailing
// newline does not start a new line.
func countLines(text string) int {
	if text == "" {
		return 0
	}
	return len(strings.Split(strings.TrimSuffix(text, "\n"), "\n"))
}
