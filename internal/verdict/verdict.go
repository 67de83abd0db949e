package verdict

import (
	"fmt"
	"strings"
)

// Kind names a verdict variant. It is used in logs and serialized reports.
type Kind string

const (
	KindCorrect           Kind = "correct"
	KindCrashed           Kind = "crashed"
	KindReturnMismatch    Kind = "return_mismatch"
	KindLineMismatch      Kind = "line_mismatch"
	KindInterfaceMismatch Kind = "interface_mismatch"
)

// Verdict is a sealed interface over the five outcome variants.
type Verdict interface {
	// Passed reports whether the comparison succeeded. Only Correct passes.
	Passed() bool

	// Kind returns the variant name.
	Kind() Kind

	// String renders the full explanation shown for public tests.
	String() string

	// Redacted renders an explanation safe to show for a hidden test.
	Redacted() string

	verdict() // sealed
}

const rule = "---------------"

// missingLine is printed in place of an absent transcript line.
const missingLine = "(no line)"

// Correct is the passing verdict.
type Correct struct{}

func (Correct) verdict()         {}
func (Correct) Passed() bool     { return true }
func (Correct) Kind() Kind       { return KindCorrect }
func (Correct) String() string   { return "Correct!" }
func (Correct) Redacted() string { return "Correct!" }

// Crashed records a fault raised while invoking graded code.
type Crashed struct {
	Cause string
}

func (Crashed) verdict()     {}
func (Crashed) Passed() bool { return false }
func (Crashed) Kind() Kind   { return KindCrashed }

func (c Crashed) String() string {
	return banner("EXCEPTION RAISED!", c.Cause)
}

func (Crashed) Redacted() string {
	return banner("EXCEPTION RAISED!", "Your code raised an error on one of our hidden tests.")
}

// ReturnMismatch records differing return values. Expected always holds the
// reference result.
type ReturnMismatch struct {
	Expected any
	Actual   any
}

func (ReturnMismatch) verdict()     {}
func (ReturnMismatch) Passed() bool { return false }
func (ReturnMismatch) Kind() Kind   { return KindReturnMismatch }

func (r ReturnMismatch) String() string {
	return fmt.Sprintf("ERROR!\n  WE EXPECTED: %v\n  WE RECEIVED: %v", r.Expected, r.Actual)
}

func (ReturnMismatch) Redacted() string {
	return "ERROR!\nYour code returned an incorrect result on one of our hidden tests."
}

// LineMismatch records the first diverging transcript line.
//
// Line is 1-based. When one transcript is a strict prefix of the other, Line
// is one past the shorter transcript and the missing side is nil.
type LineMismatch struct {
	Line     int
	Expected *string
	Actual   *string

	// ExpectedLines and ActualLines are the transcript lengths, when known.
	ExpectedLines int
	ActualLines   int

	// MissingFinalNewline is set when the received transcript lacks the
	// trailing end-of-line the expected transcript has.
	MissingFinalNewline bool
}

func (LineMismatch) verdict()     {}
func (LineMismatch) Passed() bool { return false }
func (LineMismatch) Kind() Kind   { return KindLineMismatch }

func (l LineMismatch) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ERROR IN LINE %d OF THE OUTPUT.\n", l.Line)
	b.WriteString("  WE EXPECTED:\n")
	b.WriteString(orMissing(l.Expected))
	b.WriteString("\n  WE RECEIVED:\n")
	b.WriteString(orMissing(l.Actual))
	if hints := l.hints(true); hints != "" {
		b.WriteString("\n")
		b.WriteString(hints)
	}
	return banner(b.String())
}

func (l LineMismatch) Redacted() string {
	msg := "Incorrect output with one of our hidden test inputs."
	if hints := l.hints(false); hints != "" {
		msg += "\n" + hints
	}
	return banner(msg)
}

// hints lists the transcript-shape feedback. Line counts describe the
// content of the transcripts and are only shown when counts is set.
func (l LineMismatch) hints(counts bool) string {
	var lines []string
	if l.MissingFinalNewline {
		lines = append(lines, "Your output is missing a final end-of-line character.")
	}
	if counts && l.ExpectedLines != l.ActualLines {
		lines = append(lines,
			fmt.Sprintf("Your transcript had %d lines.", l.ActualLines),
			fmt.Sprintf("Our transcript had %d lines.", l.ExpectedLines))
	}
	return strings.Join(lines, "\n")
}

// InterfaceMismatch records a failed structural check.
type InterfaceMismatch struct {
	Detail string
}

func (InterfaceMismatch) verdict()     {}
func (InterfaceMismatch) Passed() bool { return false }
func (InterfaceMismatch) Kind() Kind   { return KindInterfaceMismatch }

func (i InterfaceMismatch) String() string {
	return banner("ERROR!",
		"You did not follow the naming conventions for your functions. Please look over your work and resubmit.",
		i.Detail)
}

// Redacted returns the full text: structural details name functions and
// classes, never test inputs.
func (i InterfaceMismatch) Redacted() string {
	return i.String()
}

// Text returns a pointer to s, for building LineMismatch values.
func Text(s string) *string {
	return &s
}

func orMissing(s *string) string {
	if s == nil {
		return missingLine
	}
	return *s
}

func banner(parts ...string) string {
	body := make([]string, 0, len(parts)+2)
	body = append(body, rule)
	for _, p := range parts {
		if p != "" {
			body = append(body, p)
		}
	}
	body = append(body, rule)
	return strings.Join(body, "\n")
}
