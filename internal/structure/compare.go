// Package structure checks that a submission exposes the interface the
// reference defines: the same top-level functions, classes and methods,
// each with the same positional arity. Extra names in the submission are
// allowed.
package structure

import (
	"fmt"
	"strings"

	"github.com/roach88/autograde/internal/namespace"
	"github.com/roach88/autograde/internal/verdict"
)

// Check is one section of the structural comparison, kept for the staff
// log.
type Check struct {
	Key    string
	Passed bool
	Lines  []string
}

// Message joins the check's lines.
func (c Check) Message() string {
	return strings.Join(c.Lines, "\n")
}

// Comparison is the result of Compare.
type Comparison struct {
	Verdict verdict.Verdict
	Checks  []Check
}

// Compare checks sub against ref. The verdict is Correct only when every
// check passes; otherwise a single InterfaceMismatch lists every problem.
func Compare(ref, sub *namespace.Namespace) Comparison {
	var (
		problems []string
		checks   []Check
	)
	record := func(c Check) {
		checks = append(checks, c)
		if !c.Passed {
			problems = append(problems, failures(c.Lines)...)
		}
	}

	record(compareFunctions(ref, sub))

	missingClasses := missing(ref.ClassNames(), func(name string) bool {
		_, ok := sub.Class(name)
		return ok
	})
	classCheck := Check{Key: "classes", Passed: len(missingClasses) == 0}
	if classCheck.Passed {
		classCheck.Lines = []string{"PASSED@classes"}
	} else {
		classCheck.Lines = []string{fmt.Sprintf("%s is missing the following classes: %s",
			sub.Name, strings.Join(missingClasses, ", "))}
	}
	record(classCheck)

	for _, name := range ref.ClassNames() {
		subClass, ok := sub.Class(name)
		if !ok {
			continue
		}
		refClass, _ := ref.Class(name)
		record(compareMethods(ref.Name, sub.Name, refClass, subClass))
	}

	if len(problems) == 0 {
		return Comparison{Verdict: verdict.Correct{}, Checks: checks}
	}
	return Comparison{
		Verdict: verdict.InterfaceMismatch{Detail: strings.Join(problems, "\n")},
		Checks:  checks,
	}
}

func compareFunctions(ref, sub *namespace.Namespace) Check {
	c := Check{Key: "top_lvl_funcs", Passed: true}

	absent := missing(ref.FunctionNames(), func(name string) bool {
		_, ok := sub.Function(name)
		return ok
	})
	if len(absent) > 0 {
		c.Passed = false
		c.Lines = append(c.Lines, fmt.Sprintf("%s is missing the following functions: %s",
			sub.Name, strings.Join(absent, ", ")))
	}

	for _, name := range ref.FunctionNames() {
		subFn, ok := sub.Function(name)
		if !ok {
			continue
		}
		refFn, _ := ref.Function(name)
		line, ok := arity(ref.Name, sub.Name, name, refFn.Arity, subFn.Arity)
		c.Lines = append(c.Lines, line)
		c.Passed = c.Passed && ok
	}
	if c.Passed && len(c.Lines) == 0 {
		c.Lines = []string{"PASSED@top_lvl_funcs"}
	}
	return c
}

func compareMethods(refName, subName string, ref, sub namespace.Class) Check {
	c := Check{Key: ref.Name + "_funcs", Passed: true}

	absent := missing(ref.MethodNames(), func(name string) bool {
		_, ok := sub.Methods[name]
		return ok
	})
	if len(absent) > 0 {
		c.Passed = false
		c.Lines = append(c.Lines, fmt.Sprintf("Your class %s.%s is missing some functions: %s",
			subName, ref.Name, strings.Join(absent, ", ")))
	}

	for _, name := range ref.MethodNames() {
		subArity, ok := sub.Methods[name]
		if !ok {
			continue
		}
		qualified := ref.Name + "." + name
		line, ok := arity(refName, subName, qualified, ref.Methods[name], subArity)
		c.Lines = append(c.Lines, line)
		c.Passed = c.Passed && ok
	}
	if c.Passed && len(c.Lines) == 0 {
		c.Lines = []string{"PASSED@" + c.Key}
	}
	return c
}

// arity renders the arity log line for one callable and reports whether the
// arities agree.
func arity(refName, subName, name string, want, got int) (string, bool) {
	if want == got {
		return fmt.Sprintf("PASSED@%s: %d args defined in %s.%s. %d args in %s.%s",
			name, want, refName, name, got, subName, name), true
	}
	return fmt.Sprintf("ERROR@%s: You defined %d args in %s.%s, there should be %d argument(s)",
		name, got, subName, name, want), false
}

// failures drops PASSED lines, so a mismatch detail only lists problems.
func failures(lines []string) []string {
	var out []string
	for _, line := range lines {
		if !strings.HasPrefix(line, "PASSED@") {
			out = append(out, line)
		}
	}
	return out
}

func missing(names []string, has func(string) bool) []string {
	var out []string
	for _, name := range names {
		if !has(name) {
			out = append(out, name)
		}
	}
	return out
}
