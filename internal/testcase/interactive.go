package testcase

import (
	"context"
	"fmt"

	"github.com/roach88/autograde/internal/capture"
	"github.com/roach88/autograde/internal/differ"
	"github.com/roach88/autograde/internal/verdict"
)

// InteractiveTest runs a reference script and a submission script on the
// same stdin lines and compares their transcripts exactly, line by line.
type InteractiveTest struct {
	Name       string
	Reference  capture.Script
	Submission capture.Script
	Input      Input
}

func (t *InteractiveTest) Run(ctx context.Context) verdict.Verdict {
	lines := t.lines()

	got := capture.RunScript(ctx, t.Submission, lines)
	if got.Faulted() {
		return verdict.Crashed{Cause: fmt.Sprintf("An error occurred running your script: %v", got.Err)}
	}
	want := capture.RunScript(ctx, t.Reference, lines)
	if want.Faulted() {
		return referenceCrashed(want.Err)
	}

	return differ.Compare(got.Output, want.Output, differ.Exact)
}

func (t *InteractiveTest) lines() []string {
	lines := make([]string, len(t.Input.Args))
	for i, a := range t.Input.Args {
		lines[i] = fmt.Sprint(a)
	}
	return lines
}

func (t *InteractiveTest) Private() bool { return t.Input.Private }

func (t *InteractiveTest) String() string {
	return t.Name + " with input " + ArgList(t.Input.Args)
}

// InteractiveBatch builds one InteractiveTest per input.
func InteractiveBatch(name string, ref, sub capture.Script, inputs []Input) []Case {
	cases := make([]Case, len(inputs))
	for i, in := range inputs {
		cases[i] = &InteractiveTest{Name: name, Reference: ref, Submission: sub, Input: in}
	}
	return cases
}
