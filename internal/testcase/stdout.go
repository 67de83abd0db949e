package testcase

import (
	"context"

	"github.com/roach88/autograde/internal/differ"
	"github.com/roach88/autograde/internal/namespace"
	"github.com/roach88/autograde/internal/verdict"
)

// FunctionStdoutTest compares what a submission function prints with what
// the reference prints, line by line. Whitespace runs inside a line are not
// significant; line breaks, including the final one, are.
type FunctionStdoutTest struct {
	Reference  *namespace.Namespace
	Submission *namespace.Namespace
	Function   string
	Input      Input
}

func (t *FunctionStdoutTest) Run(context.Context) verdict.Verdict {
	if v := gate(t.Reference, t.Submission); !v.Passed() {
		return v
	}
	refFn, subFn, v := lookup(t.Reference, t.Submission, t.Function)
	if v != nil {
		return v
	}

	got := invoke(subFn, t.Input.Args)
	if got.Faulted() {
		return crashed(got.Err)
	}
	want := invoke(refFn, t.Input.Args)
	if want.Faulted() {
		return referenceCrashed(want.Err)
	}

	return differ.Compare(got.Output, want.Output, differ.IgnoreWhitespace)
}

func (t *FunctionStdoutTest) Private() bool { return t.Input.Private }

func (t *FunctionStdoutTest) String() string {
	return t.Function + ArgList(t.Input.Args)
}

// StdoutBatch builds one FunctionStdoutTest per input.
func StdoutBatch(ref, sub *namespace.Namespace, function string, inputs []Input) []Case {
	cases := make([]Case, len(inputs))
	for i, in := range inputs {
		cases[i] = &FunctionStdoutTest{Reference: ref, Submission: sub, Function: function, Input: in}
	}
	return cases
}
