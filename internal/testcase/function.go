package testcase

import (
	"context"

	"github.com/roach88/autograde/internal/namespace"
	"github.com/roach88/autograde/internal/verdict"
)

// FunctionTest compares the value returned by a submission function with
// the value the reference returns for the same input.
type FunctionTest struct {
	Reference  *namespace.Namespace
	Submission *namespace.Namespace
	Function   string
	Input      Input

	// Equal defaults to DefaultEqual.
	Equal Equal
}

// Run gates on structure, then calls both functions on independent copies
// of the arguments.
func (t *FunctionTest) Run(context.Context) verdict.Verdict {
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

	eq := t.Equal
	if eq == nil {
		eq = DefaultEqual
	}
	if eq(want.Value, got.Value) {
		return verdict.Correct{}
	}
	return verdict.ReturnMismatch{Expected: want.Value, Actual: got.Value}
}

func (t *FunctionTest) Private() bool { return t.Input.Private }

func (t *FunctionTest) String() string {
	return t.Function + ArgList(t.Input.Args)
}

// FunctionBatch builds one FunctionTest per input.
func FunctionBatch(ref, sub *namespace.Namespace, function string, inputs []Input) []Case {
	cases := make([]Case, len(inputs))
	for i, in := range inputs {
		cases[i] = &FunctionTest{Reference: ref, Submission: sub, Function: function, Input: in}
	}
	return cases
}
