// Package testcase implements the four kinds of grading test:
//
//   - FunctionTest compares return values of a function
//   - FunctionStdoutTest compares what a function prints
//   - InteractiveTest compares transcripts of scripts fed the same stdin
//   - InterfaceTest compares a client's output against a recorded transcript
//
// Every test turns its outcome into a verdict.Verdict. Running a test has no
// side effects beyond the capture buffers it creates, so running it twice
// yields the same verdict.
package testcase

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/roach88/autograde/internal/capture"
	"github.com/roach88/autograde/internal/clone"
	"github.com/roach88/autograde/internal/namespace"
	"github.com/roach88/autograde/internal/structure"
	"github.com/roach88/autograde/internal/verdict"
)

// Input is one set of positional arguments. Private inputs must never show
// up in student-facing text.
type Input struct {
	Args    []any
	Private bool
}

// Case is a single runnable test.
type Case interface {
	Run(ctx context.Context) verdict.Verdict
	Private() bool
	String() string
}

// Equal compares a reference value with a submission value.
type Equal func(expected, actual any) bool

// DefaultEqual is structural equality. Values go-cmp refuses to compare,
// such as structs with unexported fields, fall back to reflect.DeepEqual.
func DefaultEqual(expected, actual any) (equal bool) {
	defer func() {
		if recover() != nil {
			equal = reflect.DeepEqual(expected, actual)
		}
	}()
	return cmp.Equal(expected, actual)
}

// Inputs builds a batch of inputs: public ones first, then private ones.
func Inputs(public, private [][]any) []Input {
	inputs := make([]Input, 0, len(public)+len(private))
	for _, args := range public {
		inputs = append(inputs, Input{Args: args})
	}
	for _, args := range private {
		inputs = append(inputs, Input{Args: args, Private: true})
	}
	return inputs
}

// ArgList renders arguments as a call suffix: strings are quoted and
// arguments are separated by commas.
func ArgList(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if s, ok := a.(string); ok {
			parts[i] = `"` + s + `"`
		} else {
			parts[i] = fmt.Sprint(a)
		}
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// gate runs the structural comparison that precedes every function call.
func gate(ref, sub *namespace.Namespace) verdict.Verdict {
	return structure.Compare(ref, sub).Verdict
}

// lookup resolves the function under test in both namespaces. A submission
// without the function is an interface mismatch; a reference without it is
// reported as a crash, since no comparison is possible.
func lookup(ref, sub *namespace.Namespace, name string) (refFn, subFn namespace.Function, v verdict.Verdict) {
	subFn, ok := sub.Function(name)
	if !ok {
		return refFn, subFn, verdict.InterfaceMismatch{
			Detail: fmt.Sprintf("%s is missing the following functions: %s", sub.Name, name),
		}
	}
	refFn, ok = ref.Function(name)
	if !ok {
		return refFn, subFn, verdict.Crashed{
			Cause: fmt.Sprintf("reference %s does not define %s", ref.Name, name),
		}
	}
	return refFn, subFn, nil
}

// invoke calls fn on a private copy of args. A failure to copy the
// arguments is reported as a fault of the call.
func invoke(fn namespace.Function, args []any) capture.Outcome {
	copied, err := clone.Args(args)
	if err != nil {
		return capture.Outcome{Err: err}
	}
	return capture.Call(fn.Call, copied)
}

func crashed(err error) verdict.Crashed {
	return verdict.Crashed{Cause: err.Error()}
}

func referenceCrashed(err error) verdict.Crashed {
	return verdict.Crashed{Cause: "reference solution failed: " + err.Error()}
}
