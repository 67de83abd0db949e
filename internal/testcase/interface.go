package testcase

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/autograde/internal/differ"
	"github.com/roach88/autograde/internal/namespace"
	"github.com/roach88/autograde/internal/verdict"
)

// InterfaceTest calls a client entry point with one input and compares the
// text it produces against a recorded transcript. The client exercises the
// submission's classes, so a misnamed method usually surfaces as a crash or
// a wrong transcript; setting Reference adds a structural check first.
type InterfaceTest struct {
	Client   *namespace.Namespace
	Function string
	Input    Input
	Expected string

	// Reference is optional.
	Reference *namespace.Namespace
}

func (t *InterfaceTest) Run(context.Context) verdict.Verdict {
	if t.Reference != nil {
		if v := gate(t.Reference, t.Client); !v.Passed() {
			return v
		}
	}
	fn, ok := t.Client.Function(t.Function)
	if !ok {
		return verdict.InterfaceMismatch{
			Detail: fmt.Sprintf("%s is missing the following functions: %s", t.Client.Name, t.Function),
		}
	}

	out := invoke(fn, t.Input.Args)
	if out.Faulted() {
		return crashed(out.Err)
	}

	text := out.Output
	if out.Value != nil {
		if text != "" && !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		text += fmt.Sprint(out.Value)
	}

	// Only the token sequence matters, not how it is split into lines.
	return differ.Compare(differ.CollapseWhitespace(text), differ.CollapseWhitespace(t.Expected), differ.Exact)
}

func (t *InterfaceTest) Private() bool { return t.Input.Private }

func (t *InterfaceTest) String() string {
	if len(t.Input.Args) == 0 {
		return t.Function + "()"
	}
	return fmt.Sprint(t.Input.Args[0])
}

// InterfaceBatch builds one InterfaceTest per input, pairing inputs with
// expected transcripts by position.
func InterfaceBatch(client, ref *namespace.Namespace, function string, inputs []Input, expected []string) ([]Case, error) {
	if len(inputs) != len(expected) {
		return nil, fmt.Errorf("interface batch: %d inputs but %d expected outputs", len(inputs), len(expected))
	}
	cases := make([]Case, len(inputs))
	for i, in := range inputs {
		cases[i] = &InterfaceTest{
			Client:    client,
			Reference: ref,
			Function:  function,
			Input:     in,
			Expected:  expected[i],
		}
	}
	return cases, nil
}
