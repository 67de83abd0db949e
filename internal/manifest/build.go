package manifest

import (
	"fmt"

	"github.com/roach88/autograde/internal/capture"
	"github.com/roach88/autograde/internal/namespace"
	"github.com/roach88/autograde/internal/structure"
	"github.com/roach88/autograde/internal/testcase"
)

// Resolver turns program ids into loaded programs. *programs.Registry
// satisfies it.
type Resolver interface {
	Namespace(id string) (*namespace.Namespace, error)
	Script(id string) (capture.Script, error)
}

// Inputs returns the manifest entries as test inputs, public first.
func (m *Manifest) Inputs() []testcase.Input {
	return testcase.Inputs(argsOf(m.Public), argsOf(m.Private))
}

func argsOf(entries []Entry) [][]any {
	args := make([][]any, len(entries))
	for i, e := range entries {
		args[i] = e.Args
	}
	return args
}

// Outputs returns the expected transcripts of an interface manifest in the
// same order as Inputs.
func (m *Manifest) Outputs() []string {
	out := make([]string, 0, len(m.Public)+len(m.Private))
	for _, e := range m.Public {
		out = append(out, e.Output)
	}
	for _, e := range m.Private {
		out = append(out, e.Output)
	}
	return out
}

// Plan is a manifest resolved against loaded programs.
type Plan struct {
	Cases []testcase.Case

	// Structure compares the reference and submission namespaces. It is
	// nil for interactive manifests and interface manifests without a
	// reference.
	Structure *structure.Comparison
}

// Build loads the programs a manifest names and returns its test cases and
// structural comparison. Each program is loaded once. Load errors are
// returned unwrapped so the caller can tell a broken submission (a
// *programs.LoadError) apart from a broken manifest.
func Build(m *Manifest, r Resolver) (*Plan, error) {
	inputs := m.Inputs()

	switch m.Kind {
	case KindFunction, KindFunctionStdout:
		ref, err := r.Namespace(m.Reference)
		if err != nil {
			return nil, err
		}
		sub, err := r.Namespace(m.Submission)
		if err != nil {
			return nil, err
		}
		plan := &Plan{Structure: compare(ref, sub)}
		if m.Kind == KindFunction {
			plan.Cases = testcase.FunctionBatch(ref, sub, m.Function, inputs)
		} else {
			plan.Cases = testcase.StdoutBatch(ref, sub, m.Function, inputs)
		}
		return plan, nil

	case KindInteractive:
		ref, err := r.Script(m.Reference)
		if err != nil {
			return nil, err
		}
		sub, err := r.Script(m.Submission)
		if err != nil {
			return nil, err
		}
		return &Plan{Cases: testcase.InteractiveBatch(m.Name, ref, sub, inputs)}, nil

	case KindInterface:
		var ref *namespace.Namespace
		if m.Reference != "" {
			var err error
			if ref, err = r.Namespace(m.Reference); err != nil {
				return nil, err
			}
		}
		client, err := r.Namespace(m.Submission)
		if err != nil {
			return nil, err
		}
		cases, err := testcase.InterfaceBatch(client, ref, m.Function, inputs, m.Outputs())
		if err != nil {
			return nil, err
		}
		plan := &Plan{Cases: cases}
		if ref != nil {
			plan.Structure = compare(ref, client)
		}
		return plan, nil
	}

	return nil, fmt.Errorf("unsupported manifest kind %q", m.Kind)
}

func compare(ref, sub *namespace.Namespace) *structure.Comparison {
	cmp := structure.Compare(ref, sub)
	return &cmp
}
