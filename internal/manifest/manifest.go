// Package manifest loads grading manifests.
//
// A manifest names the reference and submission programs for one
// assignment, the kind of test to run and the public and private inputs:
//
//	name: digital-root
//	kind: function
//	reference: ta_digital_root
//	submission: digital_root2
//	function: digital_root
//	max_score: 20
//	public:
//	  - args: [1729]
//	private:
//	  - args: [5000]
//
// Manifests are decoded strictly (unknown fields are rejected) and then
// checked against an embedded CUE schema before the Go-side rules run.
package manifest

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Kind selects the test variant a manifest produces.
type Kind string

const (
	KindFunction       Kind = "function"
	KindFunctionStdout Kind = "function_stdout"
	KindInteractive    Kind = "interactive"
	KindInterface      Kind = "interface"
)

// Manifest describes one graded assignment.
type Manifest struct {
	// Name identifies the assignment in reports and the store.
	Name string `yaml:"name" json:"name"`

	// Description is free text shown by `autograde validate`.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	Kind Kind `yaml:"kind" json:"kind"`

	// Reference is the program id of the staff solution. Optional for
	// interface manifests, where expected transcripts are recorded inline.
	Reference string `yaml:"reference,omitempty" json:"reference,omitempty"`

	// Submission is the program id of the student's work.
	Submission string `yaml:"submission" json:"submission"`

	// Function is the entry point called by function, function_stdout and
	// interface manifests. Interactive manifests run whole scripts.
	Function string `yaml:"function,omitempty" json:"function,omitempty"`

	// MaxScore of zero means "use the configured default".
	MaxScore float64 `yaml:"max_score,omitempty" json:"max_score,omitempty"`

	Public  []Entry `yaml:"public,omitempty" json:"public,omitempty"`
	Private []Entry `yaml:"private,omitempty" json:"private,omitempty"`
}

// Entry is one test input. For interactive manifests Args are the stdin
// lines; for interface manifests Output is the expected transcript.
type Entry struct {
	Args   []any  `yaml:"args,omitempty" json:"args,omitempty"`
	Output string `yaml:"output,omitempty" json:"output,omitempty"`
}

// ValidationError reports a manifest that decoded but breaks a rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Load reads, decodes and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates manifest YAML.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := checkSchema(&m); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	if err := validate(&m); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	return &m, nil
}

// Count returns the number of public and private entries.
func (m *Manifest) Count() (public, private int) {
	return len(m.Public), len(m.Private)
}

func validate(m *Manifest) error {
	if m.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if m.Submission == "" {
		return &ValidationError{Field: "submission", Message: "submission is required"}
	}
	if len(m.Public)+len(m.Private) == 0 {
		return &ValidationError{Message: "at least one public or private entry is required"}
	}
	if m.MaxScore < 0 {
		return &ValidationError{Field: "max_score", Message: "max_score must not be negative"}
	}

	switch m.Kind {
	case KindFunction, KindFunctionStdout:
		if m.Reference == "" {
			return &ValidationError{Field: "reference", Message: fmt.Sprintf("reference is required for %s manifests", m.Kind)}
		}
		if m.Function == "" {
			return &ValidationError{Field: "function", Message: fmt.Sprintf("function is required for %s manifests", m.Kind)}
		}
	case KindInteractive:
		if m.Reference == "" {
			return &ValidationError{Field: "reference", Message: "reference is required for interactive manifests"}
		}
		if m.Function != "" {
			return &ValidationError{Field: "function", Message: "interactive manifests run whole scripts; remove function"}
		}
	case KindInterface:
		if m.Function == "" {
			return &ValidationError{Field: "function", Message: "function is required for interface manifests"}
		}
	default:
		return &ValidationError{Field: "kind", Message: fmt.Sprintf("unknown kind %q", m.Kind)}
	}

	if err := validateEntries("public", m.Kind, m.Public); err != nil {
		return err
	}
	return validateEntries("private", m.Kind, m.Private)
}

func validateEntries(section string, kind Kind, entries []Entry) error {
	for i, e := range entries {
		field := fmt.Sprintf("%s[%d]", section, i)
		if kind == KindInterface && e.Output == "" {
			return &ValidationError{Field: field, Message: "output is required for interface manifests"}
		}
		if kind != KindInterface && e.Output != "" {
			return &ValidationError{Field: field, Message: fmt.Sprintf("output is only allowed in interface manifests, not %s", kind)}
		}
		for j, a := range e.Args {
			switch a.(type) {
			case map[string]any:
				if kind == KindInteractive {
					return &ValidationError{Field: fmt.Sprintf("%s.args[%d]", field, j), Message: "stdin lines must be scalars"}
				}
			case []any:
				if kind == KindInteractive {
					return &ValidationError{Field: fmt.Sprintf("%s.args[%d]", field, j), Message: "stdin lines must be scalars"}
				}
			case nil:
				return &ValidationError{Field: fmt.Sprintf("%s.args[%d]", field, j), Message: "null arguments are not supported"}
			}
		}
	}
	return nil
}
