package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/autograde/internal/manifest"
	"github.com/roach88/autograde/internal/programs"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Name    string `json:"name,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Public  int    `json:"public"`
	Private int    `json:"private"`

	Fingerprint string   `json:"fingerprint,omitempty"`
	Errors      []string `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <manifest>",
		Short: "Validate a grading manifest without running it",
		Long: `Validate a grading manifest without running any test.

Decodes the manifest strictly, checks it against the manifest schema,
loads the reference program and checks that the submission names a known
program. The submission itself is not loaded.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	m, err := manifest.Load(path)
	if err != nil {
		var verr *manifest.ValidationError
		if errors.As(err, &verr) {
			return outputValidationErrors(formatter, []string{err.Error()})
		}
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, "failed to load manifest", err)
	}
	formatter.VerboseLog("Decoded manifest %s (%s)", m.Name, m.Kind)

	problems := checkPrograms(m, opts.registry())
	if len(problems) > 0 {
		return outputValidationErrors(formatter, problems)
	}

	return outputValidateSuccess(formatter, m)
}

// checkPrograms verifies the manifest's program ids against reg.
func checkPrograms(m *manifest.Manifest, reg *programs.Registry) []string {
	var problems []string

	if m.Reference != "" {
		var err error
		if m.Kind == manifest.KindInteractive {
			_, err = reg.Script(m.Reference)
		} else {
			_, err = reg.Namespace(m.Reference)
		}
		if err != nil {
			problems = append(problems, fmt.Sprintf("reference: %v", err))
		}
	}
	if !reg.Known(m.Submission) {
		problems = append(problems, fmt.Sprintf("submission: unknown program %q", m.Submission))
	}
	return problems
}

func outputValidateSuccess(formatter *OutputFormatter, m *manifest.Manifest) error {
	public, private := m.Count()
	fingerprint, err := m.Fingerprint()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to fingerprint manifest", err)
	}

	if formatter.JSON() {
		return formatter.Success(ValidationResult{
			Valid:       true,
			Name:        m.Name,
			Kind:        string(m.Kind),
			Public:      public,
			Private:     private,
			Fingerprint: fingerprint,
		})
	}

	fmt.Fprintf(formatter.Writer, "✓ Manifest valid: %s (%s, %d public, %d private)\n", m.Name, m.Kind, public, private)
	if m.Description != "" {
		fmt.Fprintf(formatter.Writer, "  %s\n", m.Description)
	}
	formatter.VerboseLog("Fingerprint: %s", fingerprint)
	return nil
}

// outputValidationErrors outputs one or more validation problems.
func outputValidationErrors(formatter *OutputFormatter, problems []string) error {
	if formatter.JSON() {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Errors: problems},
			Error: &CLIError{
				Code:    ErrCodeInvalidManifest,
				Message: problems[0],
			},
		}

		if err := formatter.encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1 (test/validation failure)
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(problems)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, p := range problems {
		fmt.Fprintf(formatter.Writer, "  %s: %s\n", ErrCodeInvalidManifest, p)
	}

	// Validation failures = exit code 1 (test/validation failure)
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(problems)))
}
