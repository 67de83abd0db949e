package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/autograde/internal/differ"
	"github.com/roach88/autograde/internal/verdict"
)

// DiffOptions holds flags for the diff command.
type DiffOptions struct {
	*RootOptions
	IgnoreWhitespace bool
}

// DiffResult is the JSON payload of the diff command.
type DiffResult struct {
	Kind    verdict.Kind `json:"kind"`
	Passed  bool         `json:"passed"`
	Message string       `json:"message"`
}

// NewDiffCommand creates the diff command.
func NewDiffCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DiffOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "diff <actual> <expected>",
		Short: "Compare two transcripts the way the grader does",
		Long: `Compare two text files line by line and explain the first difference.

Lines are compared after trimming surrounding whitespace. With
--ignore-whitespace, runs of spaces inside a line are also collapsed,
as for function_stdout and interface tests.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.IgnoreWhitespace, "ignore-whitespace", "w", false, "collapse whitespace inside lines before comparing")

	return cmd
}

func runDiff(opts *DiffOptions, actualPath, expectedPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	actual, err := os.ReadFile(actualPath)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, "failed to read actual output", err)
	}
	expected, err := os.ReadFile(expectedPath)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, "failed to read expected output", err)
	}

	var v verdict.Verdict
	if opts.IgnoreWhitespace {
		v = differ.Compare(differ.Normalize(string(actual)), differ.Normalize(string(expected)), differ.IgnoreWhitespace)
	} else {
		v = differ.Compare(string(actual), string(expected), differ.Exact)
	}

	if formatter.JSON() {
		if err := formatter.Success(DiffResult{Kind: v.Kind(), Passed: v.Passed(), Message: v.String()}); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(formatter.Writer, v.String())
	}

	if !v.Passed() {
		return NewExitError(ExitFailure, fmt.Sprintf("%s: outputs differ", ErrCodeMismatch))
	}
	return nil
}
