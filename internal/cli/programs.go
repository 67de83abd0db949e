package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewProgramsCommand creates the programs command.
func NewProgramsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "programs",
		Short: "List the programs manifests can reference",
		Long: `List the registered reference solutions and sample submissions.

Manifests may also reference external scripts with an "exec:" prefix,
for example "exec:python3 two_largest.py"; those are not listed.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			entries := rootOpts.registry().Entries()
			if formatter.JSON() {
				return formatter.Success(entries)
			}

			tw := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tKIND")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\n", e.ID, e.Kind)
			}
			return tw.Flush()
		},
	}

	return cmd
}
