package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/autograde/internal/session"
	"github.com/roach88/autograde/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database   string
	Assignment string
	Student    string
}

// HistoryResult is the JSON payload of the history command.
type HistoryResult struct {
	Assignment string         `json:"assignment"`
	Student    string         `json:"student"`
	State      session.State  `json:"state"`
	Reports    []store.Record `json:"reports"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived grading runs for a student",
		Long: `List the reports archived by "autograde grade --db" for one student and
assignment, oldest attempt first, with the stored attempt count and best score.

Examples:
  autograde history --db ./grades.db --assignment digital-root --student s123
  autograde history --db ./grades.db --assignment domino --student s123 --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")
	cmd.Flags().StringVar(&opts.Assignment, "assignment", "", "assignment name (required)")
	_ = cmd.MarkFlagRequired("assignment")
	cmd.Flags().StringVar(&opts.Student, "student", "", "student id (required)")
	_ = cmd.MarkFlagRequired("student")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	formatter := newFormatter(opts.RootOptions, cmd)

	dbPath := opts.Database
	if dbPath == "" {
		dbPath = opts.settings().Database
	}
	if dbPath == "" {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "--db is required (or set AUTOGRADE_DB)", nil)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
	}
	defer st.Close()

	state, err := st.State(ctx, opts.Assignment, opts.Student)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to read state", err)
	}
	records, err := st.History(ctx, opts.Assignment, opts.Student)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to read history", err)
	}

	if formatter.JSON() {
		return formatter.Success(HistoryResult{
			Assignment: opts.Assignment,
			Student:    opts.Student,
			State:      state,
			Reports:    records,
		})
	}

	if len(records) == 0 {
		fmt.Fprintf(formatter.Writer, "No reports found for %s on %s\n", opts.Student, opts.Assignment)
		return nil
	}

	fmt.Fprintf(formatter.Writer, "%s on %s: %d attempt(s), best score %g\n\n",
		opts.Student, opts.Assignment, state.Attempts, state.PrevScore)

	tw := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ATTEMPT\tSCORE\tPASSED\tCREATED\tRUN ID")
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%g / %g\t%t\t%s\t%s\n", r.Attempt, r.Score, r.MaxScore, r.Passed, r.CreatedAt, r.ID)
	}
	return tw.Flush()
}
