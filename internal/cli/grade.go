package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/autograde/internal/grader"
	"github.com/roach88/autograde/internal/manifest"
	"github.com/roach88/autograde/internal/programs"
	"github.com/roach88/autograde/internal/session"
	"github.com/roach88/autograde/internal/store"
)

// GradeOptions holds flags for the grade command.
type GradeOptions struct {
	*RootOptions
	DataFile   string
	Database   string
	Student    string
	Submission string
	MaxScore   float64
	Timeout    time.Duration

	// TimeDelta overrides the stored lateness indicator when set.
	TimeDelta *int

	// Session options, for tests that need fixed clocks and run IDs.
	sessionOpts []session.Option
}

// NewGradeCommand creates the grade command.
func NewGradeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GradeOptions{RootOptions: rootOpts}
	var timedelta int

	cmd := &cobra.Command{
		Use:   "grade <manifest>",
		Short: "Grade a submission against its reference",
		Long: `Run every test a manifest describes, in order, stopping at the first failure.

Prior attempts come from a JSON data file (attempts, prevscore, timedelta)
or, with --db, from the SQLite store, which also archives the report.
The report is written to stdout: the student transcript and score in text
format, the full report in json format.

Examples:
  autograde grade examples/digital_root.yaml
  autograde grade examples/two_largest.yaml --submission two_largest2
  autograde grade examples/domino.yaml --db ./grades.db --student s123 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("timedelta") {
				opts.TimeDelta = &timedelta
			}
			return runGrade(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DataFile, "data", "", "JSON file with attempts, prevscore and timedelta (default from config)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")
	cmd.Flags().StringVar(&opts.Student, "student", "", "student id, required with --db")
	cmd.Flags().StringVar(&opts.Submission, "submission", "", "override the manifest's submission program")
	cmd.Flags().Float64Var(&opts.MaxScore, "max-score", 0, "override the maximum score")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "abandon grading after this long (0 means no limit)")
	cmd.Flags().IntVar(&timedelta, "timedelta", 0, "lateness indicator: 0 on time, negative when late (stored with --db)")

	return cmd
}

func runGrade(ctx context.Context, opts *GradeOptions, path string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	formatter := newFormatter(opts.RootOptions, cmd)
	cfg := opts.settings()
	log := opts.log()

	m, err := manifest.Load(path)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidManifest, "failed to load manifest", err)
	}
	if opts.Submission != "" {
		m.Submission = opts.Submission
	}
	formatter.VerboseLog("Grading %s: %s against %s", m.Name, m.Submission, m.Reference)

	// Programs are resolved before an attempt is counted, so an operator
	// error leaves the student's record alone.
	plan, loadErr := manifest.Build(m, opts.registry())
	if loadErr != nil && !submissionFailed(m, loadErr) {
		var lerr *programs.LoadError
		if errors.As(loadErr, &lerr) {
			return formatter.Fail(ExitCommandError, ErrCodeLoadFailed, "failed to load reference program", loadErr)
		}
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to build tests", loadErr)
	}

	dbPath := opts.Database
	if dbPath == "" {
		dbPath = cfg.Database
	}

	var (
		st    *store.Store
		state session.State
	)
	if dbPath != "" {
		if opts.Student == "" {
			return formatter.Fail(ExitCommandError, ErrCodeGeneric, "--student is required when grading with a database", nil)
		}
		st, err = store.Open(dbPath)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
		}
		defer st.Close()

		state, err = st.BeginAttempt(ctx, m.Name, opts.Student)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to record attempt", err)
		}
		if opts.TimeDelta != nil {
			if err := st.SetTimeDelta(ctx, m.Name, opts.Student, *opts.TimeDelta); err != nil {
				return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to record timedelta", err)
			}
		}
	} else {
		dataFile := opts.DataFile
		if dataFile == "" {
			dataFile = cfg.DataFile
		}
		state, err = session.LoadStateFile(dataFile)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to read session state", err)
		}
	}

	if opts.TimeDelta != nil {
		state.TimeDelta = *opts.TimeDelta
	}

	maxScore := cfg.MaxScore
	if m.MaxScore > 0 {
		maxScore = m.MaxScore
	}
	if opts.MaxScore > 0 {
		maxScore = opts.MaxScore
	}

	fingerprint, err := m.Fingerprint()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to fingerprint manifest", err)
	}

	sess := session.New(state, maxScore, opts.sessionOpts...)
	runner := grader.New(sess, grader.WithLogger(log.With(
		zap.String("assignment", m.Name),
		zap.String("submission", m.Submission),
		zap.String("manifest", fingerprint),
	)))

	report, passed, err := grade(ctx, runner, plan, loadErr)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "grading failed", err)
	}

	if st != nil {
		if err := st.RecordReport(ctx, m.Name, opts.Student, fingerprint, report); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to archive report", err)
		}
	}

	if err := writeReport(formatter, report); err != nil {
		return WrapExitError(ExitCommandError, "failed to write report", err)
	}

	if !passed {
		return NewExitError(ExitFailure, fmt.Sprintf("%s: not all tests passed (%g / %g)", m.Name, report.ScoreSum, report.MaxScore))
	}
	return nil
}

// grade runs the plan. A submission that failed to load aborts the run,
// which still yields a report.
func grade(ctx context.Context, runner *grader.Runner, plan *manifest.Plan, loadErr error) (*session.Report, bool, error) {
	if loadErr != nil {
		report, err := runner.Abort(loadErr)
		return report, false, err
	}
	if plan.Structure != nil {
		runner.RecordStructure(*plan.Structure)
	}

	report, sum, err := runner.Run(ctx, plan.Cases)
	return report, sum.Passed, err
}

func submissionFailed(m *manifest.Manifest, err error) bool {
	var lerr *programs.LoadError
	return errors.As(err, &lerr) && lerr.ID == m.Submission
}

func writeReport(formatter *OutputFormatter, report *session.Report) error {
	if formatter.JSON() {
		data, err := report.JSON()
		if err != nil {
			return err
		}
		_, err = formatter.Writer.Write(data)
		return err
	}
	return report.WriteText(formatter.Writer)
}
