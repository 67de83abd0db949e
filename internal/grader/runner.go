package grader

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/roach88/autograde/internal/session"
	"github.com/roach88/autograde/internal/structure"
	"github.com/roach88/autograde/internal/testcase"
	"github.com/roach88/autograde/internal/verdict"
)

// Messages written to the student-facing log.
const (
	MsgHiddenTest    = "Running on a hidden test."
	MsgAllPassed     = "CONGRATULATIONS! All the tests passed."
	MsgSomeFailed    = "At least one of our tests above found a problem."
	MsgLoadFailed    = "An exception was raised while trying to import your file. Did you try running it yourself?"
	msgRunningPrefix = "Running test: "
)

// ErrFinalized is returned when a runner is used after finalizing.
var ErrFinalized = errors.New("grader: runner already finalized")

// State is the runner lifecycle.
type State int

const (
	Running State = iota
	Finalized
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Finalized:
		return "finalized"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Summary is what a completed run reports besides the session report.
type Summary struct {
	Executed int
	Passed   bool

	// Failure is the verdict that stopped the run, nil when all passed.
	Failure verdict.Verdict
}

// Runner executes test cases for one session.
type Runner struct {
	session *session.Session
	logger  *zap.Logger
	state   State
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the diagnostic logger. The default discards output.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// New creates a runner bound to sess.
func New(sess *session.Session, opts ...Option) *Runner {
	r := &Runner{session: sess, logger: zap.NewNop(), state: Running}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns the lifecycle state.
func (r *Runner) State() State { return r.state }

// RecordStructure copies the staff-facing structural checks into the
// session.
func (r *Runner) RecordStructure(cmp structure.Comparison) {
	for _, c := range cmp.Checks {
		r.session.Compare(c.Key, c.Message())
	}
}

// Run executes cases in order, stopping at the first failure, then scores
// and finalizes the session.
func (r *Runner) Run(ctx context.Context, cases []testcase.Case) (*session.Report, Summary, error) {
	if r.state == Finalized {
		return nil, Summary{}, ErrFinalized
	}

	var sum Summary
	for _, tc := range cases {
		v := tc.Run(ctx)
		sum.Executed++
		r.notify(tc, v)

		if !v.Passed() {
			sum.Failure = v
			break
		}
	}
	sum.Passed = sum.Failure == nil

	if sum.Passed {
		r.session.XLog(MsgAllPassed)
		r.session.SetScore(r.session.MaxScore())
		r.session.SetPassed(true)
	} else {
		r.session.XLog(MsgSomeFailed)
		r.session.SetScore(fallbackScore(r.session.State()))
	}

	r.logger.Info("grading finished",
		zap.String("run_id", r.session.RunID()),
		zap.Int("executed", sum.Executed),
		zap.Int("total", len(cases)),
		zap.Bool("passed", sum.Passed),
		zap.Float64("score", r.session.Score()),
	)

	report, err := r.finalize()
	return report, sum, err
}

// Abort finalizes the session without running anything, for submissions
// that could not be loaded. cause goes to the staff log only.
func (r *Runner) Abort(cause error) (*session.Report, error) {
	if r.state == Finalized {
		return nil, ErrFinalized
	}

	r.session.XLog(MsgLoadFailed)
	if cause != nil {
		r.session.ILog("load failed: " + cause.Error())
	}
	r.session.SetScore(fallbackScore(r.session.State()))

	r.logger.Warn("grading aborted",
		zap.String("run_id", r.session.RunID()),
		zap.Error(cause),
	)
	return r.finalize()
}

func (r *Runner) notify(tc testcase.Case, v verdict.Verdict) {
	if tc.Private() {
		r.session.XLog(MsgHiddenTest)
		r.session.XLog(v.Redacted())
	} else {
		r.session.XLog(msgRunningPrefix + tc.String())
		r.session.XLog(v.String())
	}

	outcome := "SUCCEEDED"
	if !v.Passed() {
		outcome = "FAILED"
	}
	r.session.ILog(fmt.Sprintf("code on %s %s", tc, outcome))
	if !v.Passed() {
		r.session.ILog(v.String())
	}

	r.logger.Debug("test finished",
		zap.String("test", tc.String()),
		zap.Bool("private", tc.Private()),
		zap.String("verdict", string(v.Kind())),
	)
}

func (r *Runner) finalize() (*session.Report, error) {
	report, err := r.session.Finalize()
	if err != nil {
		return nil, fmt.Errorf("finalize session: %w", err)
	}
	r.state = Finalized
	return report, nil
}

// fallbackScore is the score kept when a run fails.
func fallbackScore(st session.State) float64 {
	return math.Max(st.PrevScore, 0)
}
