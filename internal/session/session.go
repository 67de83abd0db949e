package session

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// TimeLayout formats report timestamps, e.g.
// "Thursday, 30. August 2018 04:27:56PM".
const TimeLayout = "Monday, 02. January 2006 03:04:05PM"

// ErrFinalized is returned when a finalized session is finalized again.
var ErrFinalized = errors.New("session already finalized")

// Session accumulates the logs and score of one grading run. It is not safe
// for concurrent use; grading is sequential.
type Session struct {
	state    State
	maxScore float64
	score    float64
	passed   bool

	clock Clock
	runID string
	start time.Time

	external []string
	internal []string
	checks   map[string]string

	report *Report
}

// Option configures a Session.
type Option func(*sessionConfig)

type sessionConfig struct {
	clock Clock
	ids   IDGenerator
}

// WithClock overrides the wall clock.
func WithClock(c Clock) Option {
	return func(cfg *sessionConfig) { cfg.clock = c }
}

// WithIDGenerator overrides run ID generation.
func WithIDGenerator(g IDGenerator) Option {
	return func(cfg *sessionConfig) { cfg.ids = g }
}

// New starts a session. The start time is taken immediately.
func New(state State, maxScore float64, opts ...Option) *Session {
	cfg := sessionConfig{clock: SystemClock{}, ids: UUIDv7Generator{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Session{
		state:    state,
		maxScore: maxScore,
		clock:    cfg.clock,
		runID:    cfg.ids.Generate(),
		start:    cfg.clock.Now(),
		external: []string{},
		internal: []string{},
		checks:   make(map[string]string),
	}
}

// RunID identifies this grading run.
func (s *Session) RunID() string { return s.runID }

// State returns the persisted state the session started from.
func (s *Session) State() State { return s.state }

// MaxScore returns the score awarded when every test passes.
func (s *Session) MaxScore() float64 { return s.maxScore }

// Score returns the current score.
func (s *Session) Score() float64 { return s.score }

// SetScore replaces the current score.
func (s *Session) SetScore(score float64) { s.score = score }

// SetPassed records whether every test passed.
func (s *Session) SetPassed(passed bool) { s.passed = passed }

// XLog appends a student-facing message.
func (s *Session) XLog(msg string) {
	s.external = append(s.external, sanitize(msg))
}

// ILog appends a staff-only message.
func (s *Session) ILog(msg string) {
	s.internal = append(s.internal, sanitize(msg))
}

// Compare records the outcome of one structural check under key.
func (s *Session) Compare(key, msg string) {
	s.checks[key] = sanitize(msg)
}

// Logs returns copies of the external and internal logs.
func (s *Session) Logs() (external, internal []string) {
	return append([]string(nil), s.external...), append([]string(nil), s.internal...)
}

// Finalized reports whether Finalize has succeeded.
func (s *Session) Finalized() bool { return s.report != nil }

// Finalize stamps the end time and builds the report. It succeeds once.
func (s *Session) Finalize() (*Report, error) {
	if s.report != nil {
		return nil, ErrFinalized
	}

	end := s.clock.Now()
	r := &Report{
		Info: Info{
			RunID:      s.runID,
			StartTime:  s.start.Format(TimeLayout),
			EndTime:    end.Format(TimeLayout),
			TimeDelta:  s.state.TimeDelta,
			Attempts:   s.state.Attempts,
			FinalScore: s.score,
			MaxScore:   s.maxScore,
		},
		InternalLog: append([]string{}, s.internal...),
		ExternalLog: append([]string{}, s.external...),
		ScoreSum:    s.score,
		MaxScore:    s.maxScore,
		AllPassed:   s.passed,
	}
	if len(s.checks) > 0 {
		r.SanityCompare = make(map[string]string, len(s.checks))
		for k, v := range s.checks {
			r.SanityCompare[k] = v
		}
	}
	s.report = r
	return r, nil
}

// sanitize puts log text into NFC form and strips carriage returns, so
// reports compare equal regardless of the platform that produced them.
func sanitize(msg string) string {
	return norm.NFC.String(strings.ReplaceAll(msg, "\r\n", "\n"))
}
