package store

import (
	"testing"

	"github.com/roach88/autograde/internal/session"
)

func finalized(t *testing.T, st session.State, runID string, score float64) *session.Report {
	t.Helper()
	sess := session.New(st, 20, session.WithIDGenerator(fixedID(runID)))
	sess.XLog("Running test: digital_root(1729)")
	sess.SetScore(score)
	sess.SetPassed(score == 20)
	r, err := sess.Finalize()
	if err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}
	return r
}

type fixedID string

func (f fixedID) Generate() string { return string(f) }

func TestBeginAttempt_FirstAttempt(t *testing.T) {
	s := createTestStore(t)

	st, err := s.BeginAttempt(bg, "hw1", "alice")
	if err != nil {
		t.Fatalf("BeginAttempt() failed: %v", err)
	}
	if want := (session.State{Attempts: 1}); st != want {
		t.Errorf("BeginAttempt() = %+v, want %+v", st, want)
	}
}

func TestBeginAttempt_Counts(t *testing.T) {
	s := createTestStore(t)

	for i := 1; i <= 3; i++ {
		st, err := s.BeginAttempt(bg, "hw1", "alice")
		if err != nil {
			t.Fatalf("BeginAttempt() failed: %v", err)
		}
		if st.Attempts != i {
			t.Errorf("attempt %d: got Attempts=%d", i, st.Attempts)
		}
	}

	other, err := s.BeginAttempt(bg, "hw1", "bob")
	if err != nil {
		t.Fatalf("BeginAttempt() failed: %v", err)
	}
	if other.Attempts != 1 {
		t.Errorf("bob: got Attempts=%d, want 1", other.Attempts)
	}
}

func TestRecordReport_BestScoreBecomesPrevScore(t *testing.T) {
	s := createTestStore(t)

	st, _ := s.BeginAttempt(bg, "hw1", "alice")
	if err := s.RecordReport(bg, "hw1", "alice", "", finalized(t, st, "run-1", 20)); err != nil {
		t.Fatalf("RecordReport() failed: %v", err)
	}

	st, _ = s.BeginAttempt(bg, "hw1", "alice")
	if err := s.RecordReport(bg, "hw1", "alice", "", finalized(t, st, "run-2", 0)); err != nil {
		t.Fatalf("RecordReport() failed: %v", err)
	}

	st, err := s.BeginAttempt(bg, "hw1", "alice")
	if err != nil {
		t.Fatalf("BeginAttempt() failed: %v", err)
	}
	if st.PrevScore != 20 || st.Attempts != 3 {
		t.Errorf("state = %+v, want prevscore 20 after 3 attempts", st)
	}
}

func TestRecordReport_Idempotent(t *testing.T) {
	s := createTestStore(t)

	st, _ := s.BeginAttempt(bg, "hw1", "alice")
	r := finalized(t, st, "run-1", 10)
	for i := 0; i < 2; i++ {
		if err := s.RecordReport(bg, "hw1", "alice", "fp-1", r); err != nil {
			t.Fatalf("RecordReport() #%d failed: %v", i, err)
		}
	}

	records, err := s.History(bg, "hw1", "alice")
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("History() returned %d records, want 1", len(records))
	}
	if records[0].Manifest != "fp-1" {
		t.Errorf("records[0].Manifest = %q, want %q", records[0].Manifest, "fp-1")
	}
}

func TestRecordReport_WithoutBeginAttempt(t *testing.T) {
	s := createTestStore(t)

	r := finalized(t, session.DefaultState(), "run-1", 5)
	if err := s.RecordReport(bg, "hw2", "carol", "", r); err != nil {
		t.Fatalf("RecordReport() failed: %v", err)
	}

	st, err := s.State(bg, "hw2", "carol")
	if err != nil {
		t.Fatalf("State() failed: %v", err)
	}
	if st.PrevScore != 5 || st.Attempts != 1 {
		t.Errorf("State() = %+v", st)
	}
}

func TestHistory(t *testing.T) {
	s := createTestStore(t)

	records, err := s.History(bg, "hw1", "nobody")
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("History() = %v, want empty non-nil slice", records)
	}

	for i, score := range []float64{0, 20} {
		st, _ := s.BeginAttempt(bg, "hw1", "alice")
		if err := s.RecordReport(bg, "hw1", "alice", "", finalized(t, st, []string{"run-b", "run-a"}[i], score)); err != nil {
			t.Fatalf("RecordReport() failed: %v", err)
		}
	}

	records, err = s.History(bg, "hw1", "alice")
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("History() returned %d records, want 2", len(records))
	}
	if records[0].Attempt != 1 || records[0].ID != "run-b" || records[0].Passed {
		t.Errorf("records[0] = %+v", records[0])
	}
	if records[1].Attempt != 2 || !records[1].Passed {
		t.Errorf("records[1] = %+v", records[1])
	}

	report, err := records[1].Report()
	if err != nil {
		t.Fatalf("Report() failed: %v", err)
	}
	if report.Info.RunID != "run-a" || len(report.ExternalLog) != 1 {
		t.Errorf("decoded report = %+v", report)
	}
}

func TestSetTimeDelta(t *testing.T) {
	s := createTestStore(t)

	if err := s.SetTimeDelta(bg, "hw1", "alice", -1); err != nil {
		t.Fatalf("SetTimeDelta() failed: %v", err)
	}
	st, err := s.BeginAttempt(bg, "hw1", "alice")
	if err != nil {
		t.Fatalf("BeginAttempt() failed: %v", err)
	}
	if st.TimeDelta != -1 {
		t.Errorf("TimeDelta = %d, want -1", st.TimeDelta)
	}
	// SetTimeDelta created the row with zero attempts.
	if st.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", st.Attempts)
	}
}
