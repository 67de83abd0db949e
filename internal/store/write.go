package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/autograde/internal/session"
)

// BeginAttempt counts a new attempt for student on assignment and returns
// the state the grading session starts from. The previous score is the best
// score recorded so far.
func (s *Store) BeginAttempt(ctx context.Context, assignment, student string) (session.State, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return session.State{}, fmt.Errorf("begin attempt: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO attempts (assignment, student, attempts)
		VALUES (?, ?, 1)
		ON CONFLICT(assignment, student) DO UPDATE SET attempts = attempts + 1
	`, assignment, student)
	if err != nil {
		return session.State{}, fmt.Errorf("begin attempt: %w", err)
	}

	st, err := scanState(tx.QueryRowContext(ctx, `
		SELECT attempts, best_score, timedelta
		FROM attempts
		WHERE assignment = ? AND student = ?
	`, assignment, student))
	if err != nil {
		return session.State{}, fmt.Errorf("begin attempt: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return session.State{}, fmt.Errorf("begin attempt: %w", err)
	}
	return st, nil
}

// SetTimeDelta records the lateness indicator for student on assignment.
func (s *Store) SetTimeDelta(ctx context.Context, assignment, student string, timedelta int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attempts (assignment, student, timedelta)
		VALUES (?, ?, ?)
		ON CONFLICT(assignment, student) DO UPDATE SET timedelta = excluded.timedelta
	`, assignment, student, timedelta)
	if err != nil {
		return fmt.Errorf("set timedelta: %w", err)
	}
	return nil
}

// RecordReport archives a finalized report and raises the best score when
// the report beats it. manifest is the fingerprint of the manifest that
// produced the report and may be empty. Recording the same run ID twice is
// a no-op.
func (s *Store) RecordReport(ctx context.Context, assignment, student, manifest string, report *session.Report) error {
	data, err := report.JSON()
	if err != nil {
		return fmt.Errorf("record report: %w", err)
	}

	id := report.Info.RunID
	if id == "" {
		id = uuid.Must(uuid.NewV7()).String()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record report: %w", err)
	}
	defer tx.Rollback()

	// The attempts row may not exist when the session was seeded from a
	// data file instead of BeginAttempt.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO attempts (assignment, student, attempts)
		VALUES (?, ?, ?)
		ON CONFLICT(assignment, student) DO NOTHING
	`, assignment, student, report.Info.Attempts)
	if err != nil {
		return fmt.Errorf("record report: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO reports
		(id, assignment, student, attempt, score, max_score, passed, report, manifest, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		id,
		assignment,
		student,
		report.Info.Attempts,
		report.ScoreSum,
		report.MaxScore,
		report.Passed(),
		string(data),
		manifest,
		report.Info.EndTime,
	)
	if err != nil {
		return fmt.Errorf("record report: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE attempts SET best_score = MAX(best_score, ?)
		WHERE assignment = ? AND student = ?
	`, report.ScoreSum, assignment, student)
	if err != nil {
		return fmt.Errorf("record report: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record report: %w", err)
	}
	return nil
}

func scanState(row *sql.Row) (session.State, error) {
	var st session.State
	if err := row.Scan(&st.Attempts, &st.PrevScore, &st.TimeDelta); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return session.DefaultState(), nil
		}
		return session.State{}, err
	}
	return st, nil
}
