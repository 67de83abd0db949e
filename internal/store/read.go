package store

import (
	"context"
	"fmt"

	"github.com/roach88/autograde/internal/session"
)

// Record is one archived report.
type Record struct {
	ID         string  `json:"id"`
	Assignment string  `json:"assignment"`
	Student    string  `json:"student"`
	Attempt    int     `json:"attempt"`
	Score      float64 `json:"score"`
	MaxScore   float64 `json:"max_score"`
	Passed     bool    `json:"passed"`
	Manifest   string  `json:"manifest,omitempty"`
	CreatedAt  string  `json:"created_at"`

	raw string
}

// Report decodes the archived report.
func (r Record) Report() (*session.Report, error) {
	return session.ParseReport([]byte(r.raw))
}

// State returns the stored state for student on assignment without counting
// an attempt. A student with no attempts gets session.DefaultState.
func (s *Store) State(ctx context.Context, assignment, student string) (session.State, error) {
	st, err := scanState(s.db.QueryRowContext(ctx, `
		SELECT attempts, best_score, timedelta
		FROM attempts
		WHERE assignment = ? AND student = ?
	`, assignment, student))
	if err != nil {
		return session.State{}, fmt.Errorf("read state: %w", err)
	}
	return st, nil
}

// History returns the archived reports for student on assignment, oldest
// attempt first. Returns an empty slice (not nil) when there are none.
func (s *Store) History(ctx context.Context, assignment, student string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, assignment, student, attempt, score, max_score, passed, report, manifest, created_at
		FROM reports
		WHERE assignment = ? AND student = ?
		ORDER BY attempt ASC, id COLLATE BINARY ASC
	`, assignment, student)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Assignment, &r.Student, &r.Attempt,
			&r.Score, &r.MaxScore, &r.Passed, &r.raw, &r.Manifest, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return records, nil
}
