package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Info is the summary block of a report.
type Info struct {
	RunID      string  `json:"run_id"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	TimeDelta  int     `json:"timedelta"`
	Attempts   int     `json:"attempts"`
	FinalScore float64 `json:"final score"`
	MaxScore   float64 `json:"max score"`
}

// Report is the finalized record of a grading run.
type Report struct {
	Info          Info              `json:"info"`
	InternalLog   []string          `json:"internal_log"`
	ExternalLog   []string          `json:"external_log"`
	SanityCompare map[string]string `json:"sanity_compare,omitempty"`
	ScoreSum      float64           `json:"score_sum"`
	MaxScore      float64           `json:"max_score"`
	AllPassed     bool              `json:"all_passed"`
}

// Passed reports whether every test passed. A failed run may still carry
// the maximum score from an earlier attempt.
func (r *Report) Passed() bool {
	return r.AllPassed
}

// JSON renders the report as indented JSON without HTML escaping.
func (r *Report) JSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteText writes the student-facing transcript followed by the score.
func (r *Report) WriteText(w io.Writer) error {
	var b strings.Builder
	for _, line := range r.ExternalLog {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "\nScore: %g / %g\n", r.ScoreSum, r.MaxScore)
	_, err := io.WriteString(w, b.String())
	return err
}

// ParseReport decodes a report produced by JSON.
func ParseReport(data []byte) (*Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &r, nil
}
