// Package session keeps the log of one grading run and renders it as the
// final report.
//
// A session holds two logs. The external log is shown to the student; the
// internal log is kept for course staff. A session also carries the state
// persisted from previous attempts (attempt count, previous score, lateness)
// and the structural checks run against the submission.
//
// # Lifecycle
//
// A session is created when grading starts and finalized exactly once,
// which stamps the end time and freezes the report:
//
//	s := session.New(state, 20)
//	s.XLog("Running test: digital_root(1729)")
//	s.SetScore(20)
//	report, err := s.Finalize()
//
// Finalizing twice returns ErrFinalized.
//
// # Report Format
//
// Reports serialize to JSON with the keys info, internal_log, external_log,
// sanity_compare, score_sum and max_score. Timestamps use TimeLayout.
package session
