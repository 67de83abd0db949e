// Package grader runs an ordered list of test cases against one session
// and decides the score.
//
// The runner stops at the first failing test. If every test passes the
// session gets the maximum score; otherwise it keeps the previous score
// (never below zero). Each test is announced in the student-facing log,
// followed by its verdict. Hidden tests are announced without their
// arguments and their verdicts are redacted.
//
// A Runner is single use: once it has finalized its session, further runs
// return ErrFinalized.
package grader
