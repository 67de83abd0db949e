// Package verdict defines the outcome of a single grading comparison.
//
// A Verdict is one of five variants:
//
//   - Correct: behaviors matched
//   - Crashed: the graded code (or the reference) faulted while running
//   - ReturnMismatch: a function returned a different value than the reference
//   - LineMismatch: a transcript diverged at a specific line
//   - InterfaceMismatch: required functions, classes or arities were missing
//
// Only Correct passes. Verdicts are immutable values; every variant renders
// a full explanation with String and a hidden-test explanation with
// Redacted that never contains argument values or mismatched content.
package verdict
