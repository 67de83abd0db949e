package grader

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/autograde/internal/session"
)

// AssertGolden compares a finalized report against a golden file stored in
// testdata/golden/{name}.golden.
//
// To regenerate golden files, run the tests with -update. Reports must be
// produced with a deterministic clock and run ID for the comparison to be
// stable.
func AssertGolden(t *testing.T, name string, report *session.Report) error {
	t.Helper()

	data, err := report.JSON()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}
