package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/autograde/internal/grader"
	"github.com/roach88/autograde/internal/session"
	"github.com/roach88/autograde/internal/store"
	"github.com/roach88/autograde/internal/testutil"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func example(name string) string {
	return filepath.Join("..", "..", "examples", name)
}

// gradeFixture runs the grade command in-process with a fixed clock and run
// ID and returns its stdout.
func gradeFixture(t *testing.T, format string, configure func(*GradeOptions), manifestPath string) (string, error) {
	t.Helper()

	opts := &GradeOptions{
		RootOptions: &RootOptions{Format: format},
		DataFile:    filepath.Join(t.TempDir(), "data.json"),
		sessionOpts: []session.Option{
			session.WithClock(testutil.NewDeterministicClock(time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC), time.Second)),
			session.WithIDGenerator(testutil.NewFixedIDGenerator("grade-test")),
		},
	}
	if configure != nil {
		configure(opts)
	}

	buf := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})

	err := runGrade(context.Background(), opts, manifestPath, cmd)
	return buf.String(), err
}

func TestGrade_AllPassedText(t *testing.T) {
	out, err := gradeFixture(t, "text", nil, example("hailstone.yaml"))
	require.NoError(t, err)

	assert.Contains(t, out, "Running test: hailstone(1)")
	assert.Contains(t, out, "Correct!")
	assert.Contains(t, out, grader.MsgAllPassed)
	assert.Contains(t, out, "Score: 20 / 20")
}

func TestGrade_InteractiveExample(t *testing.T) {
	out, err := gradeFixture(t, "text", nil, example("two_largest.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, `two-largest with input (3,7,5,"")`)
	assert.Contains(t, out, grader.MsgHiddenTest)
}

func TestGrade_FailureKeepsPreviousScore(t *testing.T) {
	out, err := gradeFixture(t, "text", func(o *GradeOptions) {
		writeFile(t, o.DataFile, `{"attempts": 2, "prevscore": 12.5, "timedelta": 0}`)
	}, example("digital_root.yaml"))

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "not all tests passed")

	assert.Contains(t, out, "Running test: digital_root(1729)")
	assert.Contains(t, out, "WE EXPECTED: 1")
	assert.Contains(t, out, "WE RECEIVED: 5")
	assert.Contains(t, out, grader.MsgSomeFailed)
	assert.Contains(t, out, "Score: 12.5 / 20")
	assert.NotContains(t, out, "digital_root(356)", "no test runs after the first failure")
}

func TestGrade_JSONReport(t *testing.T) {
	out, err := gradeFixture(t, "json", func(o *GradeOptions) {
		o.Submission = "digital_root1"
		o.MaxScore = 5
	}, example("digital_root.yaml"))
	require.NoError(t, err)

	report, err := session.ParseReport([]byte(out))
	require.NoError(t, err)

	assert.Equal(t, "grade-test", report.Info.RunID)
	assert.Equal(t, 1, report.Info.Attempts)
	assert.Equal(t, 5.0, report.ScoreSum)
	assert.Equal(t, 5.0, report.MaxScore)
	assert.Contains(t, report.SanityCompare, "top_lvl_funcs")
	assert.Contains(t, report.SanityCompare, "classes")
	assert.Contains(t, report.ExternalLog, grader.MsgHiddenTest)
	for _, line := range report.ExternalLog {
		assert.NotContains(t, line, "5000", "hidden inputs stay out of the student log")
	}
}

func TestGrade_ManifestMaxScore(t *testing.T) {
	out, err := gradeFixture(t, "text", func(o *GradeOptions) {
		o.Submission = "digital_root1"
	}, example("digital_root.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "Score: 20 / 20")
}

func TestGrade_BrokenSubmissionAborts(t *testing.T) {
	out, err := gradeFixture(t, "json", func(o *GradeOptions) {
		o.Submission = "broken_import"
		writeFile(t, o.DataFile, `{"prevscore": 8}`)
	}, example("digital_root.yaml"))

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	report, perr := session.ParseReport([]byte(out))
	require.NoError(t, perr)
	assert.Equal(t, []string{grader.MsgLoadFailed}, report.ExternalLog)
	assert.Equal(t, 8.0, report.ScoreSum)
	require.NotEmpty(t, report.InternalLog)
	assert.Contains(t, report.InternalLog[len(report.InternalLog)-1], "SyntaxError")
}

func TestGrade_MissingFunctionIsInterfaceMismatch(t *testing.T) {
	out, err := gradeFixture(t, "text", func(o *GradeOptions) {
		o.Submission = "digital_root3"
	}, example("digital_root.yaml"))

	require.Error(t, err)
	assert.Contains(t, out, "naming conventions")
	assert.Contains(t, out, "digital_root3 is missing the following functions: digital_root")
}

func TestGrade_UnknownReference(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.yaml")
	writeFile(t, path, `
name: x
kind: function
reference: no_such_reference
submission: digital_root1
function: digital_root
public: [{args: [1]}]
`)

	out, err := gradeFixture(t, "json", nil, path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ErrCodeLoadFailed, resp.Error.Code)
}

func TestGrade_InvalidManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.yaml")
	writeFile(t, path, "name: x\nkind: essay\n")

	out, err := gradeFixture(t, "text", nil, path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error ["+ErrCodeInvalidManifest+"]")
}

func TestGrade_DatabaseRequiresStudent(t *testing.T) {
	_, err := gradeFixture(t, "text", func(o *GradeOptions) {
		o.Database = filepath.Join(t.TempDir(), "grades.db")
	}, example("hailstone.yaml"))

	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "--student")
}

func TestGrade_DatabaseCountsAttempts(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "grades.db")

	grade := func(submission string) error {
		opts := &GradeOptions{
			RootOptions: &RootOptions{Format: "json"},
			Database:    dbPath,
			Student:     "s123",
			Submission:  submission,
		}
		cmd := &cobra.Command{}
		cmd.SetOut(&bytes.Buffer{})
		return runGrade(context.Background(), opts, example("digital_root.yaml"), cmd)
	}

	require.NoError(t, grade("digital_root1"))
	require.Error(t, grade("digital_root2"))

	buf := &bytes.Buffer{}
	cmd := NewHistoryCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", dbPath, "--assignment", "digital-root", "--student", "s123"})
	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string        `json:"status"`
		Data   HistoryResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.Data.State.Attempts)
	assert.Equal(t, 20.0, resp.Data.State.PrevScore)
	require.Len(t, resp.Data.Reports, 2)
	assert.True(t, resp.Data.Reports[0].Passed)
	assert.Len(t, resp.Data.Reports[0].Manifest, 64)
	assert.Equal(t, 1, resp.Data.Reports[0].Attempt)

	// The failed second attempt keeps the best score from the first.
	assert.False(t, resp.Data.Reports[1].Passed)
	assert.Equal(t, 2, resp.Data.Reports[1].Attempt)
	assert.Equal(t, 20.0, resp.Data.Reports[1].Score)
}

func TestGrade_TimeDelta(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "grades.db")
	late := -2

	out, err := gradeFixture(t, "json", func(o *GradeOptions) {
		o.Database = dbPath
		o.Student = "s123"
		o.TimeDelta = &late
	}, example("hailstone.yaml"))
	require.NoError(t, err)

	report, err := session.ParseReport([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, -2, report.Info.TimeDelta)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()
	state, err := st.State(context.Background(), "hailstone", "s123")
	require.NoError(t, err)
	assert.Equal(t, -2, state.TimeDelta)
	assert.Equal(t, 1, state.Attempts)
}

func TestGrade_TimeDeltaOverridesDataFile(t *testing.T) {
	onTime := 0
	out, err := gradeFixture(t, "json", func(o *GradeOptions) {
		writeFile(t, o.DataFile, `{"attempts": 2, "timedelta": -1}`)
		o.TimeDelta = &onTime
	}, example("hailstone.yaml"))
	require.NoError(t, err)

	report, err := session.ParseReport([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, 0, report.Info.TimeDelta)
	assert.Equal(t, 2, report.Info.Attempts)
}

func TestGrade_ReferenceFailureDoesNotCountAttempt(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "grades.db")
	path := filepath.Join(t.TempDir(), "m.yaml")
	writeFile(t, path, `
name: digital-root
kind: function
reference: no_such_reference
submission: digital_root1
function: digital_root
public: [{args: [1]}]
`)

	_, err := gradeFixture(t, "text", func(o *GradeOptions) {
		o.Database = dbPath
		o.Student = "s123"
	}, path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = gradeFixture(t, "text", func(o *GradeOptions) {
		o.Database = dbPath
		o.Student = "s123"
		o.Submission = "digital_root1"
	}, example("digital_root.yaml"))
	require.NoError(t, err)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()
	records, err := st.History(context.Background(), "digital-root", "s123")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].Attempt, "the failed reference load was not counted")
}
