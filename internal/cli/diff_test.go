package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/autograde/internal/verdict"
)

func runDiffCommand(t *testing.T, format, actual, expected string, extra ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	actualPath := filepath.Join(dir, "actual.txt")
	expectedPath := filepath.Join(dir, "expected.txt")
	writeFile(t, actualPath, actual)
	writeFile(t, expectedPath, expected)

	buf := &bytes.Buffer{}
	cmd := NewDiffCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetArgs(append(extra, actualPath, expectedPath))
	err := cmd.Execute()
	return buf.String(), err
}

func TestDiff_Identical(t *testing.T) {
	out, err := runDiffCommand(t, "text", "a\nb\n", "a\nb\n")
	require.NoError(t, err)
	assert.Equal(t, "Correct!\n", out)
}

func TestDiff_TrailingSpacesIgnored(t *testing.T) {
	out, err := runDiffCommand(t, "text", "a  \n  b\n", "a\nb\n")
	require.NoError(t, err)
	assert.Equal(t, "Correct!\n", out)
}

func TestDiff_FirstDifferingLine(t *testing.T) {
	out, err := runDiffCommand(t, "text", "a\nx\nc\n", "a\nb\nc\n")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeMismatch)
	assert.Contains(t, out, "ERROR IN LINE 2 OF THE OUTPUT.")
}

func TestDiff_IgnoreWhitespace(t *testing.T) {
	_, err := runDiffCommand(t, "text", "6 is  even\n", "6 is even\n")
	require.Error(t, err)

	out, err := runDiffCommand(t, "text", "6 is  even\n", "6 is even\n", "--ignore-whitespace")
	require.NoError(t, err)
	assert.Equal(t, "Correct!\n", out)
}

func TestDiff_JSON(t *testing.T) {
	out, err := runDiffCommand(t, "json", "a", "a\nb\n")
	require.Error(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   DiffResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, verdict.KindLineMismatch, resp.Data.Kind)
	assert.False(t, resp.Data.Passed)
	assert.Contains(t, resp.Data.Message, "ERROR IN LINE 2 OF THE OUTPUT.")
	assert.Contains(t, resp.Data.Message, "missing a final end-of-line")
}

func TestDiff_MissingFile(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewDiffCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"/nonexistent/a.txt", "/nonexistent/b.txt"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "failed to read actual output")
}
