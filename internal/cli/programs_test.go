package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/autograde/internal/capture"
	"github.com/roach88/autograde/internal/config"
	"github.com/roach88/autograde/internal/programs"
)

func TestProgramsText(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewProgramsCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "ta_digital_root")
	assert.Contains(t, out, "ta_two_largest")
}

func TestProgramsJSONUsesInjectedRegistry(t *testing.T) {
	reg := programs.NewRegistry()
	reg.RegisterScript("echo", capture.ScriptFunc(func(env *capture.Env) error { return nil }))

	buf := &bytes.Buffer{}
	cmd := NewProgramsCommand(&RootOptions{Format: "json", Registry: reg})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string           `json:"status"`
		Data   []programs.Entry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, []programs.Entry{{ID: "echo", Kind: programs.KindScript}}, resp.Data)
}

func TestHistoryText(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "grades.db")

	buf := &bytes.Buffer{}
	cmd := NewHistoryCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", dbPath, "--assignment", "hailstone", "--student", "s9"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "No reports found for s9 on hailstone\n", buf.String())

	gradeCmd := NewGradeCommand(&RootOptions{Format: "text"})
	gradeCmd.SetOut(&bytes.Buffer{})
	gradeCmd.SetArgs([]string{example("hailstone.yaml"), "--db", dbPath, "--student", "s9"})
	require.NoError(t, gradeCmd.Execute())

	buf.Reset()
	cmd = NewHistoryCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", dbPath, "--assignment", "hailstone", "--student", "s9"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "s9 on hailstone: 1 attempt(s), best score 20")
	assert.Contains(t, buf.String(), "20 / 20")
}

func TestHistoryRequiresDatabase(t *testing.T) {
	cmd := NewHistoryCommand(&RootOptions{Format: "text", Config: config.Default()})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--assignment", "hailstone", "--student", "s9"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
