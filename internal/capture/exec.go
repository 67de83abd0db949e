package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/google/shlex"
)

// ExecScript runs an external command as a script. Each run starts a new
// process, so no state survives between runs.
type ExecScript struct {
	Command []string
	Dir     string
}

// NewExecScript parses a shell-style command line.
func NewExecScript(cmdline string) (*ExecScript, error) {
	argv, err := shlex.Split(cmdline)
	if err != nil {
		return nil, fmt.Errorf("parse command %q: %w", cmdline, err)
	}
	if len(argv) == 0 {
		return nil, errors.New("empty command")
	}
	return &ExecScript{Command: argv}, nil
}

// Run implements Script. A non-zero exit status is a fault carrying the
// command's stderr.
func (s *ExecScript) Run(ctx context.Context, env *Env) error {
	cmd := exec.CommandContext(ctx, s.Command[0], s.Command[1:]...)
	cmd.Dir = s.Dir
	cmd.Stdin = env.Stdin
	cmd.Stdout = env.Stdout

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w\n%s", s, err, msg)
		}
		return fmt.Errorf("%s: %w", s, err)
	}
	return nil
}

func (s *ExecScript) String() string {
	return strings.Join(s.Command, " ")
}
