// Package capture invokes graded code under controlled I/O.
//
// Graded code never touches process-wide streams. Every invocation receives
// an Env carrying its own stdin reader and stdout sink, and every invocation
// produces an Outcome that either holds the captured results or the fault
// that prevented them.
package capture

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoInput is returned by Input and ReadLine when stdin is exhausted.
var ErrNoInput = errors.New("EOF when reading a line")

// Env is the I/O context handed to graded code.
type Env struct {
	Stdin  *bufio.Reader
	Stdout io.Writer
}

// NewEnv builds an Env reading from stdin and writing to stdout.
// A nil stdin behaves as an empty stream.
func NewEnv(stdin io.Reader, stdout io.Writer) *Env {
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	if stdout == nil {
		stdout = io.Discard
	}
	return &Env{Stdin: bufio.NewReader(stdin), Stdout: stdout}
}

// Print writes the operands separated by spaces, without a newline.
func (e *Env) Print(a ...any) {
	fmt.Fprint(e.Stdout, joinOperands(a))
}

// Println writes the operands separated by spaces, followed by a newline.
func (e *Env) Println(a ...any) {
	fmt.Fprintln(e.Stdout, joinOperands(a))
}

// Printf writes formatted output.
func (e *Env) Printf(format string, a ...any) {
	fmt.Fprintf(e.Stdout, format, a...)
}

// ReadLine reads one line from stdin without its line terminator.
// A final line without a terminator is returned as is; an exhausted stream
// returns ErrNoInput.
func (e *Env) ReadLine() (string, error) {
	line, err := e.Stdin.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Input writes prompt without a newline and reads one line, like an
// interactive console prompt.
func (e *Env) Input(prompt string) (string, error) {
	io.WriteString(e.Stdout, prompt)
	return e.ReadLine()
}

// joinOperands always separates operands with a space, unlike fmt.Sprint
// which only does so between non-string operands.
func joinOperands(a []any) string {
	parts := make([]string, len(a))
	for i, v := range a {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " ")
}

// stdinFor renders input lines as a stdin stream: each line followed by "\n".
func stdinFor(lines []string) *bytes.Buffer {
	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return &buf
}
