package capture

import (
	"bytes"
	"context"
	"fmt"
	"runtime/debug"
)

// Func is the calling convention for graded functions.
type Func func(env *Env, args []any) (any, error)

// Outcome is the result of one invocation. When Err is set the invocation
// faulted and Value and Output are absent.
type Outcome struct {
	Value  any
	Output string
	Err    error
}

// Faulted reports whether the invocation failed to produce results.
func (o Outcome) Faulted() bool {
	return o.Err != nil
}

// Fault wraps a panic raised by graded code.
type Fault struct {
	Value any
	Stack []byte
}

func (f *Fault) Error() string {
	if err, ok := f.Value.(error); ok {
		return err.Error()
	}
	return fmt.Sprintf("%v", f.Value)
}

// Unwrap exposes panics raised with an error value.
func (f *Fault) Unwrap() error {
	err, _ := f.Value.(error)
	return err
}

// Call invokes fn with args. Stdout is captured into a fresh buffer and stdin
// is empty. Panics and returned errors become the Outcome's Err.
func Call(fn Func, args []any) Outcome {
	return CallWithInput(fn, args, nil)
}

// CallWithInput is Call with stdin preloaded from input lines.
func CallWithInput(fn Func, args []any, lines []string) (out Outcome) {
	var stdout bytes.Buffer
	env := NewEnv(stdinFor(lines), &stdout)

	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Err: &Fault{Value: r, Stack: debug.Stack()}}
		}
	}()

	value, err := fn(env, args)
	if err != nil {
		return Outcome{Err: err}
	}
	return Outcome{Value: value, Output: stdout.String()}
}

// Script is a program run from the top with fresh state on every execution.
type Script interface {
	Run(ctx context.Context, env *Env) error
}

// ScriptFunc adapts an in-process function to Script. The function is called
// anew for every run, so state must live inside it.
type ScriptFunc func(env *Env) error

// Run implements Script.
func (f ScriptFunc) Run(_ context.Context, env *Env) error {
	return f(env)
}

// RunScript executes s with stdin set to lines, each followed by "\n", and
// returns the captured stdout. Any fault yields an Outcome without output.
func RunScript(ctx context.Context, s Script, lines []string) (out Outcome) {
	var stdout bytes.Buffer
	env := NewEnv(stdinFor(lines), &stdout)

	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Err: &Fault{Value: r, Stack: debug.Stack()}}
		}
	}()

	if err := s.Run(ctx, env); err != nil {
		return Outcome{Err: err}
	}
	return Outcome{Output: stdout.String()}
}
