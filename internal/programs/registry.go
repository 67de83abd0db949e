// Package programs resolves program identifiers to loaded namespaces and
// scripts. It is the boundary where submitted and reference code enters the
// grader: a failure here aborts the whole run.
package programs

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/autograde/internal/capture"
	"github.com/roach88/autograde/internal/namespace"
)

// ExecPrefix marks a script identifier as an external command line.
const ExecPrefix = "exec:"

// ErrUnknownProgram is wrapped by LoadError when an identifier is not
// registered.
var ErrUnknownProgram = errors.New("unknown program")

// LoadError reports a program that could not be loaded.
type LoadError struct {
	ID  string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.ID, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Loader builds a namespace. Registry.Namespace runs it on every call, so
// callers resolve a program once and reuse the result.
type Loader func() (*namespace.Namespace, error)

// Kind distinguishes registry entries.
type Kind string

const (
	KindNamespace Kind = "namespace"
	KindScript    Kind = "script"
)

// Entry describes one registered program.
type Entry struct {
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`
}

// Registry maps identifiers to programs.
type Registry struct {
	namespaces map[string]Loader
	scripts    map[string]capture.Script
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		namespaces: make(map[string]Loader),
		scripts:    make(map[string]capture.Script),
	}
}

// RegisterNamespace adds a namespace loader under id.
func (r *Registry) RegisterNamespace(id string, load Loader) {
	r.namespaces[id] = load
}

// RegisterScript adds a script under id.
func (r *Registry) RegisterScript(id string, s capture.Script) {
	r.scripts[id] = s
}

// Namespace loads the namespace registered under id. Loader errors and
// panics are reported as *LoadError.
func (r *Registry) Namespace(id string) (ns *namespace.Namespace, err error) {
	load, ok := r.namespaces[id]
	if !ok {
		return nil, &LoadError{ID: id, Err: ErrUnknownProgram}
	}

	defer func() {
		if p := recover(); p != nil {
			ns, err = nil, &LoadError{ID: id, Err: fmt.Errorf("panic: %v", p)}
		}
	}()

	ns, err = load()
	if err != nil {
		return nil, &LoadError{ID: id, Err: err}
	}
	return ns, nil
}

// Script returns the script registered under id. Identifiers starting
// with ExecPrefix are parsed as command lines instead.
func (r *Registry) Script(id string) (capture.Script, error) {
	if cmdline, ok := strings.CutPrefix(id, ExecPrefix); ok {
		s, err := capture.NewExecScript(cmdline)
		if err != nil {
			return nil, &LoadError{ID: id, Err: err}
		}
		return s, nil
	}
	s, ok := r.scripts[id]
	if !ok {
		return nil, &LoadError{ID: id, Err: ErrUnknownProgram}
	}
	return s, nil
}

// Known reports whether id names a registered program or an exec: command
// line. It does not load anything.
func (r *Registry) Known(id string) bool {
	if strings.HasPrefix(id, ExecPrefix) {
		return true
	}
	_, ns := r.namespaces[id]
	_, sc := r.scripts[id]
	return ns || sc
}

// Entries lists every registered program sorted by identifier.
func (r *Registry) Entries() []Entry {
	entries := make([]Entry, 0, len(r.namespaces)+len(r.scripts))
	for id := range r.namespaces {
		entries = append(entries, Entry{ID: id, Kind: KindNamespace})
	}
	for id := range r.scripts {
		entries = append(entries, Entry{ID: id, Kind: KindScript})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.ID, b.ID)
	})
	return entries
}
