// Package namespace describes the callable surface of a loaded program.
//
// A Namespace is an explicit descriptor: a set of top-level functions with
// their positional arity, and a set of classes with their methods and
// arities. The structural comparator works only from these descriptors.
// Descriptors can be declared by hand with Define and DefineClass, or
// derived from Go values with DefineFunc and DefineType.
package namespace

import (
	"fmt"
	"slices"

	"github.com/roach88/autograde/internal/capture"
)

// Function is a top-level callable.
type Function struct {
	Name  string
	Arity int
	Call  capture.Func
}

// Class describes a class by its methods and their arities.
type Class struct {
	Name    string
	Methods map[string]int
}

// MethodNames returns the sorted method names.
func (c Class) MethodNames() []string {
	return sortedKeys(c.Methods)
}

// Namespace is the loaded surface of one program. It is built once and then
// shared read-only by every test that uses it.
type Namespace struct {
	Name      string
	functions map[string]Function
	classes   map[string]Class
}

// New creates an empty namespace.
func New(name string) *Namespace {
	return &Namespace{
		Name:      name,
		functions: make(map[string]Function),
		classes:   make(map[string]Class),
	}
}

// Define registers a function with an explicit arity.
func (n *Namespace) Define(name string, arity int, fn capture.Func) *Namespace {
	n.functions[name] = Function{Name: name, Arity: arity, Call: fn}
	return n
}

// DefineFunc registers a Go function, deriving its arity and calling
// convention by reflection. It panics if fn is not a function with a
// supported signature; namespaces are assembled at program load time.
func (n *Namespace) DefineFunc(name string, fn any) *Namespace {
	call, arity, err := Wrap(fn)
	if err != nil {
		panic(fmt.Sprintf("namespace %s: define %s: %v", n.Name, name, err))
	}
	return n.Define(name, arity, call)
}

// DefineClass registers a class descriptor.
func (n *Namespace) DefineClass(name string, methods map[string]int) *Namespace {
	m := make(map[string]int, len(methods))
	for k, v := range methods {
		m[k] = v
	}
	n.classes[name] = Class{Name: name, Methods: m}
	return n
}

// DefineType registers a class derived from the method set of sample's type.
// Pass a typed nil pointer to include pointer-receiver methods. Method
// arities exclude the receiver.
func (n *Namespace) DefineType(name string, sample any) *Namespace {
	return n.DefineClass(name, MethodArities(sample))
}

// Function looks up a top-level function.
func (n *Namespace) Function(name string) (Function, bool) {
	f, ok := n.functions[name]
	return f, ok
}

// FunctionNames returns the sorted top-level function names.
func (n *Namespace) FunctionNames() []string {
	return sortedKeys(n.functions)
}

// Class looks up a class.
func (n *Namespace) Class(name string) (Class, bool) {
	c, ok := n.classes[name]
	return c, ok
}

// ClassNames returns the sorted class names.
func (n *Namespace) ClassNames() []string {
	return sortedKeys(n.classes)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
