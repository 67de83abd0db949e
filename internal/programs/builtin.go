package programs

import (
	"errors"

	"github.com/roach88/autograde/internal/capture"
	"github.com/roach88/autograde/internal/namespace"
)

// Builtin returns a registry holding the bundled example exercises. Names
// prefixed with ta_ are reference solutions; the numbered variants are
// sample submissions, some of them wrong on purpose.
func Builtin() *Registry {
	r := NewRegistry()

	r.RegisterNamespace("ta_digital_root", func() (*namespace.Namespace, error) {
		return namespace.New("ta_digital_root").
			DefineFunc("digital_root", digitalRoot), nil
	})
	r.RegisterNamespace("digital_root1", func() (*namespace.Namespace, error) {
		return namespace.New("digital_root1").
			DefineFunc("digital_root", digitalRootLoop).
			DefineFunc("digitsum", digitSum), nil
	})
	r.RegisterNamespace("digital_root2", func() (*namespace.Namespace, error) {
		return namespace.New("digital_root2").
			DefineFunc("digital_root", digitalRootHardcoded).
			DefineFunc("digitsum", digitSum), nil
	})
	r.RegisterNamespace("digital_root3", func() (*namespace.Namespace, error) {
		return namespace.New("digital_root3").
			DefineFunc("digitalRoot", digitalRoot), nil
	})

	r.RegisterNamespace("ta_hailstone", func() (*namespace.Namespace, error) {
		return namespace.New("ta_hailstone").DefineFunc("hailstone", hailstone), nil
	})
	r.RegisterNamespace("hailstone2", func() (*namespace.Namespace, error) {
		return namespace.New("hailstone2").DefineFunc("hailstone", hailstoneOffByOne), nil
	})
	r.RegisterNamespace("hailstone3", func() (*namespace.Namespace, error) {
		return namespace.New("hailstone3").DefineFunc("hailstone", hailstoneSpaced), nil
	})

	r.RegisterScript("ta_two_largest", capture.ScriptFunc(twoLargest))
	r.RegisterScript("two_largest2", capture.ScriptFunc(twoLargestZeroSeed))
	r.RegisterScript("two_largest3", capture.ScriptFunc(twoLargestPadded))

	r.RegisterNamespace("client", func() (*namespace.Namespace, error) {
		return dominoClient("client", "Domino", (*domino)(nil), newDomino), nil
	})
	r.RegisterNamespace("client2", func() (*namespace.Namespace, error) {
		return dominoClient("client2", "Domino", (*swappedDomino)(nil), newSwappedDomino), nil
	})
	r.RegisterNamespace("client3", func() (*namespace.Namespace, error) {
		return dominoClient("client3", "Domino", (*misspelledDomino)(nil), newMisspelledDomino), nil
	})
	r.RegisterNamespace("client4", func() (*namespace.Namespace, error) {
		return dominoClient("client4", "Dommino", (*domino)(nil), newDomino), nil
	})

	r.RegisterNamespace("broken_import", func() (*namespace.Namespace, error) {
		return nil, errors.New("SyntaxError: invalid syntax (broken_import.py, line 3)")
	})

	return r
}
