package namespace

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/roach88/autograde/internal/capture"
)

var (
	envType   = reflect.TypeOf((*capture.Env)(nil))
	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

// ArityError is returned when a function is called with the wrong number of
// positional arguments.
type ArityError struct {
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("takes %d positional arguments but %d were given", e.Want, e.Got)
}

// Wrap adapts a Go function to capture.Func and reports its arity.
//
// Supported signatures:
//
//	func([*capture.Env,] params...)
//	func([*capture.Env,] params...) T
//	func([*capture.Env,] params...) error
//	func([*capture.Env,] params...) (T, error)
//
// A leading *capture.Env parameter receives the invocation's I/O context
// and does not count toward the arity. Arguments are converted to the
// parameter types: numbers between numeric kinds (floats only when
// integral for integer parameters), and []any or map values element-wise.
func Wrap(fn any) (capture.Func, int, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return nil, 0, fmt.Errorf("%T is not a function", fn)
	}
	t := v.Type()
	if t.IsVariadic() {
		return nil, 0, errors.New("variadic functions are not supported")
	}
	if err := checkResults(t); err != nil {
		return nil, 0, err
	}

	offset := 0
	if t.NumIn() > 0 && t.In(0) == envType {
		offset = 1
	}
	arity := t.NumIn() - offset

	call := func(env *capture.Env, args []any) (any, error) {
		if len(args) != arity {
			return nil, &ArityError{Want: arity, Got: len(args)}
		}
		in := make([]reflect.Value, 0, t.NumIn())
		if offset == 1 {
			in = append(in, reflect.ValueOf(env))
		}
		for i, a := range args {
			av, err := Convert(a, t.In(i+offset))
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i+1, err)
			}
			in = append(in, av)
		}
		return results(t, v.Call(in))
	}
	return call, arity, nil
}

// MethodArities lists the methods of sample's type with their arities,
// excluding the receiver.
func MethodArities(sample any) map[string]int {
	t := reflect.TypeOf(sample)
	methods := make(map[string]int)
	if t == nil {
		return methods
	}
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		methods[m.Name] = m.Type.NumIn() - 1
	}
	return methods
}

// Convert converts a loosely typed argument to t.
func Convert(a any, t reflect.Type) (reflect.Value, error) {
	if a == nil {
		return reflect.Zero(t), nil
	}
	return convertValue(reflect.ValueOf(a), t)
}

func convertValue(v reflect.Value, t reflect.Type) (reflect.Value, error) {
	if v.Type().AssignableTo(t) {
		return v, nil
	}

	switch {
	case v.Kind() == reflect.Interface:
		if v.IsNil() {
			return reflect.Zero(t), nil
		}
		return convertValue(v.Elem(), t)

	case isInteger(t.Kind()) && isFloat(v.Kind()):
		f := v.Float()
		if f != math.Trunc(f) {
			return reflect.Value{}, fmt.Errorf("cannot use %v as %s", f, t)
		}
		return v.Convert(t), nil

	case isNumber(v.Kind()) && isNumber(t.Kind()),
		v.Kind() == reflect.String && t.Kind() == reflect.String,
		v.Kind() == reflect.Bool && t.Kind() == reflect.Bool:
		return v.Convert(t), nil

	case (v.Kind() == reflect.Slice || v.Kind() == reflect.Array) && t.Kind() == reflect.Slice:
		out := reflect.MakeSlice(t, v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			ev, err := convertValue(v.Index(i), t.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			out.Index(i).Set(ev)
		}
		return out, nil

	case v.Kind() == reflect.Map && t.Kind() == reflect.Map:
		out := reflect.MakeMapWithSize(t, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			k, err := convertValue(iter.Key(), t.Key())
			if err != nil {
				return reflect.Value{}, err
			}
			ev, err := convertValue(iter.Value(), t.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out.SetMapIndex(k, ev)
		}
		return out, nil
	}

	return reflect.Value{}, fmt.Errorf("cannot use %s as %s", v.Type(), t)
}

func checkResults(t reflect.Type) error {
	switch t.NumOut() {
	case 0, 1:
		return nil
	case 2:
		if t.Out(1) != errorType {
			return fmt.Errorf("second result must be error, got %s", t.Out(1))
		}
		return nil
	default:
		return fmt.Errorf("too many results (%d)", t.NumOut())
	}
}

func results(t reflect.Type, out []reflect.Value) (any, error) {
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if t.Out(0) == errorType {
			return nil, asError(out[0])
		}
		return out[0].Interface(), nil
	default:
		return out[0].Interface(), asError(out[1])
	}
}

func asError(v reflect.Value) error {
	if v.IsNil() {
		return nil
	}
	return v.Interface().(error)
}

func isInteger(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Uintptr
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func isNumber(k reflect.Kind) bool {
	return isInteger(k) || isFloat(k)
}
