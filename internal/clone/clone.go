// Package clone produces independent deep copies of test arguments so that
// graded code cannot mutate the inputs seen by the reference, or the other
// way around.
package clone

import (
	"fmt"
	"reflect"
)

// Cloner is implemented by values that know how to copy themselves.
// Deep prefers it over reflection. Clone must return a value convertible
// to the receiver's type.
type Cloner interface {
	Clone() any
}

// Deep returns a deep copy of v. Pointers, slices, maps, arrays, interfaces
// and exported struct fields are copied recursively. Functions and channels
// are shared. Cycles through pointers, slices and maps are preserved.
//
// A Cloner that panics or returns an unusable value is reported as an
// error.
func Deep(v any) (out any, err error) {
	if v == nil {
		return nil, nil
	}
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("copy %T: %v", v, r)
		}
	}()
	return deep(reflect.ValueOf(v), make(map[ref]reflect.Value)).Interface(), nil
}

// Args deep-copies every argument.
func Args(args []any) ([]any, error) {
	if args == nil {
		return nil, nil
	}
	out := make([]any, len(args))
	for i, a := range args {
		c, err := Deep(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out[i] = c
	}
	return out, nil
}

// ref identifies a pointer, slice or map already copied. Type and length
// are part of the key: a struct and its first field share an address, and
// so do a slice and its prefixes.
type ref struct {
	ptr uintptr
	typ reflect.Type
	len int
}

func deep(v reflect.Value, seen map[ref]reflect.Value) reflect.Value {
	if c, ok := cloner(v); ok {
		return fromCloner(v.Type(), c.Clone())
	}

	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return v
		}
		key := ref{v.Pointer(), v.Type(), 0}
		if p, ok := seen[key]; ok {
			return p
		}
		p := reflect.New(v.Type().Elem())
		seen[key] = p
		p.Elem().Set(deep(v.Elem(), seen))
		return p

	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		out := reflect.New(v.Type()).Elem()
		out.Set(deep(v.Elem(), seen))
		return out

	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		if v.Len() == 0 {
			return out
		}
		key := ref{v.Pointer(), v.Type(), v.Len()}
		if s, ok := seen[key]; ok {
			return s
		}
		seen[key] = out
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(deep(v.Index(i), seen))
		}
		return out

	case reflect.Array:
		out := reflect.New(v.Type()).Elem()
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(deep(v.Index(i), seen))
		}
		return out

	case reflect.Map:
		if v.IsNil() {
			return v
		}
		key := ref{v.Pointer(), v.Type(), 0}
		if m, ok := seen[key]; ok {
			return m
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		seen[key] = out
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(deep(iter.Key(), seen), deep(iter.Value(), seen))
		}
		return out

	case reflect.Struct:
		out := reflect.New(v.Type()).Elem()
		out.Set(v)
		for i := 0; i < v.NumField(); i++ {
			if !out.Field(i).CanSet() {
				continue
			}
			out.Field(i).Set(deep(v.Field(i), seen))
		}
		return out

	default:
		return v
	}
}

// fromCloner checks a Clone result against the type it replaces.
func fromCloner(t reflect.Type, got any) reflect.Value {
	if got == nil {
		if isNilable(reflect.Zero(t)) {
			return reflect.Zero(t)
		}
		panic(fmt.Sprintf("%s.Clone returned nil", t))
	}
	cv := reflect.ValueOf(got)
	if !cv.Type().ConvertibleTo(t) {
		panic(fmt.Sprintf("%s.Clone returned %s", t, cv.Type()))
	}
	return cv.Convert(t)
}

func cloner(v reflect.Value) (Cloner, bool) {
	if !v.CanInterface() || isNilable(v) && v.IsNil() {
		return nil, false
	}
	c, ok := v.Interface().(Cloner)
	return c, ok
}

func isNilable(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return true
	}
	return false
}
