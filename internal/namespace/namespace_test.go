package namespace

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/autograde/internal/capture"
)

type tile struct{ a, b int }

func (t tile) Left() int           { return t.a }
func (t tile) Right() int          { return t.b }
func (t *tile) Flip()              { t.a, t.b = t.b, t.a }
func (t tile) Scale(k int, _ bool) {}

func TestNamespace_DefineAndLookup(t *testing.T) {
	ns := New("sub").
		Define("b", 2, nil).
		Define("a", 1, nil).
		DefineClass("Z", map[string]int{"m": 0}).
		DefineClass("Y", nil)

	assert.Equal(t, []string{"a", "b"}, ns.FunctionNames())
	assert.Equal(t, []string{"Y", "Z"}, ns.ClassNames())

	f, ok := ns.Function("b")
	require.True(t, ok)
	assert.Equal(t, 2, f.Arity)

	_, ok = ns.Function("missing")
	assert.False(t, ok)

	c, ok := ns.Class("Z")
	require.True(t, ok)
	assert.Equal(t, []string{"m"}, c.MethodNames())
}

func TestDefineType_MethodArities(t *testing.T) {
	ns := New("dom").DefineType("Tile", (*tile)(nil))
	c, ok := ns.Class("Tile")
	require.True(t, ok)
	assert.Equal(t, map[string]int{"Left": 0, "Right": 0, "Flip": 0, "Scale": 2}, c.Methods)

	// Value receivers only.
	assert.NotContains(t, MethodArities(tile{}), "Flip")
}

func TestWrap_Arity(t *testing.T) {
	_, arity, err := Wrap(func(n int) int { return n })
	require.NoError(t, err)
	assert.Equal(t, 1, arity)

	_, arity, err = Wrap(func(env *capture.Env, a, b string) {})
	require.NoError(t, err)
	assert.Equal(t, 2, arity)
}

func TestWrap_Rejects(t *testing.T) {
	_, _, err := Wrap(42)
	assert.Error(t, err)

	_, _, err = Wrap(func(xs ...int) {})
	assert.Error(t, err)

	_, _, err = Wrap(func() (int, int) { return 0, 0 })
	assert.Error(t, err)
}

func TestWrap_CallConverts(t *testing.T) {
	sum := func(xs []int, scale float64) int {
		total := 0
		for _, x := range xs {
			total += x
		}
		return int(float64(total) * scale)
	}
	call, _, err := Wrap(sum)
	require.NoError(t, err)

	out := capture.Call(call, []any{[]any{1, 2, 3}, 2})
	require.NoError(t, out.Err)
	assert.Equal(t, 12, out.Value)
}

func TestWrap_CallArityError(t *testing.T) {
	call, _, err := Wrap(func(n int) int { return n })
	require.NoError(t, err)

	out := capture.Call(call, []any{1, 2})
	var arityErr *ArityError
	require.ErrorAs(t, out.Err, &arityErr)
	assert.Equal(t, 1, arityErr.Want)
	assert.Equal(t, 2, arityErr.Got)
}

func TestWrap_ErrorResult(t *testing.T) {
	boom := errors.New("boom")
	call, _, err := Wrap(func(n int) (int, error) { return 0, boom })
	require.NoError(t, err)
	assert.ErrorIs(t, capture.Call(call, []any{1}).Err, boom)

	call, _, err = Wrap(func() error { return nil })
	require.NoError(t, err)
	out := capture.Call(call, nil)
	assert.NoError(t, out.Err)
	assert.Nil(t, out.Value)
}

func TestWrap_EnvOutput(t *testing.T) {
	call, _, err := Wrap(func(env *capture.Env, name string) {
		env.Println("hi", name)
	})
	require.NoError(t, err)
	assert.Equal(t, "hi bob\n", capture.Call(call, []any{"bob"}).Output)
}

func TestConvert(t *testing.T) {
	intType := reflect.TypeOf(0)

	v, err := Convert(int64(7), intType)
	require.NoError(t, err)
	assert.Equal(t, 7, v.Interface())

	v, err = Convert(3.0, intType)
	require.NoError(t, err)
	assert.Equal(t, 3, v.Interface())

	_, err = Convert(3.5, intType)
	assert.Error(t, err)

	_, err = Convert("7", intType)
	assert.Error(t, err)

	v, err = Convert(nil, intType)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Interface())

	v, err = Convert(map[string]any{"a": 1}, reflect.TypeOf(map[string]int{}))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1}, v.Interface())
}
