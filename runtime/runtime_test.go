package runtime

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/lux-cxx/godref/registry"
)

func add(a, b int) int { return a + b }

func TestInvokeFreeFunctionMatchesDirectCall(t *testing.T) {
	reg := registry.New()

	invoker := func(args []unsafe.Pointer, ret unsafe.Pointer) {
		a := *(*int)(args[0])
		b := *(*int)(args[1])
		*(*int)(ret) = add(a, b)
	}

	require.NoError(t, reg.Register(registry.KindFunction, &registry.FunctionMeta{
		NameV:        "demo::add",
		HashV:        42,
		ReturnSample: int(0),
		Invoke:       invoker,
	}))
	reg.Seal()

	rt := New(reg)
	got, err := rt.Invoke("demo::add", []any{3, 4})
	require.NoError(t, err)
	require.Equal(t, add(3, 4), got)
}

type point struct{ X, Y int }

func TestGetSetField(t *testing.T) {
	reg := registry.New()

	getter := func(obj unsafe.Pointer) unsafe.Pointer {
		p := (*point)(obj)
		return unsafe.Pointer(&p.X)
	}
	setter := func(obj unsafe.Pointer, value unsafe.Pointer) {
		p := (*point)(obj)
		p.X = *(*int)(value)
	}

	require.NoError(t, reg.Register(registry.KindField, &registry.FieldMeta{
		NameV:       "demo::Point::x",
		HashV:       7,
		ValueSample: int(0),
		Get:         getter,
		Set:         setter,
	}))
	reg.Seal()

	rt := New(reg)
	p := &point{X: 10, Y: 20}

	got, err := rt.Get(p, "demo::Point::x")
	require.NoError(t, err)
	require.Equal(t, 10, got)

	err = rt.Set(p, "demo::Point::x", 99)
	require.NoError(t, err)
	require.Equal(t, 99, p.X)
}

func TestNewAndDeleteRecord(t *testing.T) {
	reg := registry.New()

	ctor := func(args []unsafe.Pointer) unsafe.Pointer {
		return unsafe.Pointer(&point{X: *(*int)(args[0]), Y: *(*int)(args[1])})
	}
	destroyed := false
	dtor := func(ptr unsafe.Pointer) { destroyed = true }

	require.NoError(t, reg.Register(registry.KindMethod, &registry.MethodMeta{
		NameV: "demo::Point::Point", HashV: 100, Construct: ctor,
	}))
	require.NoError(t, reg.Register(registry.KindMethod, &registry.MethodMeta{
		NameV: "demo::Point::~Point", HashV: 101, Destruct: dtor,
	}))
	require.NoError(t, reg.Register(registry.KindRecord, &registry.RecordMeta{
		NameV: "demo::Point", HashV: 200,
		CtorHashes:    []uint64{100},
		DtorHash:      101,
		PointerSample: (*point)(nil),
	}))
	reg.Seal()

	rt := New(reg)
	obj, err := rt.New("demo::Point", []any{1, 2})
	require.NoError(t, err)

	p, ok := obj.(*point)
	require.True(t, ok)
	require.Equal(t, 1, p.X)
	require.Equal(t, 2, p.Y)

	require.NoError(t, rt.Delete("demo::Point", p))
	require.True(t, destroyed)
}
