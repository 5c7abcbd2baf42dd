// Package runtime is the small runtime library spec.md §1 names: it
// consumes registry entries to support dynamic invocation, field
// read/write, and construction/destruction, grounded on the original's
// runtime/{Class,Function,Instance}.cpp trio, which expose this exact
// Invoke/Get-Set/New-Delete surface over the same registry.
package runtime

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/lux-cxx/godref/registry"
)

// Runtime binds a registry.Registry to the reflect-based marshaling this
// package performs around its unsafe.Pointer invoker shapes.
type Runtime struct {
	reg *registry.Registry
}

// New wraps reg for dynamic use. reg should already be sealed.
func New(reg *registry.Registry) *Runtime {
	return &Runtime{reg: reg}
}

// box allocates addressable storage for v and returns both its
// unsafe.Pointer and the reflect.Value backing it, so the caller can read
// back any mutation an invoker makes through the pointer.
func box(v any) (unsafe.Pointer, reflect.Value) {
	rv := reflect.New(reflect.TypeOf(v)).Elem()
	rv.Set(reflect.ValueOf(v))
	return unsafe.Pointer(rv.UnsafeAddr()), rv
}

func boxArgs(args []any) ([]unsafe.Pointer, []reflect.Value) {
	ptrs := make([]unsafe.Pointer, len(args))
	backing := make([]reflect.Value, len(args))
	for i, a := range args {
		p, rv := box(a)
		ptrs[i] = p
		backing[i] = rv
	}
	return ptrs, backing
}

// newReturnStorage allocates zeroed storage matching sample's type (nil
// sample means a void return), returning both the pointer an invoker
// writes through and the reflect.Value used to read the result back.
func newReturnStorage(sample any) (unsafe.Pointer, reflect.Value) {
	if sample == nil {
		return nil, reflect.Value{}
	}
	rv := reflect.New(reflect.TypeOf(sample)).Elem()
	return unsafe.Pointer(rv.UnsafeAddr()), rv
}

// Invoke resolves name to a Function record and calls it, marshaling args
// into the []unsafe.Pointer the invoker expects and unmarshaling its return
// value. A Method record is rejected with an error; methods are called
// through InvokeMethod.
func (rt *Runtime) Invoke(name string, args []any) (any, error) {
	kind, m, ok := rt.reg.FindByName(name)
	if !ok {
		return nil, fmt.Errorf("runtime: no function registered as %q", name)
	}

	argPtrs, _ := boxArgs(args)

	switch kind {
	case registry.KindFunction:
		fn := m.(*registry.FunctionMeta)
		if fn.Invoke == nil {
			return nil, fmt.Errorf("runtime: %q has no invoker", name)
		}
		retPtr, retVal := newReturnStorage(fn.ReturnSample)
		fn.Invoke(argPtrs, retPtr)
		if fn.ReturnSample == nil {
			return nil, nil
		}
		return retVal.Interface(), nil
	case registry.KindMethod:
		return nil, fmt.Errorf("runtime: %q is a method, call InvokeMethod with a receiver", name)
	default:
		return nil, fmt.Errorf("runtime: %q is not invocable (kind %d)", name, kind)
	}
}

// InvokeMethod resolves name to a Method record and calls it bound to
// self.
func (rt *Runtime) InvokeMethod(self any, name string, args []any) (any, error) {
	_, m, ok := rt.reg.FindByName(name)
	if !ok {
		return nil, fmt.Errorf("runtime: no method registered as %q", name)
	}
	method, ok := m.(*registry.MethodMeta)
	if !ok || method.Invoke == nil {
		return nil, fmt.Errorf("runtime: %q has no method invoker", name)
	}

	selfPtr, _ := box(self)
	argPtrs, _ := boxArgs(args)
	retPtr, retVal := newReturnStorage(method.ReturnSample)
	method.Invoke(selfPtr, argPtrs, retPtr)
	if method.ReturnSample == nil {
		return nil, nil
	}
	return retVal.Interface(), nil
}

// Get resolves fieldName on obj's record and reads it through the field's
// getter thunk — mirroring schema.FieldRegistry.Bind/GetBinds's
// "resolve struct field by address, look up a precompiled setter" shape,
// generalized here from SQL column binding to arbitrary reflected-field
// access.
func (rt *Runtime) Get(obj any, fieldName string) (any, error) {
	field, err := rt.resolveField(fieldName)
	if err != nil {
		return nil, err
	}
	if field.Get == nil {
		return nil, fmt.Errorf("runtime: field %q has no getter", fieldName)
	}

	var objPtr unsafe.Pointer
	if rv := reflect.ValueOf(obj); rv.Kind() == reflect.Ptr {
		objPtr = unsafe.Pointer(rv.Pointer())
	} else {
		objPtr, _ = box(obj)
	}
	valPtr := field.Get(objPtr)
	if field.ValueSample == nil || valPtr == nil {
		return nil, nil
	}
	rv := reflect.NewAt(reflect.TypeOf(field.ValueSample), valPtr).Elem()
	return rv.Interface(), nil
}

// Set resolves fieldName on obj's record and writes value through the
// field's setter thunk. Returns an error for a const field (nil Setter).
func (rt *Runtime) Set(obj any, fieldName string, value any) error {
	field, err := rt.resolveField(fieldName)
	if err != nil {
		return err
	}
	if field.Set == nil {
		return fmt.Errorf("runtime: field %q is const", fieldName)
	}

	var objPtr unsafe.Pointer
	if rv := reflect.ValueOf(obj); rv.Kind() == reflect.Ptr {
		objPtr = unsafe.Pointer(rv.Pointer())
	} else {
		objPtr, _ = box(obj)
	}
	valPtr, _ := box(value)
	field.Set(objPtr, valPtr)
	return nil
}

func (rt *Runtime) resolveField(fieldName string) (*registry.FieldMeta, error) {
	kind, m, ok := rt.reg.FindByName(fieldName)
	if !ok {
		return nil, fmt.Errorf("runtime: no field registered as %q", fieldName)
	}
	field, ok := m.(*registry.FieldMeta)
	if !ok || kind != registry.KindField {
		return nil, fmt.Errorf("runtime: %q is not a field", fieldName)
	}
	return field, nil
}

// New resolves typeName to a Record and calls its (first) constructor
// thunk, boxing the result into an any via the record's PointerSample.
func (rt *Runtime) New(typeName string, args []any) (any, error) {
	kind, m, ok := rt.reg.FindByName(typeName)
	if !ok || kind != registry.KindRecord {
		return nil, fmt.Errorf("runtime: %q is not a registered record", typeName)
	}
	record := m.(*registry.RecordMeta)
	if len(record.CtorHashes) == 0 {
		return nil, fmt.Errorf("runtime: %q has no registered constructor", typeName)
	}

	_, ctorMeta, ok := rt.reg.Find(record.CtorHashes[0])
	if !ok {
		return nil, fmt.Errorf("runtime: constructor for %q not found", typeName)
	}
	ctor, ok := ctorMeta.(*registry.MethodMeta)
	if !ok || ctor.Construct == nil {
		return nil, fmt.Errorf("runtime: %q's constructor has no thunk", typeName)
	}

	argPtrs, _ := boxArgs(args)
	raw := ctor.Construct(argPtrs)
	if record.PointerSample == nil {
		return raw, nil
	}
	return reflect.NewAt(reflect.TypeOf(record.PointerSample).Elem(), raw).Interface(), nil
}

// Delete resolves typeName to a Record and calls its destructor thunk on
// ptr.
func (rt *Runtime) Delete(typeName string, ptr any) error {
	kind, m, ok := rt.reg.FindByName(typeName)
	if !ok || kind != registry.KindRecord {
		return fmt.Errorf("runtime: %q is not a registered record", typeName)
	}
	record := m.(*registry.RecordMeta)
	if record.DtorHash == 0 {
		return fmt.Errorf("runtime: %q has no registered destructor", typeName)
	}

	_, dtorMeta, ok := rt.reg.Find(record.DtorHash)
	if !ok {
		return fmt.Errorf("runtime: destructor for %q not found", typeName)
	}
	dtor, ok := dtorMeta.(*registry.MethodMeta)
	if !ok || dtor.Destruct == nil {
		return fmt.Errorf("runtime: %q's destructor has no thunk", typeName)
	}

	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Ptr {
		return fmt.Errorf("runtime: Delete requires a pointer, got %T", ptr)
	}
	dtor.Destruct(unsafe.Pointer(rv.Pointer()))
	return nil
}
