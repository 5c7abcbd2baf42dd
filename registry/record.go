// Package registry implements the Runtime Meta Registry: a process-wide,
// append-only index of runtime meta records, populated once at program
// init time by generated code and read lock-free thereafter.
package registry

import "unsafe"

// Kind tags which family a Meta record belongs to.
type Kind int

const (
	KindFundamental Kind = iota
	KindPointer
	KindReference
	KindPointerToDataMember
	KindPointerToMethod
	KindArray
	KindFunction
	KindMethod
	KindField
	KindRecord
	KindEnum
)

// Invoker shapes, exactly as spec.md §4.5/§6 specify them.
type (
	FreeFunctionInvoker func(args []unsafe.Pointer, ret unsafe.Pointer)
	MethodInvoker       func(self unsafe.Pointer, args []unsafe.Pointer, ret unsafe.Pointer)
	ConstructorThunk    func(args []unsafe.Pointer) unsafe.Pointer
	DestructorThunk     func(ptr unsafe.Pointer)
	FieldGetter         func(obj unsafe.Pointer) unsafe.Pointer
	FieldSetter         func(obj unsafe.Pointer, value unsafe.Pointer) // nil for const fields
)

// Meta is the common shape every registered record satisfies: a stable
// name/hash identity, looked up by either key.
type Meta interface {
	Name() string
	Hash() uint64
}

// FundamentalMeta describes a builtin type (int, double, ...).
type FundamentalMeta struct {
	NameV string
	HashV uint64
	Size  int64
	Align int64
}

func (m *FundamentalMeta) Name() string { return m.NameV }
func (m *FundamentalMeta) Hash() uint64 { return m.HashV }

// PointerMeta describes a pointer-to-object or pointer-to-function type.
type PointerMeta struct {
	NameV       string
	HashV       uint64
	PointeeHash uint64
}

func (m *PointerMeta) Name() string { return m.NameV }
func (m *PointerMeta) Hash() uint64 { return m.HashV }

// ReferenceMeta describes an lvalue/rvalue reference type.
type ReferenceMeta struct {
	NameV        string
	HashV        uint64
	ReferredHash uint64
	RValue       bool
}

func (m *ReferenceMeta) Name() string { return m.NameV }
func (m *ReferenceMeta) Hash() uint64 { return m.HashV }

// MemberPointerMeta describes a pointer-to-data-member or
// pointer-to-member-function type.
type MemberPointerMeta struct {
	NameV       string
	HashV       uint64
	OwnerHash   uint64
	PointeeHash uint64
}

func (m *MemberPointerMeta) Name() string { return m.NameV }
func (m *MemberPointerMeta) Hash() uint64 { return m.HashV }

// ArrayMeta describes a fixed- or unbounded-extent array type.
type ArrayMeta struct {
	NameV       string
	HashV       uint64
	ElementHash uint64
	Extent      int64
}

func (m *ArrayMeta) Name() string { return m.NameV }
func (m *ArrayMeta) Hash() uint64 { return m.HashV }

// FunctionMeta describes a free function's callable shape and invoker.
// ReturnSample is a zero value of the invoker's return Go type (nil for
// void); the runtime package uses its reflect.Type to allocate correctly
// sized storage for Invoke's ret pointer without needing a full type
// descriptor walk at call time.
type FunctionMeta struct {
	NameV        string
	HashV        uint64
	ReturnHash   uint64
	ParamHash    []uint64
	ReturnSample any
	Invoke       FreeFunctionInvoker
}

func (m *FunctionMeta) Name() string { return m.NameV }
func (m *FunctionMeta) Hash() uint64 { return m.HashV }

// MethodMeta describes a member function, constructor, destructor, or
// conversion operator; exactly one of Invoke/Construct/Destruct is set.
type MethodMeta struct {
	NameV        string
	HashV        uint64
	OwnerHash    uint64
	ReturnHash   uint64
	ParamHash    []uint64
	IsStatic     bool
	IsConst      bool
	ReturnSample any
	Invoke       MethodInvoker
	Construct    ConstructorThunk
	Destruct     DestructorThunk
}

func (m *MethodMeta) Name() string { return m.NameV }
func (m *MethodMeta) Hash() uint64 { return m.HashV }

// FieldMeta describes a record's data member, with a nil Setter for const
// fields. ValueSample is a zero value of the field's Go type, used by the
// runtime package to box the unsafe.Pointer Get returns back into an any.
type FieldMeta struct {
	NameV       string
	HashV       uint64
	OwnerHash   uint64
	TypeHash    uint64
	Offset      int64
	ValueSample any
	Get         FieldGetter
	Set         FieldSetter
}

func (m *FieldMeta) Name() string { return m.NameV }
func (m *FieldMeta) Hash() uint64 { return m.HashV }

// RecordMeta describes a class/struct/union: its field, method, and
// constructor/destructor hash lists, resolved against the registry's
// shared hash map by the runtime package. PointerSample is a nil pointer
// of the record's Go type (e.g. (*Point)(nil)), used by runtime.New to box
// a constructor thunk's unsafe.Pointer result back into an any.
type RecordMeta struct {
	NameV         string
	HashV         uint64
	Size          int64
	Align         int64
	BaseHashes    []uint64
	FieldHashes   []uint64
	MethodHashes  []uint64
	StaticHashes  []uint64
	CtorHashes    []uint64
	DtorHash      uint64
	PointerSample any
}

func (m *RecordMeta) Name() string { return m.NameV }
func (m *RecordMeta) Hash() uint64 { return m.HashV }

// EnumMeta describes an enum type and its named values.
type EnumMeta struct {
	NameV          string
	HashV          uint64
	UnderlyingHash uint64
	Scoped         bool
	Enumerators    []EnumValue
}

// EnumValue is one named enumerator, carrying both interpretations so
// runtime code can format it signed or unsigned as the underlying type
// requires.
type EnumValue struct {
	Name     string
	Signed   int64
	Unsigned uint64
}

func (m *EnumMeta) Name() string { return m.NameV }
func (m *EnumMeta) Hash() uint64 { return m.HashV }
