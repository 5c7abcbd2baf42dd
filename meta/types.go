package meta

// TypeKind tags which variant a Type holds, mirroring spec.md §3's Type
// variant list.
type TypeKind int

const (
	TypeUnknown TypeKind = iota
	TypeBuiltin
	TypePointer
	TypeLvalueReference
	TypeRvalueReference
	TypeArray
	TypeRecord
	TypeEnum
	TypeFunction
	TypeUnsupported
)

func (k TypeKind) String() string {
	switch k {
	case TypeBuiltin:
		return "BuiltinType"
	case TypePointer:
		return "PointerType"
	case TypeLvalueReference:
		return "LValueReferenceType"
	case TypeRvalueReference:
		return "RValueReferenceType"
	case TypeArray:
		return "ArrayType"
	case TypeRecord:
		return "RecordType"
	case TypeEnum:
		return "EnumType"
	case TypeFunction:
		return "FunctionType"
	case TypeUnsupported:
		return "UnsupportedType"
	default:
		return "UnknownType"
	}
}

// PointerKind further classifies a TypePointer, per spec.md §3.
type PointerKind int

const (
	PointerToObject PointerKind = iota
	PointerToFunction
	PointerToDataMember
	PointerToMemberFunction
)

func (k PointerKind) jsonKind() string {
	switch k {
	case PointerToFunction:
		return "FuncPointerType"
	case PointerToDataMember:
		return "MemberDataPointerType"
	case PointerToMemberFunction:
		return "MemberFuncPointerType"
	default:
		return "ObjectPointerType"
	}
}

// EnumVariant distinguishes scoped ("enum class") from unscoped enums for
// the serialized Kind string, per spec.md §6's schema.
type EnumVariant int

const (
	EnumUnscoped EnumVariant = iota
	EnumScoped
)

// Type is the single tagged-variant representation for every type family
// spec.md §3 names.
type Type struct {
	Kind TypeKind

	// Common capability set, present on every type.
	ID       string // derived from Spelling
	Hash     uint64 // FNV1a(ID)
	Spelling string // canonical spelling
	Size     int64  // 0 if unknown
	Align    int64  // 0 if unknown
	IsConst  bool
	IsVolatile bool

	// Builtin
	// (Spelling alone is sufficient.)

	// Pointer
	PointerKind PointerKind
	Pointee     *Type
	MemberOwner *Type // owning record, for ToDataMember / ToMemberFunction

	// LvalueReference / RvalueReference
	Referred *Type

	// Array
	Element *Type
	Extent  int64 // -1 if unknown/unbounded

	// Record / Enum
	Declaration *Decl

	// Enum
	EnumVariant    EnumVariant
	UnderlyingType *Type

	// Function
	Return      *Type
	Parameters  []*Type
	IsVariadic  bool
	IsNoexcept  bool
}

// newType constructs a Type with its id/hash computed from spelling;
// callers fill in the kind-specific fields.
func newType(kind TypeKind, spelling string) *Type {
	return &Type{
		Kind:     kind,
		ID:       spelling,
		Hash:     FNV1a(spelling),
		Spelling: spelling,
	}
}
