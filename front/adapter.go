// Package front defines the boundary between the parser core and whatever
// C++ AST front end produced it. A real libclang binding is a documented
// extension point, not something this module ships; front/fixture supplies
// a deterministic in-memory stand-in used by every test in the module.
package front

// Diagnostic is one front-end-reported problem, carrying source location
// when the underlying front end can supply it.
type Diagnostic struct {
	File    string
	Line    int
	Message string
}

// CursorKind tags what kind of AST node a Cursor refers to.
type CursorKind int

const (
	CursorUnknown CursorKind = iota
	CursorTranslationUnit
	CursorNamespace
	CursorClassDecl
	CursorStructDecl
	CursorUnionDecl
	CursorFieldDecl
	CursorFunctionDecl
	CursorMethodDecl
	CursorConstructorDecl
	CursorDestructorDecl
	CursorConversionFunction
	CursorParmDecl
	CursorVarDecl
	CursorEnumDecl
	CursorEnumConstantDecl
	CursorAnnotateAttr
	CursorBaseSpecifier
)

// Visibility mirrors C++ member/inheritance access.
type Visibility int

const (
	VisibilityPublic Visibility = iota
	VisibilityProtected
	VisibilityPrivate
)

// TypeKind tags what kind of type a Type facade refers to.
type TypeKind int

const (
	TypeUnknown TypeKind = iota
	TypeBuiltin
	TypePointer
	TypeLValueReference
	TypeRValueReference
	TypeConstantArray
	TypeIncompleteArray
	TypeRecord
	TypeEnum
	TypeFunctionProto
	TypeMemberPointer
	TypeUnexposed
)

// Cursor is a position in the AST, exposing exactly the queries spec.md
// §4.1 lists: discovery navigation (semantic parent, annotation detection,
// main-file origin), and the kind-specific accessors a materializer needs
// (field offset, method flags, parameter index, enum value).
type Cursor interface {
	Kind() CursorKind
	Spelling() string
	QualifiedName() string
	MangledName() string
	SemanticParent() Cursor
	IsFromMainFile() bool
	IsDefinition() bool

	// Annotations returns the "annotate" attribute strings attached
	// directly to this cursor (spec.md §4.1's is-attribute / attribute
	// text query, pre-resolved into plain strings for the parser).
	Annotations() []string

	// Type is the declared type of this cursor (field type, function
	// return type is via ResultType, variable type, enum underlying is
	// via EnumIntegerType).
	Type() Type

	// Enum-specific.
	IsScopedEnum() bool
	EnumIntegerType() Type
	EnumValue() (signed int64, unsigned uint64)

	// Field-specific.
	FieldOffsetBits() int64
	FieldIndex() int

	// Function/method-specific.
	ResultType() Type
	IsStatic() bool
	IsConst() bool
	IsVirtual() bool
	ParamIndex() int

	// Record-specific.
	IsUnion() bool

	// Member/base-specifier visibility (field, method, or
	// CursorBaseSpecifier access).
	Visibility() Visibility

	// File returns the file this cursor was declared in, for
	// diagnostics.
	File() string
	LineNumber() int
}

// Type is the static-type facade spec.md §4.1 requires: pointee/element/
// return/argument navigation plus the qualifier and size/align queries.
type Type interface {
	Kind() TypeKind
	Spelling() string
	SizeOf() int64
	AlignOf() int64
	IsConstQualified() bool
	IsVolatileQualified() bool

	PointeeType() Type
	ElementType() Type
	ArraySize() int64

	// ClassOfMemberPointer returns the owning record type for a
	// pointer-to-data-member / pointer-to-member-function type.
	ClassOfMemberPointer() Type

	ResultType() Type
	ArgTypes() []Type
	IsFunctionTypeVariadic() bool

	// Declaration returns the Cursor that declared this type, for
	// Record/Enum types (nil for Builtin/Unsupported).
	Declaration() Cursor
}

// Adapter opens a translation unit and exposes its root for traversal.
// VisitChildren is the single navigation primitive the discovery pass
// uses; everything else is derived from Cursor/Type queries.
type Adapter interface {
	OpenTranslationUnit(path string, extraArgs []string) error
	RootCursor() Cursor
	VisitChildren(c Cursor, visit func(child Cursor) (recurse bool))
	Diagnostics() []Diagnostic
}
