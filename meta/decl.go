package meta

// DeclKind tags which variant a Decl holds. Every Decl carries the full
// struct; only the fields relevant to its Kind are populated. This mirrors
// the teacher's one-struct-per-node-kind shape (ast.Table, ast.Column, …)
// collapsed into a single tagged struct per spec.md §9's arena/tagged-
// variant redesign note.
type DeclKind int

const (
	DeclUnknown DeclKind = iota
	DeclEnum
	DeclRecord
	DeclField
	DeclFunction
	DeclMethod
	DeclConstructor
	DeclDestructor
	DeclConversionOperator
	DeclParameter
	DeclVariable
)

func (k DeclKind) String() string {
	switch k {
	case DeclEnum:
		return "EnumDecl"
	case DeclRecord:
		return "RecordDecl"
	case DeclField:
		return "FieldDecl"
	case DeclFunction:
		return "FunctionDecl"
	case DeclMethod:
		return "MethodDecl"
	case DeclConstructor:
		return "ConstructorDecl"
	case DeclDestructor:
		return "DestructorDecl"
	case DeclConversionOperator:
		return "ConversionDecl"
	case DeclParameter:
		return "ParmVarDecl"
	case DeclVariable:
		return "VarDecl"
	default:
		return "UnknownDecl"
	}
}

// RecordKind distinguishes the three record flavors a Decl of Kind
// DeclRecord can be.
type RecordKind int

const (
	RecordClass RecordKind = iota
	RecordStruct
	RecordUnion
)

// Visibility mirrors C++ member access.
type Visibility int

const (
	VisibilityPublic Visibility = iota
	VisibilityProtected
	VisibilityPrivate
)

// Enumerator is one named value of an EnumDecl, carrying both signed and
// unsigned interpretations as spec.md §3 requires.
type Enumerator struct {
	Name     string
	Signed   int64
	Unsigned uint64
}

// Decl is the single tagged-variant representation for every declaration
// family spec.md §3 names. Every Decl carries the common capability set
// (ID, QualifiedName, OriginInMainFile, Annotations) plus the fields
// relevant to its Kind.
type Decl struct {
	Kind DeclKind

	// Common capability set, present on every declaration.
	ID               string // USR-like textual identifier
	Hash             uint64 // FNV1a(ID)
	Name             string
	QualifiedName    string
	MangledName      string
	OriginInMainFile bool
	Annotations      []string

	// Record
	RecordKind    RecordKind
	Size          int64
	Align         int64
	Bases         []*Decl // []*Decl of Kind DeclRecord, with BaseVisibilities parallel slice
	BaseVisibilities []Visibility
	Fields        []*Decl // Kind DeclField
	Constructors  []*Decl // Kind DeclConstructor
	Destructor    *Decl   // Kind DeclDestructor, may be nil
	Methods       []*Decl // Kind DeclMethod
	StaticMethods []*Decl // Kind DeclMethod with IsStatic == true

	// Field
	Index      int
	Offset     int64 // bytes
	Type       *Type
	Visibility Visibility
	Static     bool
	Const      bool

	// Function / Method / Constructor / Destructor / ConversionOperator
	ReturnType *Type
	Parameters []*Decl // Kind DeclParameter
	IsConst    bool
	IsVirtual  bool
	IsStatic   bool

	// Enum
	UnderlyingType *Type
	Scoped         bool
	Enumerators    []Enumerator
}

// computeID derives the stable USR-like identifier: the declaration's
// fully qualified name, disambiguated by kind so e.g. a constructor and its
// owning record never collide.
func computeID(kind DeclKind, qualifiedName string) string {
	return kind.String() + ":" + qualifiedName
}

// NewDecl constructs a Decl with its id/hash already computed from kind and
// qualifiedName; callers fill in the rest of the kind-specific fields.
func NewDecl(kind DeclKind, name, qualifiedName string) *Decl {
	id := computeID(kind, qualifiedName)
	return &Decl{
		Kind:          kind,
		ID:            id,
		Hash:          FNV1a(id),
		Name:          name,
		QualifiedName: qualifiedName,
	}
}
