package fixture

import (
	"encoding/json"
	"fmt"

	"github.com/lux-cxx/godref/front"
)

// cursorWire/typeWire are the JSON wire shapes a fixture translation unit is
// authored in: friendly field names distinct from the Cursor/Type structs'
// own Go-literal-oriented field names (KindV, SpellingV, ...), the same
// domain/wire split meta/json.go already uses for *meta.Decl/*meta.Type.
type cursorWire struct {
	Kind           string        `json:"kind"`
	Spelling       string        `json:"spelling"`
	QualifiedName  string        `json:"qualified_name"`
	MangledName    string        `json:"mangled_name"`
	FromMainFile   bool          `json:"from_main_file"`
	Definition     bool          `json:"definition"`
	Annotations    []string      `json:"annotations"`
	Type           *typeWire     `json:"type"`
	ScopedEnum     bool          `json:"scoped_enum"`
	EnumUnderlying *typeWire     `json:"enum_underlying"`
	EnumSigned     int64         `json:"enum_signed"`
	EnumUnsigned   uint64        `json:"enum_unsigned"`
	OffsetBits     int64         `json:"offset_bits"`
	Index          int           `json:"index"`
	Result         *typeWire     `json:"result"`
	Static         bool          `json:"static"`
	Const          bool          `json:"const"`
	Virtual        bool          `json:"virtual"`
	Union          bool          `json:"union"`
	Visibility     string        `json:"visibility"`
	File           string        `json:"file"`
	Line           int           `json:"line"`
	Children       []*cursorWire `json:"children"`
}

type typeWire struct {
	Kind        string    `json:"kind"`
	Spelling    string    `json:"spelling"`
	Size        int64     `json:"size"`
	Align       int64     `json:"align"`
	Const       bool      `json:"const"`
	Volatile    bool      `json:"volatile"`
	Pointee     *typeWire `json:"pointee"`
	Element     *typeWire `json:"element"`
	Extent      int64     `json:"extent"`
	MemberOwner *typeWire `json:"member_owner"`
	Result      *typeWire `json:"result"`
	Args        []*typeWire `json:"args"`
	Variadic    bool      `json:"variadic"`
	Declaration *cursorWire `json:"declaration"`
}

var cursorKindByName = map[string]front.CursorKind{
	"TranslationUnit":    front.CursorTranslationUnit,
	"Namespace":          front.CursorNamespace,
	"ClassDecl":          front.CursorClassDecl,
	"StructDecl":         front.CursorStructDecl,
	"UnionDecl":          front.CursorUnionDecl,
	"FieldDecl":          front.CursorFieldDecl,
	"FunctionDecl":       front.CursorFunctionDecl,
	"MethodDecl":         front.CursorMethodDecl,
	"ConstructorDecl":    front.CursorConstructorDecl,
	"DestructorDecl":     front.CursorDestructorDecl,
	"ConversionFunction": front.CursorConversionFunction,
	"ParmDecl":           front.CursorParmDecl,
	"VarDecl":            front.CursorVarDecl,
	"EnumDecl":           front.CursorEnumDecl,
	"EnumConstantDecl":   front.CursorEnumConstantDecl,
	"AnnotateAttr":       front.CursorAnnotateAttr,
	"BaseSpecifier":      front.CursorBaseSpecifier,
}

var typeKindByName = map[string]front.TypeKind{
	"Builtin":         front.TypeBuiltin,
	"Pointer":         front.TypePointer,
	"LValueReference": front.TypeLValueReference,
	"RValueReference": front.TypeRValueReference,
	"ConstantArray":   front.TypeConstantArray,
	"IncompleteArray": front.TypeIncompleteArray,
	"Record":          front.TypeRecord,
	"Enum":            front.TypeEnum,
	"FunctionProto":   front.TypeFunctionProto,
	"MemberPointer":   front.TypeMemberPointer,
	"Unexposed":       front.TypeUnexposed,
}

var visibilityByName = map[string]front.Visibility{
	"public":    front.VisibilityPublic,
	"protected": front.VisibilityProtected,
	"private":   front.VisibilityPrivate,
}

// FromJSON decodes a hand-authored translation-unit description into a
// Cursor tree suitable for Adapter.Root. This is the fixture front end's
// only way to take input from a file rather than a Go struct literal: it
// lets `cmd/godref` exercise the full pipeline without a real libclang
// binding (front.Adapter's documented, not-yet-shipped extension point).
func FromJSON(data []byte) (*Cursor, error) {
	var root cursorWire
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode fixture translation unit: %w", err)
	}
	return convertCursor(&root, nil), nil
}

func convertCursor(w *cursorWire, parent *Cursor) *Cursor {
	if w == nil {
		return nil
	}
	c := &Cursor{
		KindV:          cursorKindByName[w.Kind],
		SpellingV:      w.Spelling,
		QualifiedNameV: w.QualifiedName,
		MangledNameV:   w.MangledName,
		Parent:         parent,
		FromMainFile:   w.FromMainFile,
		Definition:     w.Definition,
		AnnotationsV:   w.Annotations,
		TypeV:          convertType(w.Type),
		ScopedEnum:     w.ScopedEnum,
		EnumUnderlying: convertType(w.EnumUnderlying),
		EnumSigned:     w.EnumSigned,
		EnumUnsigned:   w.EnumUnsigned,
		OffsetBits:     w.OffsetBits,
		Index:          w.Index,
		Result:         convertType(w.Result),
		Static:         w.Static,
		Const:          w.Const,
		Virtual:        w.Virtual,
		Union:          w.Union,
		VisibilityV:    visibilityByName[w.Visibility],
		FileV:          w.File,
		Line:           w.Line,
	}
	for _, cw := range w.Children {
		c.Children = append(c.Children, convertCursor(cw, c))
	}
	return c
}

func convertType(w *typeWire) *Type {
	if w == nil {
		return nil
	}
	t := &Type{
		KindV:        typeKindByName[w.Kind],
		SpellingV:    w.Spelling,
		Size:         w.Size,
		Align:        w.Align,
		Const:        w.Const,
		Volatile:     w.Volatile,
		Pointee:      convertType(w.Pointee),
		Element:      convertType(w.Element),
		Extent:       w.Extent,
		MemberOwner:  convertType(w.MemberOwner),
		Result:       convertType(w.Result),
		Variadic:     w.Variadic,
		DeclarationV: convertCursor(w.Declaration, nil),
	}
	for _, a := range w.Args {
		t.Args = append(t.Args, convertType(a))
	}
	return t
}
