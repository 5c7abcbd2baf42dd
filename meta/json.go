package meta

import (
	"encoding/json"
	"fmt"
)

// Document is the on-disk JSON shape of a Unit, per spec.md §6. It is a
// flat pair of arrays (declarations, types) plus an index of marked ids,
// rather than a nested tree, so that re-loading never needs more than one
// resolution pass: every cross-reference is an id looked up against the
// array that was just decoded.
type Document struct {
	Name         string          `json:"name"`
	Version      string          `json:"version"`
	ID           uint64          `json:"id"`
	Declarations []declJSON      `json:"declarations"`
	Types        []typeJSON      `json:"types"`
	Marked       markedJSON      `json:"marked"`
}

type markedJSON struct {
	Records   []string `json:"records"`
	Functions []string `json:"functions"`
	Enums     []string `json:"enums"`
}

type declJSON struct {
	Kind             string   `json:"kind"`
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	QualifiedName    string   `json:"qualified_name"`
	MangledName      string   `json:"mangled_name,omitempty"`
	OriginInMainFile bool     `json:"origin_in_main_file"`
	Annotations      []string `json:"annotations,omitempty"`

	RecordKind       string   `json:"record_kind,omitempty"`
	Size             int64    `json:"size,omitempty"`
	Align            int64    `json:"align,omitempty"`
	Bases            []string `json:"bases,omitempty"`
	BaseVisibilities []string `json:"base_visibilities,omitempty"`
	Fields           []string `json:"fields,omitempty"`
	Constructors     []string `json:"constructors,omitempty"`
	Destructor       string   `json:"destructor,omitempty"`
	Methods          []string `json:"methods,omitempty"`
	StaticMethods    []string `json:"static_methods,omitempty"`

	Index      *int   `json:"index,omitempty"`
	Offset     int64  `json:"offset,omitempty"`
	Type       string `json:"type,omitempty"`
	Visibility string `json:"visibility,omitempty"`
	Static     bool   `json:"static,omitempty"`
	Const      bool   `json:"const,omitempty"`

	ReturnType string     `json:"return_type,omitempty"`
	Parameters []string   `json:"parameters,omitempty"`
	IsConst    bool       `json:"is_const,omitempty"`
	IsVirtual  bool       `json:"is_virtual,omitempty"`
	IsStatic   bool       `json:"is_static,omitempty"`

	UnderlyingType string       `json:"underlying_type,omitempty"`
	Scoped         bool         `json:"scoped,omitempty"`
	Enumerators    []enumJSON   `json:"enumerators,omitempty"`
}

type enumJSON struct {
	Name     string `json:"name"`
	Signed   int64  `json:"signed"`
	Unsigned uint64 `json:"unsigned"`
}

type typeJSON struct {
	Kind       string  `json:"kind"`
	ID         string  `json:"id"`
	Spelling   string  `json:"spelling"`
	Size       int64   `json:"size,omitempty"`
	Align      int64   `json:"align,omitempty"`
	IsConst    bool    `json:"is_const,omitempty"`
	IsVolatile bool    `json:"is_volatile,omitempty"`

	Pointee     string `json:"pointee,omitempty"`
	MemberOwner string `json:"member_owner,omitempty"`
	Referred    string `json:"referred,omitempty"`
	Element     string `json:"element,omitempty"`
	Extent      int64  `json:"extent,omitempty"`
	Declaration string `json:"declaration,omitempty"`

	UnderlyingType string   `json:"underlying_type,omitempty"`
	Return         string   `json:"return,omitempty"`
	Parameters     []string `json:"parameters,omitempty"`
	IsVariadic     bool     `json:"is_variadic,omitempty"`
	IsNoexcept     bool     `json:"is_noexcept,omitempty"`
}

func visibilityString(v Visibility) string {
	switch v {
	case VisibilityProtected:
		return "protected"
	case VisibilityPrivate:
		return "private"
	default:
		return "public"
	}
}

func parseVisibility(s string) Visibility {
	switch s {
	case "protected":
		return VisibilityProtected
	case "private":
		return VisibilityPrivate
	default:
		return VisibilityPublic
	}
}

func recordKindString(k RecordKind) string {
	switch k {
	case RecordUnion:
		return "union"
	case RecordStruct:
		return "struct"
	default:
		return "class"
	}
}

func parseRecordKind(s string) RecordKind {
	switch s {
	case "union":
		return RecordUnion
	case "struct":
		return RecordStruct
	default:
		return RecordClass
	}
}

func declIDs(ds []*Decl) []string {
	if len(ds) == 0 {
		return nil
	}
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.ID
	}
	return out
}

func typeID(t *Type) string {
	if t == nil {
		return ""
	}
	return t.ID
}

func typeIDs(ts []*Type) []string {
	if len(ts) == 0 {
		return nil
	}
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.ID
	}
	return out
}

func toDeclJSON(d *Decl) declJSON {
	out := declJSON{
		Kind:             d.Kind.String(),
		ID:               d.ID,
		Name:             d.Name,
		QualifiedName:    d.QualifiedName,
		MangledName:      d.MangledName,
		OriginInMainFile: d.OriginInMainFile,
		Annotations:      d.Annotations,
	}
	switch d.Kind {
	case DeclRecord:
		out.RecordKind = recordKindString(d.RecordKind)
		out.Size = d.Size
		out.Align = d.Align
		out.Bases = declIDs(d.Bases)
		for _, v := range d.BaseVisibilities {
			out.BaseVisibilities = append(out.BaseVisibilities, visibilityString(v))
		}
		out.Fields = declIDs(d.Fields)
		out.Constructors = declIDs(d.Constructors)
		if d.Destructor != nil {
			out.Destructor = d.Destructor.ID
		}
		out.Methods = declIDs(d.Methods)
		out.StaticMethods = declIDs(d.StaticMethods)
	case DeclField:
		idx := d.Index
		out.Index = &idx
		out.Offset = d.Offset
		out.Type = typeID(d.Type)
		out.Visibility = visibilityString(d.Visibility)
		out.Static = d.Static
		out.Const = d.Const
	case DeclFunction, DeclMethod, DeclConstructor, DeclDestructor, DeclConversionOperator:
		out.ReturnType = typeID(d.ReturnType)
		out.Parameters = declIDs(d.Parameters)
		out.IsConst = d.IsConst
		out.IsVirtual = d.IsVirtual
		out.IsStatic = d.IsStatic
		out.Visibility = visibilityString(d.Visibility)
	case DeclParameter, DeclVariable:
		out.Type = typeID(d.Type)
	case DeclEnum:
		out.UnderlyingType = typeID(d.UnderlyingType)
		out.Scoped = d.Scoped
		for _, e := range d.Enumerators {
			out.Enumerators = append(out.Enumerators, enumJSON{e.Name, e.Signed, e.Unsigned})
		}
	}
	return out
}

func toTypeJSON(t *Type) typeJSON {
	out := typeJSON{
		Kind:       t.Kind.String(),
		ID:         t.ID,
		Spelling:   t.Spelling,
		Size:       t.Size,
		Align:      t.Align,
		IsConst:    t.IsConst,
		IsVolatile: t.IsVolatile,
	}
	switch t.Kind {
	case TypePointer:
		out.Kind = t.PointerKind.jsonKind()
		out.Pointee = typeID(t.Pointee)
		out.MemberOwner = typeID(t.MemberOwner)
	case TypeLvalueReference, TypeRvalueReference:
		out.Referred = typeID(t.Referred)
	case TypeArray:
		out.Element = typeID(t.Element)
		out.Extent = t.Extent
	case TypeRecord:
		out.Declaration = ""
		if t.Declaration != nil {
			out.Declaration = t.Declaration.ID
		}
	case TypeEnum:
		if t.EnumVariant == EnumScoped {
			out.Kind = "ScopedEnumType"
		} else {
			out.Kind = "UnscopedEnumType"
		}
		if t.Declaration != nil {
			out.Declaration = t.Declaration.ID
		}
		out.UnderlyingType = typeID(t.UnderlyingType)
	case TypeFunction:
		out.Return = typeID(t.Return)
		out.Parameters = typeIDs(t.Parameters)
		out.IsVariadic = t.IsVariadic
		out.IsNoexcept = t.IsNoexcept
	}
	return out
}

// ToJSON renders the Unit into its serializable Document form, suitable
// for json.Marshal. Nodes are emitted in arena order, which is also
// insertion order, so the same Unit always produces byte-identical JSON.
func (u *Unit) ToJSON() Document {
	doc := Document{
		Name:    u.Name,
		Version: u.Version,
		ID:      u.ID,
		Marked: markedJSON{
			Records:   declIDs(u.markedRecords),
			Functions: declIDs(u.markedFunctions),
			Enums:     declIDs(u.markedEnums),
		},
	}
	for _, d := range u.decls {
		doc.Declarations = append(doc.Declarations, toDeclJSON(d))
	}
	for _, t := range u.types {
		doc.Types = append(doc.Types, toTypeJSON(t))
	}
	return doc
}

// Marshal renders the Unit as indented JSON bytes.
func (u *Unit) Marshal() ([]byte, error) {
	return json.MarshalIndent(u.ToJSON(), "", "  ")
}

func parseDeclKind(s string) DeclKind {
	switch s {
	case "EnumDecl":
		return DeclEnum
	case "RecordDecl":
		return DeclRecord
	case "FieldDecl":
		return DeclField
	case "FunctionDecl":
		return DeclFunction
	case "MethodDecl":
		return DeclMethod
	case "ConstructorDecl":
		return DeclConstructor
	case "DestructorDecl":
		return DeclDestructor
	case "ConversionDecl":
		return DeclConversionOperator
	case "ParmVarDecl":
		return DeclParameter
	case "VarDecl":
		return DeclVariable
	default:
		return DeclUnknown
	}
}

func parseTypeKind(s string) TypeKind {
	switch s {
	case "BuiltinType":
		return TypeBuiltin
	case "PointerType", "ObjectPointerType", "FuncPointerType", "MemberDataPointerType", "MemberFuncPointerType":
		return TypePointer
	case "LValueReferenceType":
		return TypeLvalueReference
	case "RValueReferenceType":
		return TypeRvalueReference
	case "ArrayType":
		return TypeArray
	case "RecordType":
		return TypeRecord
	case "EnumType", "ScopedEnumType", "UnscopedEnumType":
		return TypeEnum
	case "FunctionType":
		return TypeFunction
	default:
		return TypeUnsupported
	}
}

func parsePointerKind(s string) PointerKind {
	switch s {
	case "FuncPointerType":
		return PointerToFunction
	case "MemberDataPointerType":
		return PointerToDataMember
	case "MemberFuncPointerType":
		return PointerToMemberFunction
	default:
		return PointerToObject
	}
}

// FromJSON reconstructs a Unit from a previously-rendered Document. Types
// are interned in a first pass (so any declaration or type may reference
// any other, regardless of array order), declarations in a second, and
// cross-references resolved in a third. The result is validated before
// being returned, matching the guarantee ToJSON's producer already upheld.
func FromJSON(doc Document) (*Unit, error) {
	u := &Unit{
		Name:     doc.Name,
		Version:  doc.Version,
		ID:       doc.ID,
		declByID: make(map[string]*Decl),
		typeByID: make(map[string]*Type),
	}

	for _, tj := range doc.Types {
		t := &Type{
			Kind:       parseTypeKind(tj.Kind),
			ID:         tj.ID,
			Hash:       FNV1a(tj.ID),
			Spelling:   tj.Spelling,
			Size:       tj.Size,
			Align:      tj.Align,
			IsConst:    tj.IsConst,
			IsVolatile: tj.IsVolatile,
			Extent:     tj.Extent,
			IsVariadic: tj.IsVariadic,
			IsNoexcept: tj.IsNoexcept,
		}
		if t.Kind == TypePointer {
			t.PointerKind = parsePointerKind(tj.Kind)
		}
		if t.Kind == TypeEnum && tj.Kind == "ScopedEnumType" {
			t.EnumVariant = EnumScoped
		}
		u.InternType(t)
	}

	for _, dj := range doc.Declarations {
		d := &Decl{
			Kind:             parseDeclKind(dj.Kind),
			ID:               dj.ID,
			Hash:             FNV1a(dj.ID),
			Name:             dj.Name,
			QualifiedName:    dj.QualifiedName,
			MangledName:      dj.MangledName,
			OriginInMainFile: dj.OriginInMainFile,
			Annotations:      dj.Annotations,
			RecordKind:       parseRecordKind(dj.RecordKind),
			Size:             dj.Size,
			Align:            dj.Align,
			Index:            0,
			Offset:           dj.Offset,
			Visibility:       parseVisibility(dj.Visibility),
			Static:           dj.Static,
			Const:            dj.Const,
			IsConst:          dj.IsConst,
			IsVirtual:        dj.IsVirtual,
			IsStatic:         dj.IsStatic,
			Scoped:           dj.Scoped,
		}
		if dj.Index != nil {
			d.Index = *dj.Index
		}
		for _, e := range dj.Enumerators {
			d.Enumerators = append(d.Enumerators, Enumerator{e.Name, e.Signed, e.Unsigned})
		}
		u.InternDecl(d)
	}

	resolveType := func(id string) (*Type, error) {
		if id == "" {
			return nil, nil
		}
		t, ok := u.FindType(id)
		if !ok {
			return nil, fmt.Errorf("dangling type reference %q", id)
		}
		return t, nil
	}
	resolveDecl := func(id string) (*Decl, error) {
		if id == "" {
			return nil, nil
		}
		d, ok := u.FindDecl(id)
		if !ok {
			return nil, fmt.Errorf("dangling declaration reference %q", id)
		}
		return d, nil
	}

	for i, dj := range doc.Declarations {
		d := u.decls[i]
		var err error
		switch d.Kind {
		case DeclRecord:
			for _, id := range dj.Bases {
				b, e := resolveDecl(id)
				if e != nil {
					return nil, e
				}
				d.Bases = append(d.Bases, b)
			}
			for _, v := range dj.BaseVisibilities {
				d.BaseVisibilities = append(d.BaseVisibilities, parseVisibility(v))
			}
			for _, id := range dj.Fields {
				f, e := resolveDecl(id)
				if e != nil {
					return nil, e
				}
				d.Fields = append(d.Fields, f)
			}
			for _, id := range dj.Constructors {
				c, e := resolveDecl(id)
				if e != nil {
					return nil, e
				}
				d.Constructors = append(d.Constructors, c)
			}
			if dj.Destructor != "" {
				if d.Destructor, err = resolveDecl(dj.Destructor); err != nil {
					return nil, err
				}
			}
			for _, id := range dj.Methods {
				m, e := resolveDecl(id)
				if e != nil {
					return nil, e
				}
				d.Methods = append(d.Methods, m)
			}
			for _, id := range dj.StaticMethods {
				m, e := resolveDecl(id)
				if e != nil {
					return nil, e
				}
				d.StaticMethods = append(d.StaticMethods, m)
			}
		case DeclField, DeclParameter, DeclVariable:
			if d.Type, err = resolveType(dj.Type); err != nil {
				return nil, err
			}
		case DeclFunction, DeclMethod, DeclConstructor, DeclDestructor, DeclConversionOperator:
			if d.ReturnType, err = resolveType(dj.ReturnType); err != nil {
				return nil, err
			}
			for _, id := range dj.Parameters {
				p, e := resolveDecl(id)
				if e != nil {
					return nil, e
				}
				d.Parameters = append(d.Parameters, p)
			}
		case DeclEnum:
			if d.UnderlyingType, err = resolveType(dj.UnderlyingType); err != nil {
				return nil, err
			}
		}
	}

	for i, tj := range doc.Types {
		t := u.types[i]
		var err error
		switch t.Kind {
		case TypePointer:
			if t.Pointee, err = resolveType(tj.Pointee); err != nil {
				return nil, err
			}
			if t.MemberOwner, err = resolveType(tj.MemberOwner); err != nil {
				return nil, err
			}
		case TypeLvalueReference, TypeRvalueReference:
			if t.Referred, err = resolveType(tj.Referred); err != nil {
				return nil, err
			}
		case TypeArray:
			if t.Element, err = resolveType(tj.Element); err != nil {
				return nil, err
			}
		case TypeRecord:
			if t.Declaration, err = resolveDecl(tj.Declaration); err != nil {
				return nil, err
			}
		case TypeEnum:
			if t.Declaration, err = resolveDecl(tj.Declaration); err != nil {
				return nil, err
			}
			if t.UnderlyingType, err = resolveType(tj.UnderlyingType); err != nil {
				return nil, err
			}
		case TypeFunction:
			if t.Return, err = resolveType(tj.Return); err != nil {
				return nil, err
			}
			for _, id := range tj.Parameters {
				p, e := resolveType(id)
				if e != nil {
					return nil, e
				}
				t.Parameters = append(t.Parameters, p)
			}
		}
	}

	// The document's marked index is authoritative: drop the entries
	// InternDecl added above so each marked declaration appears once.
	u.markedRecords, u.markedFunctions, u.markedEnums = nil, nil, nil
	for _, id := range doc.Marked.Records {
		d, ok := u.FindDecl(id)
		if !ok {
			return nil, fmt.Errorf("dangling marked record reference %q", id)
		}
		u.markedRecords = append(u.markedRecords, d)
	}
	for _, id := range doc.Marked.Functions {
		d, ok := u.FindDecl(id)
		if !ok {
			return nil, fmt.Errorf("dangling marked function reference %q", id)
		}
		u.markedFunctions = append(u.markedFunctions, d)
	}
	for _, id := range doc.Marked.Enums {
		d, ok := u.FindDecl(id)
		if !ok {
			return nil, fmt.Errorf("dangling marked enum reference %q", id)
		}
		u.markedEnums = append(u.markedEnums, d)
	}

	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Unmarshal parses JSON bytes produced by Marshal back into a Unit.
func Unmarshal(data []byte) (*Unit, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return FromJSON(doc)
}
