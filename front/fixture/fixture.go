// Package fixture provides a deterministic, in-memory front.Adapter built
// from plain Go struct literals rather than a real libclang binding —
// every parser test in this module exercises the discovery/materialization
// algorithm against one of these hand-built trees.
package fixture

import "github.com/lux-cxx/godref/front"

// Cursor is a hand-built AST node. Children are attached directly rather
// than discovered by a real parser, so a test constructs exactly the tree
// shape it wants to exercise.
type Cursor struct {
	KindV           front.CursorKind
	SpellingV       string
	QualifiedNameV  string
	MangledNameV    string
	Parent          *Cursor
	Children        []*Cursor
	FromMainFile    bool
	Definition      bool
	AnnotationsV    []string
	TypeV           *Type
	ScopedEnum      bool
	EnumUnderlying  *Type
	EnumSigned      int64
	EnumUnsigned    uint64
	OffsetBits      int64
	Index           int
	Result          *Type
	Static          bool
	Const           bool
	Virtual         bool
	Union           bool
	VisibilityV     front.Visibility
	FileV           string
	Line            int
}

func (c *Cursor) Kind() front.CursorKind  { return c.KindV }
func (c *Cursor) Spelling() string        { return c.SpellingV }
func (c *Cursor) QualifiedName() string   { return c.QualifiedNameV }
func (c *Cursor) MangledName() string     { return c.MangledNameV }
func (c *Cursor) IsFromMainFile() bool    { return c.FromMainFile }
func (c *Cursor) IsDefinition() bool      { return c.Definition }
func (c *Cursor) Annotations() []string   { return c.AnnotationsV }
func (c *Cursor) IsScopedEnum() bool      { return c.ScopedEnum }
func (c *Cursor) FieldOffsetBits() int64  { return c.OffsetBits }
func (c *Cursor) FieldIndex() int         { return c.Index }
func (c *Cursor) IsStatic() bool          { return c.Static }
func (c *Cursor) IsConst() bool           { return c.Const }
func (c *Cursor) IsVirtual() bool         { return c.Virtual }
func (c *Cursor) ParamIndex() int         { return c.Index }
func (c *Cursor) IsUnion() bool           { return c.Union }
func (c *Cursor) Visibility() front.Visibility { return c.VisibilityV }
func (c *Cursor) File() string            { return c.FileV }
func (c *Cursor) LineNumber() int         { return c.Line }

func (c *Cursor) SemanticParent() front.Cursor {
	if c.Parent == nil {
		return nil
	}
	return c.Parent
}

func (c *Cursor) Type() front.Type {
	if c.TypeV == nil {
		return nil
	}
	return c.TypeV
}

func (c *Cursor) ResultType() front.Type {
	if c.Result == nil {
		return nil
	}
	return c.Result
}

func (c *Cursor) EnumIntegerType() front.Type {
	if c.EnumUnderlying == nil {
		return nil
	}
	return c.EnumUnderlying
}

func (c *Cursor) EnumValue() (int64, uint64) { return c.EnumSigned, c.EnumUnsigned }

// Type is a hand-built type facade.
type Type struct {
	KindV        front.TypeKind
	SpellingV    string
	Size         int64
	Align        int64
	Const        bool
	Volatile     bool
	Pointee      *Type
	Element      *Type
	Extent       int64
	MemberOwner  *Type
	Result       *Type
	Args         []*Type
	Variadic     bool
	DeclarationV *Cursor
}

func (t *Type) Kind() front.TypeKind         { return t.KindV }
func (t *Type) Spelling() string             { return t.SpellingV }
func (t *Type) SizeOf() int64                { return t.Size }
func (t *Type) AlignOf() int64               { return t.Align }
func (t *Type) IsConstQualified() bool       { return t.Const }
func (t *Type) IsVolatileQualified() bool    { return t.Volatile }
func (t *Type) ArraySize() int64             { return t.Extent }
func (t *Type) IsFunctionTypeVariadic() bool { return t.Variadic }

func (t *Type) PointeeType() front.Type {
	if t.Pointee == nil {
		return nil
	}
	return t.Pointee
}

func (t *Type) ElementType() front.Type {
	if t.Element == nil {
		return nil
	}
	return t.Element
}

func (t *Type) ClassOfMemberPointer() front.Type {
	if t.MemberOwner == nil {
		return nil
	}
	return t.MemberOwner
}

func (t *Type) ResultType() front.Type {
	if t.Result == nil {
		return nil
	}
	return t.Result
}

func (t *Type) ArgTypes() []front.Type {
	if len(t.Args) == 0 {
		return nil
	}
	out := make([]front.Type, len(t.Args))
	for i, a := range t.Args {
		out[i] = a
	}
	return out
}

func (t *Type) Declaration() front.Cursor {
	if t.DeclarationV == nil {
		return nil
	}
	return t.DeclarationV
}

// Adapter is the deterministic in-memory front.Adapter: it serves a single
// pre-built Cursor tree and a fixed diagnostics list, never touching a
// real compiler.
type Adapter struct {
	Root  *Cursor
	Diags []front.Diagnostic
}

func (a *Adapter) OpenTranslationUnit(path string, extraArgs []string) error { return nil }
func (a *Adapter) RootCursor() front.Cursor                                  { return a.Root }
func (a *Adapter) Diagnostics() []front.Diagnostic                           { return a.Diags }

// VisitChildren walks c's Children in declaration order, matching the
// order spec.md §4.2's discovery pass assumes (definition-order emission
// for deterministic output).
func (a *Adapter) VisitChildren(c front.Cursor, visit func(child front.Cursor) bool) {
	fc, ok := c.(*Cursor)
	if !ok || fc == nil {
		return
	}
	for _, child := range fc.Children {
		if !visit(child) {
			return
		}
	}
}
