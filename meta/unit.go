package meta

// Unit is the owning container of a reflection graph: every Decl and Type
// referenced anywhere in the graph is one of the entries in these two
// arenas. Cross-references (Field.Type, Pointer.Pointee, …) are plain
// pointers into the same arenas — never into another Unit, never dangling
// once Validate has passed.
//
// Nodes are appended during parsing and never removed; this gives every
// node a stable arena index for the lifetime of the Unit, which doubles as
// the basis for deterministic re-serialization (spec.md §9's arena +
// stable-indices redesign note).
type Unit struct {
	Name    string
	Version string
	ID      uint64

	decls []*Decl
	types []*Type

	declByID map[string]*Decl
	typeByID map[string]*Type

	markedRecords   []*Decl
	markedFunctions []*Decl
	markedEnums     []*Decl
}

// NewUnit creates an empty Unit, with its id derived from
// FNV1a(name ++ version) per spec.md §3.
func NewUnit(name, version string) *Unit {
	return &Unit{
		Name:     name,
		Version:  version,
		ID:       FNV1a(name + version),
		declByID: make(map[string]*Decl),
		typeByID: make(map[string]*Type),
	}
}

// InternDecl inserts d into the arena if its id is not already present.
// Duplicate ids are a no-op: the first registration wins, per spec.md
// §4.2's "Duplicate ids are no-ops (first wins)."
func (u *Unit) InternDecl(d *Decl) *Decl {
	if existing, ok := u.declByID[d.ID]; ok {
		return existing
	}
	u.decls = append(u.decls, d)
	u.declByID[d.ID] = d

	if d.OriginInMainFile && len(d.Annotations) > 0 {
		switch d.Kind {
		case DeclRecord:
			u.markedRecords = append(u.markedRecords, d)
		case DeclFunction:
			u.markedFunctions = append(u.markedFunctions, d)
		case DeclEnum:
			u.markedEnums = append(u.markedEnums, d)
		}
	}
	return d
}

// InternType inserts t into the arena if its id is not already present.
func (u *Unit) InternType(t *Type) *Type {
	if existing, ok := u.typeByID[t.ID]; ok {
		return existing
	}
	u.types = append(u.types, t)
	u.typeByID[t.ID] = t
	return t
}

// FindDecl looks up a declaration by its USR-like id.
func (u *Unit) FindDecl(id string) (*Decl, bool) {
	d, ok := u.declByID[id]
	return d, ok
}

// FindType looks up a type by its canonical-spelling id.
func (u *Unit) FindType(id string) (*Type, bool) {
	t, ok := u.typeByID[id]
	return t, ok
}

// Decls returns every declaration in arena (insertion) order.
func (u *Unit) Decls() []*Decl { return u.decls }

// Types returns every type in arena (insertion) order.
func (u *Unit) Types() []*Type { return u.types }

// MarkedRecords returns the stable-ordered view of annotated, main-file
// record declarations.
func (u *Unit) MarkedRecords() []*Decl { return u.markedRecords }

// MarkedFunctions returns the stable-ordered view of annotated, main-file
// function declarations.
func (u *Unit) MarkedFunctions() []*Decl { return u.markedFunctions }

// MarkedEnums returns the stable-ordered view of annotated, main-file enum
// declarations.
func (u *Unit) MarkedEnums() []*Decl { return u.markedEnums }
