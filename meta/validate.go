package meta

import "fmt"

// InvariantError reports a violation of one of spec.md §3's numbered
// invariants. The parser treats this as fatal (InvariantViolation, spec.md
// §7): a dangling reference at registration time is a programmer bug in
// the materializer, not a recoverable per-declaration condition.
type InvariantError struct {
	Invariant int
	Detail    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant %d violated: %s", e.Invariant, e.Detail)
}

// Validate checks every invariant spec.md §3 lists against the current
// arena contents. It is run once, at the end of parsing, and again after
// FromJSON reconstructs a Unit from its serialized form.
func (u *Unit) Validate() error {
	// Invariant 2: every Field.Type and Parameter.Type resolves to a type
	// node owned by this Unit; never dangling.
	for _, d := range u.decls {
		if d.Kind == DeclField && d.Type == nil {
			return &InvariantError{2, fmt.Sprintf("field %q has nil type", d.QualifiedName)}
		}
		if d.Kind == DeclField && u.typeByID[d.Type.ID] != d.Type {
			return &InvariantError{2, fmt.Sprintf("field %q type %q is not owned by this unit", d.QualifiedName, d.Type.ID)}
		}
		for _, p := range d.Parameters {
			if p.Type == nil {
				return &InvariantError{2, fmt.Sprintf("parameter %q of %q has nil type", p.Name, d.QualifiedName)}
			}
			if u.typeByID[p.Type.ID] != p.Type {
				return &InvariantError{2, fmt.Sprintf("parameter %q of %q type %q is not owned by this unit", p.Name, d.QualifiedName, p.Type.ID)}
			}
		}
	}

	// Invariant 3: a constructor's return is its owning record's own type;
	// a destructor takes no parameters.
	for _, d := range u.decls {
		if d.Kind == DeclDestructor && len(d.Parameters) != 0 {
			return &InvariantError{3, fmt.Sprintf("destructor %q has parameters", d.QualifiedName)}
		}
		if d.Kind != DeclRecord {
			continue
		}
		for _, c := range d.Constructors {
			if c.ReturnType == nil || c.ReturnType.Kind != TypeRecord || c.ReturnType.Declaration != d {
				return &InvariantError{3, fmt.Sprintf("constructor %q does not return %q", c.QualifiedName, d.QualifiedName)}
			}
		}
	}

	// Invariant 4: the id map is injective — enforced structurally by
	// InternDecl/InternType never overwriting an existing entry, so a
	// lookup of any id in the arena always yields exactly the node that
	// was interned under it.
	for _, d := range u.decls {
		found, ok := u.declByID[d.ID]
		if !ok || found != d {
			return &InvariantError{4, fmt.Sprintf("declaration id %q is not injective", d.ID)}
		}
	}
	for _, t := range u.types {
		found, ok := u.typeByID[t.ID]
		if !ok || found != t {
			return &InvariantError{4, fmt.Sprintf("type id %q is not injective", t.ID)}
		}
	}

	// Invariant 5: a main-file declaration appears in its marked-* list
	// iff it carries at least one annotation.
	marked := make(map[string]bool, len(u.markedRecords)+len(u.markedFunctions)+len(u.markedEnums))
	for _, d := range u.markedRecords {
		marked[d.ID] = true
	}
	for _, d := range u.markedFunctions {
		marked[d.ID] = true
	}
	for _, d := range u.markedEnums {
		marked[d.ID] = true
	}
	for _, d := range u.decls {
		if d.Kind != DeclRecord && d.Kind != DeclFunction && d.Kind != DeclEnum {
			continue
		}
		shouldBeMarked := d.OriginInMainFile && len(d.Annotations) > 0
		if shouldBeMarked != marked[d.ID] {
			return &InvariantError{5, fmt.Sprintf("declaration %q marked-state mismatch", d.QualifiedName)}
		}
	}

	// Invariant 6: for every Enum, underlying_type is a Builtin integer.
	for _, d := range u.decls {
		if d.Kind != DeclEnum {
			continue
		}
		if d.UnderlyingType == nil || d.UnderlyingType.Kind != TypeBuiltin {
			return &InvariantError{6, fmt.Sprintf("enum %q has non-builtin underlying type", d.QualifiedName)}
		}
	}

	return nil
}
