package parser

import (
	"github.com/lux-cxx/godref/front"
	"github.com/lux-cxx/godref/meta"
)

func recordKind(cur front.Cursor) meta.RecordKind {
	if cur.IsUnion() {
		return meta.RecordUnion
	}
	if cur.Kind() == front.CursorStructDecl {
		return meta.RecordStruct
	}
	return meta.RecordClass
}

func visibility(v front.Visibility) meta.Visibility {
	switch v {
	case front.VisibilityProtected:
		return meta.VisibilityProtected
	case front.VisibilityPrivate:
		return meta.VisibilityPrivate
	default:
		return meta.VisibilityPublic
	}
}

// buildRecord materializes a CursorClassDecl/CursorStructDecl/
// CursorUnionDecl into a meta.Decl of Kind DeclRecord, walking its
// children for base specifiers, fields, constructors, destructor, methods,
// and conversion operators — exactly the member set spec.md §3 lists for
// Record.
func (p *parseState) buildRecord(cur front.Cursor) *meta.Decl {
	d := meta.NewDecl(meta.DeclRecord, cur.Spelling(), cur.QualifiedName())
	d.OriginInMainFile = cur.IsFromMainFile()
	d.Annotations = cur.Annotations()
	d.RecordKind = recordKind(cur)
	if t := cur.Type(); t != nil {
		d.Size = t.SizeOf()
		d.Align = t.AlignOf()
	}

	fieldIndex := 0
	p.adapter.VisitChildren(cur, func(child front.Cursor) bool {
		switch child.Kind() {
		case front.CursorBaseSpecifier:
			base := p.resolveBaseRecord(child)
			if base != nil {
				d.Bases = append(d.Bases, base)
				d.BaseVisibilities = append(d.BaseVisibilities, visibility(child.Visibility()))
			}
		case front.CursorFieldDecl:
			d.Fields = append(d.Fields, p.buildField(child, fieldIndex))
			fieldIndex++
		case front.CursorConstructorDecl:
			d.Constructors = append(d.Constructors, p.buildFunction(child, meta.DeclConstructor))
		case front.CursorDestructorDecl:
			d.Destructor = p.buildFunction(child, meta.DeclDestructor)
		case front.CursorConversionFunction:
			method := p.buildFunction(child, meta.DeclConversionOperator)
			d.Methods = append(d.Methods, method)
		case front.CursorMethodDecl:
			method := p.buildFunction(child, meta.DeclMethod)
			if child.IsStatic() {
				d.StaticMethods = append(d.StaticMethods, method)
			} else {
				d.Methods = append(d.Methods, method)
			}
		case front.CursorClassDecl, front.CursorStructDecl, front.CursorUnionDecl:
			// Nested record: not built here, and discover descends only
			// into namespaces, so a nested record becomes a Decl only when
			// it is reached as a base of another record.
		}
		return true
	})

	// Every constructor's return is the record's own type, never whatever
	// the front end happened to report as the cursor's result type, per
	// spec.md §3 invariant 3. A record with no declared constructor still
	// gets one: the implicit default constructor spec.md §4.2 step 2
	// requires "when none exists and at least one constructor is required
	// by downstream generation" (the dynamic artifact always needs a ctor
	// thunk to register).
	recordType := p.intern.ensureRecordType(cur.QualifiedName(), d.Size, d.Align)
	for _, c := range d.Constructors {
		c.ReturnType = recordType
	}
	if len(d.Constructors) == 0 {
		d.Constructors = append(d.Constructors, p.implicitDefaultConstructor(d, recordType))
	}

	registered := p.unit.InternDecl(d)
	p.intern.linkDeclaration(cur.QualifiedName(), registered)
	return registered
}

// implicitDefaultConstructor synthesizes the no-argument constructor a
// record gets for free in C++ when it declares none itself.
func (p *parseState) implicitDefaultConstructor(d *meta.Decl, recordType *meta.Type) *meta.Decl {
	ctor := meta.NewDecl(meta.DeclConstructor, d.Name, d.QualifiedName+"::"+d.Name)
	ctor.OriginInMainFile = d.OriginInMainFile
	ctor.ReturnType = recordType
	return p.unit.InternDecl(ctor)
}

// resolveBaseRecord materializes (or looks up, if already registered) the
// base class named by a CursorBaseSpecifier's type.
func (p *parseState) resolveBaseRecord(child front.Cursor) *meta.Decl {
	t := child.Type()
	if t == nil {
		return nil
	}
	if decl, ok := p.unit.FindDecl(meta.DeclRecord.String() + ":" + t.Spelling()); ok {
		return decl
	}
	baseCur := t.Declaration()
	if baseCur == nil {
		return nil
	}
	return p.buildRecord(baseCur)
}

// buildField materializes a CursorFieldDecl into a meta.Decl of Kind
// DeclField, preserving declared field order via index.
func (p *parseState) buildField(cur front.Cursor, index int) *meta.Decl {
	d := meta.NewDecl(meta.DeclField, cur.Spelling(), cur.QualifiedName())
	d.OriginInMainFile = cur.IsFromMainFile()
	d.Annotations = cur.Annotations()
	d.Index = index
	d.Offset = cur.FieldOffsetBits() / 8
	d.Type = p.intern.internType(cur.Type())
	d.Visibility = visibility(cur.Visibility())
	d.Static = cur.IsStatic()
	if t := cur.Type(); t != nil {
		d.Const = t.IsConstQualified()
	}
	return p.unit.InternDecl(d)
}
