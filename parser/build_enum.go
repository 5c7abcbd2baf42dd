package parser

import (
	"github.com/lux-cxx/godref/front"
	"github.com/lux-cxx/godref/meta"
)

// buildEnum materializes a CursorEnumDecl into a meta.Decl of Kind
// DeclEnum, gathering its enumerators from CursorEnumConstantDecl children.
func (p *parseState) buildEnum(cur front.Cursor) *meta.Decl {
	d := meta.NewDecl(meta.DeclEnum, cur.Spelling(), cur.QualifiedName())
	d.OriginInMainFile = cur.IsFromMainFile()
	d.Annotations = cur.Annotations()
	d.Scoped = cur.IsScopedEnum()
	d.UnderlyingType = p.intern.internType(cur.EnumIntegerType())

	p.adapter.VisitChildren(cur, func(child front.Cursor) bool {
		if child.Kind() != front.CursorEnumConstantDecl {
			return true
		}
		signed, unsigned := child.EnumValue()
		d.Enumerators = append(d.Enumerators, meta.Enumerator{
			Name:     child.Spelling(),
			Signed:   signed,
			Unsigned: unsigned,
		})
		return true
	})

	// The enum's own Type node is what the generator walks to emit it, so
	// register one even when no field or parameter refers to the enum.
	if _, ok := p.unit.FindType(cur.QualifiedName()); !ok {
		q := cur.QualifiedName()
		t := &meta.Type{Kind: meta.TypeEnum, ID: q, Hash: meta.FNV1a(q), Spelling: q}
		if d.UnderlyingType != nil {
			t.Size, t.Align = d.UnderlyingType.Size, d.UnderlyingType.Align
		}
		p.unit.InternType(t)
	}

	registered := p.unit.InternDecl(d)
	p.intern.linkDeclaration(cur.QualifiedName(), registered)
	return registered
}
