package parser

import (
	"fmt"

	"github.com/lux-cxx/godref/front"
	"github.com/lux-cxx/godref/meta"
)

// buildFunction materializes a CursorFunctionDecl/MethodDecl/
// ConstructorDecl/DestructorDecl/ConversionFunction cursor into a meta.Decl
// of the given kind, collecting its CursorParmDecl children in declared
// order. Free functions and methods/constructors/destructors/conversion
// operators share the exact same shape (spec.md §3), so one builder
// covers all five, dispatched by the caller's chosen DeclKind — grounded
// on the original's CxxParserImpl.cpp routing constructors, destructors,
// and methods through its single parse_function_declaration path.
func (p *parseState) buildFunction(cur front.Cursor, kind meta.DeclKind) *meta.Decl {
	d := meta.NewDecl(kind, cur.Spelling(), cur.QualifiedName())
	d.OriginInMainFile = cur.IsFromMainFile()
	d.Annotations = cur.Annotations()
	d.IsConst = cur.IsConst()
	d.IsVirtual = cur.IsVirtual()
	d.IsStatic = cur.IsStatic()
	d.Visibility = visibility(cur.Visibility())

	if kind != meta.DeclDestructor {
		d.ReturnType = p.intern.internType(cur.ResultType())
	}

	paramIndex := 0
	p.adapter.VisitChildren(cur, func(child front.Cursor) bool {
		if child.Kind() != front.CursorParmDecl {
			return true
		}
		d.Parameters = append(d.Parameters, p.buildParameter(child, paramIndex))
		paramIndex++
		return true
	})

	return p.unit.InternDecl(d)
}

// buildParameter materializes a CursorParmDecl into a meta.Decl of Kind
// DeclParameter. An empty spelling (an unnamed parameter) is synthesized
// as arg<i> per spec.md §4.2, so two unnamed parameters in the same
// function never collide on the same qualified name.
func (p *parseState) buildParameter(cur front.Cursor, index int) *meta.Decl {
	name := cur.Spelling()
	if name == "" {
		name = syntheticParamName(index)
	}
	qualified := cur.QualifiedName()
	if qualified == "" {
		qualified = name
	}
	d := meta.NewDecl(meta.DeclParameter, name, qualified)
	d.Index = index
	d.Type = p.intern.internType(cur.Type())
	return p.unit.InternDecl(d)
}

// syntheticParamName produces the arg<i> placeholder spec.md §4.2 mandates
// for a parameter whose front-end spelling is empty.
func syntheticParamName(index int) string {
	return fmt.Sprintf("arg%d", index)
}
