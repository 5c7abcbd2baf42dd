package generator

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"

	"github.com/lux-cxx/godref/front"
	"github.com/lux-cxx/godref/front/fixture"
	"github.com/lux-cxx/godref/parser"
)

func intType() *fixture.Type {
	return &fixture.Type{KindV: front.TypeBuiltin, SpellingV: "int", Size: 4, Align: 4}
}

// pointUnit builds spec.md §8 scenario 1: struct S { int a; double b; }.
func pointUnit(t *testing.T) *unitFixture {
	point := &fixture.Cursor{
		KindV:          front.CursorStructDecl,
		SpellingV:      "S",
		QualifiedNameV: "demo::S",
		FromMainFile:   true,
		Definition:     true,
		AnnotationsV:   []string{"LUX::META"},
		TypeV:          &fixture.Type{KindV: front.TypeRecord, SpellingV: "demo::S", Size: 16, Align: 8},
	}
	a := &fixture.Cursor{KindV: front.CursorFieldDecl, SpellingV: "a", QualifiedNameV: "demo::S::a", FromMainFile: true, TypeV: intType(), Index: 0}
	b := &fixture.Cursor{
		KindV: front.CursorFieldDecl, SpellingV: "b", QualifiedNameV: "demo::S::b", FromMainFile: true,
		TypeV: &fixture.Type{KindV: front.TypeBuiltin, SpellingV: "double", Size: 8, Align: 8}, Index: 1, OffsetBits: 64,
	}
	point.Children = []*fixture.Cursor{a, b}

	root := &fixture.Cursor{KindV: front.CursorTranslationUnit, Children: []*fixture.Cursor{point}}
	return &unitFixture{adapter: &fixture.Adapter{Root: root}}
}

type unitFixture struct {
	adapter *fixture.Adapter
}

func TestRenderPlainRecord(t *testing.T) {
	uf := pointUnit(t)
	status, unit, err := parser.Parse(uf.adapter, "s.h", parser.Options{Name: "demo", Version: "1.0"})
	require.NoError(t, err)
	require.Equal(t, parser.StatusOK, status)

	g := New(Config{})
	artifacts, errs := g.Render(unit, "demo.meta.hpp", "01TESTRUN0000000000000000")
	require.Empty(t, errs)
	require.Len(t, artifacts, 3)

	snaps.MatchSnapshot(t, "plain_record_static", artifacts[0].Content)
	snaps.MatchSnapshot(t, "plain_record_dynamic", artifacts[1].Content)
}

func TestRenderScopedEnum(t *testing.T) {
	color := &fixture.Cursor{
		KindV:          front.CursorEnumDecl,
		SpellingV:      "E",
		QualifiedNameV: "demo::E",
		FromMainFile:   true,
		AnnotationsV:   []string{"LUX::META"},
		ScopedEnum:     true,
		EnumUnderlying: &fixture.Type{KindV: front.TypeBuiltin, SpellingV: "int", Size: 4, Align: 4},
		Children: []*fixture.Cursor{
			{KindV: front.CursorEnumConstantDecl, SpellingV: "X", EnumSigned: 100, EnumUnsigned: 100},
			{KindV: front.CursorEnumConstantDecl, SpellingV: "Y", EnumSigned: 200, EnumUnsigned: 200},
			{KindV: front.CursorEnumConstantDecl, SpellingV: "Z", EnumSigned: 4, EnumUnsigned: 4},
		},
	}
	root := &fixture.Cursor{KindV: front.CursorTranslationUnit, Children: []*fixture.Cursor{color}}
	adapter := &fixture.Adapter{Root: root}

	status, unit, err := parser.Parse(adapter, "e.h", parser.Options{Name: "demo", Version: "1.0"})
	require.NoError(t, err)
	require.Equal(t, parser.StatusOK, status)

	g := New(Config{})
	artifacts, errs := g.Render(unit, "demo.meta.hpp", "01TESTRUN0000000000000000")
	require.Empty(t, errs)
	require.Contains(t, artifacts[0].Content, `case type::Y: return "Y";`)
}

func TestRenderFreeFunction(t *testing.T) {
	fn := &fixture.Cursor{
		KindV: front.CursorFunctionDecl, SpellingV: "f", QualifiedNameV: "demo::f",
		FromMainFile: true, AnnotationsV: []string{"LUX::META"}, Result: nil,
		Children: []*fixture.Cursor{
			{KindV: front.CursorParmDecl, SpellingV: "z", QualifiedNameV: "demo::f::z", TypeV: intType(), Index: 0},
		},
	}
	root := &fixture.Cursor{KindV: front.CursorTranslationUnit, Children: []*fixture.Cursor{fn}}
	adapter := &fixture.Adapter{Root: root}

	status, unit, err := parser.Parse(adapter, "f.h", parser.Options{Name: "demo", Version: "1.0"})
	require.NoError(t, err)
	require.Equal(t, parser.StatusOK, status)

	g := New(Config{})
	artifacts, errs := g.Render(unit, "demo.meta.hpp", "01TESTRUN0000000000000000")
	require.Empty(t, errs)
	require.Len(t, artifacts, 3)
	require.Contains(t, artifacts[2].Content, "demo_f_bridge")
}

// TestRenderSelfReferentialRecordForwardDeclares exercises spec.md §8
// scenario 4: struct Node { Node* next; int v; } must place Node's record
// type and its own pointer type in the same SCC, forward-declared together.
func TestRenderSelfReferentialRecordForwardDeclares(t *testing.T) {
	nodeType := &fixture.Type{KindV: front.TypeRecord, SpellingV: "demo::Node", Size: 16, Align: 8}
	nodePtr := &fixture.Type{KindV: front.TypePointer, SpellingV: "demo::Node *", Size: 8, Align: 8, Pointee: nodeType}

	node := &fixture.Cursor{
		KindV: front.CursorStructDecl, SpellingV: "Node", QualifiedNameV: "demo::Node",
		FromMainFile: true, AnnotationsV: []string{"LUX::META"}, TypeV: nodeType, Definition: true,
	}
	nodeType.DeclarationV = node

	next := &fixture.Cursor{KindV: front.CursorFieldDecl, SpellingV: "next", QualifiedNameV: "demo::Node::next", FromMainFile: true, TypeV: nodePtr, Index: 0}
	v := &fixture.Cursor{KindV: front.CursorFieldDecl, SpellingV: "v", QualifiedNameV: "demo::Node::v", FromMainFile: true, TypeV: intType(), Index: 1, OffsetBits: 64}
	node.Children = []*fixture.Cursor{next, v}

	root := &fixture.Cursor{KindV: front.CursorTranslationUnit, Children: []*fixture.Cursor{node}}
	adapter := &fixture.Adapter{Root: root}

	status, unit, err := parser.Parse(adapter, "node.h", parser.Options{Name: "demo", Version: "1.0"})
	require.NoError(t, err)
	require.Equal(t, parser.StatusOK, status)

	cyclic := cyclicDeclIDs(unit)
	require.True(t, cyclic[unit.MarkedRecords()[0].ID])

	g := New(Config{})
	artifacts, errs := g.Render(unit, "node.meta.hpp", "01TESTRUN0000000000000000")
	require.Empty(t, errs)
	require.Contains(t, artifacts[0].Content, "struct demo::Node;")
	require.Contains(t, artifacts[0].Content, "mutually dependent group")
}

// TestRenderIsDeterministic exercises spec.md §8's "idempotent generation"
// property: rendering the same Meta Unit twice produces byte-identical
// output.
func TestRenderIsDeterministic(t *testing.T) {
	uf := pointUnit(t)
	_, unit, err := parser.Parse(uf.adapter, "s.h", parser.Options{Name: "demo", Version: "1.0"})
	require.NoError(t, err)

	g := New(Config{})
	first, errs1 := g.Render(unit, "demo.meta.hpp", "01TESTRUN0000000000000000")
	require.Empty(t, errs1)
	second, errs2 := g.Render(unit, "demo.meta.hpp", "01TESTRUN0000000000000000")
	require.Empty(t, errs2)

	require.Len(t, first, len(second))
	for i := range first {
		require.Equal(t, first[i].Content, second[i].Content)
	}
}
