package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lux-cxx/godref/front"
	"github.com/lux-cxx/godref/front/fixture"
	"github.com/lux-cxx/godref/meta"
)

func intType() *fixture.Type {
	return &fixture.Type{KindV: front.TypeBuiltin, SpellingV: "int", Size: 4, Align: 4}
}

// TestParsePlainRecord exercises spec.md §8's "plain record" scenario: a
// simple struct with two fields parses into a marked RecordDecl with its
// fields in declared order.
func TestParsePlainRecord(t *testing.T) {
	point := &fixture.Cursor{
		KindV:          front.CursorStructDecl,
		SpellingV:      "Point",
		QualifiedNameV: "demo::Point",
		FromMainFile:   true,
		Definition:     true,
		AnnotationsV:   []string{"serializable"},
		TypeV:          &fixture.Type{KindV: front.TypeRecord, SpellingV: "demo::Point", Size: 8, Align: 4},
	}
	x := &fixture.Cursor{KindV: front.CursorFieldDecl, SpellingV: "x", QualifiedNameV: "demo::Point::x", FromMainFile: true, TypeV: intType(), Index: 0}
	y := &fixture.Cursor{KindV: front.CursorFieldDecl, SpellingV: "y", QualifiedNameV: "demo::Point::y", FromMainFile: true, TypeV: intType(), Index: 1, OffsetBits: 32}
	point.Children = []*fixture.Cursor{x, y}

	root := &fixture.Cursor{KindV: front.CursorTranslationUnit, Children: []*fixture.Cursor{point}}
	adapter := &fixture.Adapter{Root: root}

	status, unit, err := Parse(adapter, "point.h", Options{Name: "demo", Version: "1.0"})
	require.NoError(t, err)
	require.Equal(t, StatusOK, status)
	require.Len(t, unit.MarkedRecords(), 1)

	d := unit.MarkedRecords()[0]
	require.Equal(t, "demo::Point", d.QualifiedName)
	require.Len(t, d.Fields, 2)
	require.Equal(t, "x", d.Fields[0].Name)
	require.Equal(t, "y", d.Fields[1].Name)
	require.Equal(t, int64(4), d.Fields[1].Offset)
}

// TestParseRecordWithoutConstructorGetsImplicitDefault exercises spec.md
// §4.2 step 2's "implicit default when none exists" rule and invariant 3
// ("Record.constructors[*].return is the record's own type").
func TestParseRecordWithoutConstructorGetsImplicitDefault(t *testing.T) {
	plain := &fixture.Cursor{
		KindV:          front.CursorStructDecl,
		SpellingV:      "Plain",
		QualifiedNameV: "demo::Plain",
		FromMainFile:   true,
		Definition:     true,
		AnnotationsV:   []string{"serializable"},
		TypeV:          &fixture.Type{KindV: front.TypeRecord, SpellingV: "demo::Plain", Size: 4, Align: 4},
	}
	root := &fixture.Cursor{KindV: front.CursorTranslationUnit, Children: []*fixture.Cursor{plain}}
	adapter := &fixture.Adapter{Root: root}

	status, unit, err := Parse(adapter, "plain.h", Options{Name: "demo", Version: "1.0"})
	require.NoError(t, err)
	require.Equal(t, StatusOK, status)

	d := unit.MarkedRecords()[0]
	require.Len(t, d.Constructors, 1)
	ctor := d.Constructors[0]
	require.Empty(t, ctor.Parameters)
	require.NotNil(t, ctor.ReturnType)
	require.Equal(t, meta.TypeRecord, ctor.ReturnType.Kind)
	require.Same(t, d, ctor.ReturnType.Declaration)
}

// TestParseScopedEnum exercises spec.md §8's scoped-enum scenario.
func TestParseScopedEnum(t *testing.T) {
	color := &fixture.Cursor{
		KindV:          front.CursorEnumDecl,
		SpellingV:      "Color",
		QualifiedNameV: "demo::Color",
		FromMainFile:   true,
		AnnotationsV:   []string{"reflect"},
		ScopedEnum:     true,
		EnumUnderlying: &fixture.Type{KindV: front.TypeBuiltin, SpellingV: "unsigned int", Size: 4, Align: 4},
		Children: []*fixture.Cursor{
			{KindV: front.CursorEnumConstantDecl, SpellingV: "Red", EnumSigned: 0, EnumUnsigned: 0},
			{KindV: front.CursorEnumConstantDecl, SpellingV: "Blue", EnumSigned: 1, EnumUnsigned: 1},
		},
	}
	root := &fixture.Cursor{KindV: front.CursorTranslationUnit, Children: []*fixture.Cursor{color}}
	adapter := &fixture.Adapter{Root: root}

	status, unit, err := Parse(adapter, "color.h", Options{Name: "demo", Version: "1.0"})
	require.NoError(t, err)
	require.Equal(t, StatusOK, status)
	require.Len(t, unit.MarkedEnums(), 1)

	d := unit.MarkedEnums()[0]
	require.True(t, d.Scoped)
	require.Len(t, d.Enumerators, 2)
	require.Equal(t, meta.TypeBuiltin, d.UnderlyingType.Kind)
}

// TestParseFreeFunction exercises spec.md §8's free-function scenario.
func TestParseFreeFunction(t *testing.T) {
	fn := &fixture.Cursor{
		KindV:          front.CursorFunctionDecl,
		SpellingV:      "add",
		QualifiedNameV: "demo::add",
		FromMainFile:   true,
		AnnotationsV:   []string{"export"},
		Result:         intType(),
		Children: []*fixture.Cursor{
			{KindV: front.CursorParmDecl, SpellingV: "a", QualifiedNameV: "demo::add::a", TypeV: intType(), Index: 0},
			{KindV: front.CursorParmDecl, SpellingV: "b", QualifiedNameV: "demo::add::b", TypeV: intType(), Index: 1},
		},
	}
	root := &fixture.Cursor{KindV: front.CursorTranslationUnit, Children: []*fixture.Cursor{fn}}
	adapter := &fixture.Adapter{Root: root}

	status, unit, err := Parse(adapter, "add.h", Options{Name: "demo", Version: "1.0"})
	require.NoError(t, err)
	require.Equal(t, StatusOK, status)
	require.Len(t, unit.MarkedFunctions(), 1)
	require.Len(t, unit.MarkedFunctions()[0].Parameters, 2)
}

// TestParseSkipsStdNamespaceByDefault exercises the default skip-set.
func TestParseSkipsStdNamespaceByDefault(t *testing.T) {
	hidden := &fixture.Cursor{
		KindV: front.CursorStructDecl, SpellingV: "vector", QualifiedNameV: "std::vector",
		FromMainFile: false, Definition: true, AnnotationsV: []string{"x"},
	}
	std := &fixture.Cursor{KindV: front.CursorNamespace, SpellingV: "std", Children: []*fixture.Cursor{hidden}}
	root := &fixture.Cursor{KindV: front.CursorTranslationUnit, Children: []*fixture.Cursor{std}}
	adapter := &fixture.Adapter{Root: root}

	_, unit, err := Parse(adapter, "x.h", Options{Name: "demo", Version: "1.0"})
	require.NoError(t, err)
	require.Empty(t, unit.Decls())
}

// TestParseFrontEndErrorIsFatal exercises the FrontEndError propagation
// path when the adapter itself fails.
type failingAdapter struct{ fixture.Adapter }

func (f *failingAdapter) OpenTranslationUnit(path string, extraArgs []string) error {
	return assertErr
}

var assertErr = &frontFailure{}

type frontFailure struct{}

func (*frontFailure) Error() string { return "boom" }

func TestParseFrontEndErrorIsFatal(t *testing.T) {
	adapter := &failingAdapter{}
	status, unit, err := Parse(adapter, "bad.h", Options{Name: "demo", Version: "1.0"})
	require.Error(t, err)
	require.Equal(t, StatusFrontEndError, status)
	require.Nil(t, unit)

	var feErr *FrontEndError
	require.ErrorAs(t, err, &feErr)
}
