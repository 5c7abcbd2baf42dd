package meta

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInternDeclFirstWins(t *testing.T) {
	u := NewUnit("demo", "1.0")

	first := NewDecl(DeclRecord, "Foo", "demo::Foo")
	first.Size = 8
	second := NewDecl(DeclRecord, "Foo", "demo::Foo")
	second.Size = 999

	got1 := u.InternDecl(first)
	got2 := u.InternDecl(second)

	require.Same(t, got1, got2)
	require.Equal(t, int64(8), got2.Size, "duplicate id must not overwrite the first registration")
	require.Len(t, u.Decls(), 1)
}

func TestInternTypeFirstWins(t *testing.T) {
	u := NewUnit("demo", "1.0")

	a := newType(TypeBuiltin, "int")
	b := newType(TypeBuiltin, "int")
	b.Size = 4

	got1 := u.InternType(a)
	got2 := u.InternType(b)

	require.Same(t, got1, got2)
	require.Len(t, u.Types(), 1)
}

func TestMarkedListsOnlyMainFileAnnotated(t *testing.T) {
	u := NewUnit("demo", "1.0")

	marked := NewDecl(DeclRecord, "Marked", "demo::Marked")
	marked.OriginInMainFile = true
	marked.Annotations = []string{"serializable"}
	u.InternDecl(marked)

	unannotated := NewDecl(DeclRecord, "Plain", "demo::Plain")
	unannotated.OriginInMainFile = true
	u.InternDecl(unannotated)

	fromHeader := NewDecl(DeclRecord, "FromHeader", "std::FromHeader")
	fromHeader.OriginInMainFile = false
	fromHeader.Annotations = []string{"serializable"}
	u.InternDecl(fromHeader)

	require.Len(t, u.MarkedRecords(), 1)
	require.Equal(t, marked.ID, u.MarkedRecords()[0].ID)
}

func TestFindDeclAndType(t *testing.T) {
	u := NewUnit("demo", "1.0")
	d := u.InternDecl(NewDecl(DeclEnum, "Color", "demo::Color"))

	found, ok := u.FindDecl(d.ID)
	require.True(t, ok)
	require.Same(t, d, found)

	_, ok = u.FindDecl("nonexistent")
	require.False(t, ok)
}

func TestValidateRejectsNonBuiltinEnumUnderlyingType(t *testing.T) {
	u := NewUnit("demo", "1.0")

	record := u.InternDecl(NewDecl(DeclRecord, "Bad", "demo::Bad"))
	recordType := u.InternType(newType(TypeRecord, "demo::Bad"))
	recordType.Declaration = record

	e := NewDecl(DeclEnum, "Color", "demo::Color")
	e.OriginInMainFile = true
	e.UnderlyingType = recordType // invalid: must be Builtin
	u.InternDecl(e)

	err := u.Validate()
	require.Error(t, err)

	var invErr *InvariantError
	require.ErrorAs(t, err, &invErr)
	require.Equal(t, 6, invErr.Invariant)
}

func TestValidatePassesOnWellFormedUnit(t *testing.T) {
	u := NewUnit("demo", "1.0")

	intType := u.InternType(newType(TypeBuiltin, "int"))

	e := NewDecl(DeclEnum, "Color", "demo::Color")
	e.UnderlyingType = intType
	e.Enumerators = []Enumerator{{Name: "Red", Signed: 0, Unsigned: 0}}
	u.InternDecl(e)

	require.NoError(t, u.Validate())
}
