package meta

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildSampleUnit() *Unit {
	u := NewUnit("sample", "1.0.0")

	intType := u.InternType(newType(TypeBuiltin, "int"))
	recordType := u.InternType(newType(TypeRecord, "demo::Point"))

	xField := NewDecl(DeclField, "x", "demo::Point::x")
	xField.Type = intType
	xField.Index = 0
	u.InternDecl(xField)

	yField := NewDecl(DeclField, "y", "demo::Point::y")
	yField.Type = intType
	yField.Index = 1
	u.InternDecl(yField)

	record := NewDecl(DeclRecord, "Point", "demo::Point")
	record.RecordKind = RecordStruct
	record.OriginInMainFile = true
	record.Annotations = []string{"serializable"}
	record.Fields = []*Decl{xField, yField}
	record.Size = 8
	record.Align = 4
	u.InternDecl(record)

	recordType.Declaration = record

	return u
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	u := buildSampleUnit()

	data, err := u.Marshal()
	require.NoError(t, err)

	reloaded, err := Unmarshal(data)
	require.NoError(t, err)

	require.Equal(t, u.Name, reloaded.Name)
	require.Equal(t, u.Version, reloaded.Version)
	require.Equal(t, u.ID, reloaded.ID)
	require.Len(t, reloaded.Decls(), len(u.Decls()))
	require.Len(t, reloaded.Types(), len(u.Types()))
	require.Len(t, reloaded.MarkedRecords(), 1)

	point, ok := reloaded.FindDecl("RecordDecl:demo::Point")
	require.True(t, ok)
	require.Equal(t, RecordStruct, point.RecordKind)
	require.Len(t, point.Fields, 2)
	require.Equal(t, "x", point.Fields[0].Name)
	require.NotNil(t, point.Fields[0].Type)
	require.Equal(t, "int", point.Fields[0].Type.Spelling)
}

func TestMarshalIsDeterministic(t *testing.T) {
	u := buildSampleUnit()

	first, err := u.Marshal()
	require.NoError(t, err)
	second, err := u.Marshal()
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestUnmarshalRejectsDanglingTypeReference(t *testing.T) {
	doc := Document{
		Name:    "broken",
		Version: "1.0",
		Declarations: []declJSON{
			{
				Kind:          "FieldDecl",
				ID:            "FieldDecl:demo::Bad::f",
				Name:          "f",
				QualifiedName: "demo::Bad::f",
				Type:          "int", // never declared in Types
			},
		},
	}

	_, err := FromJSON(doc)
	require.Error(t, err)
}

func TestEnumRoundTripPreservesSignedAndUnsigned(t *testing.T) {
	u := NewUnit("enums", "1.0")
	intType := u.InternType(newType(TypeBuiltin, "unsigned int"))

	e := NewDecl(DeclEnum, "Flags", "demo::Flags")
	e.Scoped = true
	e.UnderlyingType = intType
	e.Enumerators = []Enumerator{
		{Name: "None", Signed: 0, Unsigned: 0},
		{Name: "All", Signed: -1, Unsigned: 0xFFFFFFFF},
	}
	u.InternDecl(e)

	data, err := u.Marshal()
	require.NoError(t, err)

	reloaded, err := Unmarshal(data)
	require.NoError(t, err)

	got, ok := reloaded.FindDecl("EnumDecl:demo::Flags")
	require.True(t, ok)
	require.True(t, got.Scoped)
	require.Len(t, got.Enumerators, 2)
	require.Equal(t, uint64(0xFFFFFFFF), got.Enumerators[1].Unsigned)
	require.Equal(t, int64(-1), got.Enumerators[1].Signed)
}
