package depgraph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lux-cxx/godref/meta"
)

func recordType(id string) *meta.Type {
	return &meta.Type{Kind: meta.TypeRecord, ID: id, Spelling: id}
}

// TestOrderDependencyBeforeDependent asserts the core ordering property
// spec.md §8 requires: for any edge u→v (u depends on v), v's SCC appears
// no later than u's SCC in Order's output.
func TestOrderDependencyBeforeDependent(t *testing.T) {
	u := meta.NewUnit("demo", "1.0")

	leafDecl := u.InternDecl(meta.NewDecl(meta.DeclRecord, "Leaf", "demo::Leaf"))
	leafType := u.InternType(recordType("demo::Leaf"))
	leafType.Declaration = leafDecl

	rootDecl := u.InternDecl(meta.NewDecl(meta.DeclRecord, "Root", "demo::Root"))
	rootType := u.InternType(recordType("demo::Root"))
	rootType.Declaration = rootDecl

	field := meta.NewDecl(meta.DeclField, "leaf", "demo::Root::leaf")
	field.Type = leafType
	u.InternDecl(field)
	rootDecl.Fields = []*meta.Decl{field}

	sccs := Order(u.Types())
	require.Len(t, sccs, 2)

	leafPos, rootPos := -1, -1
	for i, scc := range sccs {
		for _, ty := range scc.Types {
			if ty.ID == "demo::Leaf" {
				leafPos = i
			}
			if ty.ID == "demo::Root" {
				rootPos = i
			}
		}
	}
	require.NotEqual(t, -1, leafPos)
	require.NotEqual(t, -1, rootPos)
	require.Less(t, leafPos, rootPos, "Root depends on Leaf, so Leaf's SCC must be emitted first")
}

// TestOrderDetectsCycle asserts that two mutually-referencing records (via
// pointer fields) collapse into a single cyclic SCC.
func TestOrderDetectsCycle(t *testing.T) {
	u := meta.NewUnit("demo", "1.0")

	aDecl := u.InternDecl(meta.NewDecl(meta.DeclRecord, "A", "demo::A"))
	aType := u.InternType(recordType("demo::A"))
	aType.Declaration = aDecl

	bDecl := u.InternDecl(meta.NewDecl(meta.DeclRecord, "B", "demo::B"))
	bType := u.InternType(recordType("demo::B"))
	bType.Declaration = bDecl

	aToB := u.InternType(&meta.Type{Kind: meta.TypePointer, ID: "demo::B*", Spelling: "demo::B*", Pointee: bType})
	bToA := u.InternType(&meta.Type{Kind: meta.TypePointer, ID: "demo::A*", Spelling: "demo::A*", Pointee: aType})

	aField := meta.NewDecl(meta.DeclField, "b", "demo::A::b")
	aField.Type = aToB
	u.InternDecl(aField)
	aDecl.Fields = []*meta.Decl{aField}

	bField := meta.NewDecl(meta.DeclField, "a", "demo::B::a")
	bField.Type = bToA
	u.InternDecl(bField)
	bDecl.Fields = []*meta.Decl{bField}

	sccs := Order(u.Types())

	var found *SCC
	for i := range sccs {
		names := map[string]bool{}
		for _, ty := range sccs[i].Types {
			names[ty.ID] = true
		}
		if names["demo::A"] && names["demo::B"] {
			found = &sccs[i]
		}
	}
	require.NotNil(t, found, "A and B must land in the same SCC")
	require.True(t, found.Cyclic)
}

// TestOrderIsDeterministic asserts re-running Order on the same types
// produces byte-identical ordering.
func TestOrderIsDeterministic(t *testing.T) {
	u := meta.NewUnit("demo", "1.0")
	for _, name := range []string{"A", "B", "C"} {
		d := u.InternDecl(meta.NewDecl(meta.DeclRecord, name, "demo::"+name))
		ty := u.InternType(recordType("demo::" + name))
		ty.Declaration = d
	}

	first := Order(u.Types())
	second := Order(u.Types())

	require.Equal(t, len(first), len(second))
	for i := range first {
		require.Equal(t, len(first[i].Types), len(second[i].Types))
		for j := range first[i].Types {
			require.Same(t, first[i].Types[j], second[i].Types[j])
		}
	}
}
