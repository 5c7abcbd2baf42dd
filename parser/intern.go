package parser

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/lux-cxx/godref/front"
	"github.com/lux-cxx/godref/meta"
)

const defaultInternCacheSize = 1024

// interner builds meta.Type nodes from front.Type facades, memoizing
// work-in-progress results by canonical spelling so that a spelling
// revisited many times within one parse (e.g. "int" appearing in a dozen
// signatures, or a record pointing at itself) is only recursively
// materialized once. This is a performance-only layer: the cache key is
// the canonical spelling itself, so it changes no observable Unit content,
// mirroring the teacher's schema.Introspect three-tier cache adapted from
// struct-reflection metadata to single-parse type interning.
type interner struct {
	unit  *meta.Unit
	cache *lru.Cache[string, *meta.Type]
}

func newInterner(unit *meta.Unit, size int) *interner {
	if size <= 0 {
		size = defaultInternCacheSize
	}
	c, _ := lru.New[string, *meta.Type](size)
	return &interner{unit: unit, cache: c}
}

// internType resolves ft into the Unit's type arena, recursing into
// pointee/element/return/argument types as needed. Returns nil if ft is
// nil (e.g. a void return type).
func (in *interner) internType(ft front.Type) *meta.Type {
	if ft == nil {
		return nil
	}
	spelling := ft.Spelling()

	if cached, ok := in.cache.Get(spelling); ok {
		return cached
	}
	if existing, ok := in.unit.FindType(spelling); ok {
		in.cache.Add(spelling, existing)
		return existing
	}

	t := &meta.Type{
		Spelling:   spelling,
		ID:         spelling,
		Hash:       meta.FNV1a(spelling),
		Size:       ft.SizeOf(),
		Align:      ft.AlignOf(),
		IsConst:    ft.IsConstQualified(),
		IsVolatile: ft.IsVolatileQualified(),
	}

	switch ft.Kind() {
	case front.TypeBuiltin:
		t.Kind = meta.TypeBuiltin
	case front.TypePointer, front.TypeMemberPointer:
		t.Kind = meta.TypePointer
		t.PointerKind = classifyPointer(ft)
		in.cache.Add(spelling, t)
		in.unit.InternType(t)
		t.Pointee = in.internType(ft.PointeeType())
		t.MemberOwner = in.internType(ft.ClassOfMemberPointer())
		return t
	case front.TypeLValueReference:
		t.Kind = meta.TypeLvalueReference
		in.cache.Add(spelling, t)
		in.unit.InternType(t)
		t.Referred = in.internType(ft.PointeeType())
		return t
	case front.TypeRValueReference:
		t.Kind = meta.TypeRvalueReference
		in.cache.Add(spelling, t)
		in.unit.InternType(t)
		t.Referred = in.internType(ft.PointeeType())
		return t
	case front.TypeConstantArray, front.TypeIncompleteArray:
		t.Kind = meta.TypeArray
		t.Extent = ft.ArraySize()
		in.cache.Add(spelling, t)
		in.unit.InternType(t)
		t.Element = in.internType(ft.ElementType())
		return t
	case front.TypeRecord:
		t.Kind = meta.TypeRecord
	case front.TypeEnum:
		t.Kind = meta.TypeEnum
	case front.TypeFunctionProto:
		t.Kind = meta.TypeFunction
		t.IsVariadic = ft.IsFunctionTypeVariadic()
		in.cache.Add(spelling, t)
		in.unit.InternType(t)
		t.Return = in.internType(ft.ResultType())
		for _, a := range ft.ArgTypes() {
			t.Parameters = append(t.Parameters, in.internType(a))
		}
		return t
	default:
		t.Kind = meta.TypeUnsupported
	}

	in.cache.Add(spelling, t)
	return in.unit.InternType(t)
}

// ensureRecordType returns the Unit's Type node for a record's own type,
// creating it if nothing in the translation unit has referenced this
// record's spelling yet. Without this, a record with no self-referential
// field and no other record pointing at it would never get a Type node to
// hand its implicit default constructor as a return type, violating
// spec.md §3 invariant 3 ("Record.constructors[*].return is the record's
// own type").
func (in *interner) ensureRecordType(spelling string, size, align int64) *meta.Type {
	if cached, ok := in.cache.Get(spelling); ok {
		return cached
	}
	if existing, ok := in.unit.FindType(spelling); ok {
		in.cache.Add(spelling, existing)
		return existing
	}
	t := &meta.Type{
		Kind:     meta.TypeRecord,
		ID:       spelling,
		Hash:     meta.FNV1a(spelling),
		Spelling: spelling,
		Size:     size,
		Align:    align,
	}
	in.cache.Add(spelling, t)
	return in.unit.InternType(t)
}

// linkDeclaration backfills the Declaration field of a previously-interned
// Record/Enum type once its Decl has been built. Record and Enum types are
// interned by spelling before their Decl exists (a self-referential record
// field would otherwise deadlock the recursion), so this is a required
// second step whenever buildRecord/buildEnum finish constructing a Decl.
func (in *interner) linkDeclaration(qualifiedName string, d *meta.Decl) {
	if t, ok := in.unit.FindType(qualifiedName); ok {
		t.Declaration = d
		if t.Kind == meta.TypeEnum && d.UnderlyingType != nil {
			t.UnderlyingType = d.UnderlyingType
			if d.Scoped {
				t.EnumVariant = meta.EnumScoped
			}
		}
	}
}

func classifyPointer(ft front.Type) meta.PointerKind {
	pointee := ft.PointeeType()
	if pointee != nil && pointee.Kind() == front.TypeFunctionProto {
		return meta.PointerToFunction
	}
	if ft.ClassOfMemberPointer() != nil {
		if pointee != nil && pointee.Kind() == front.TypeFunctionProto {
			return meta.PointerToMemberFunction
		}
		return meta.PointerToDataMember
	}
	return meta.PointerToObject
}
