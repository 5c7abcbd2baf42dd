package registry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterIsIdempotentOnHash(t *testing.T) {
	r := New()

	m1 := &FundamentalMeta{NameV: "int", HashV: 1, Size: 4, Align: 4}
	m2 := &FundamentalMeta{NameV: "int", HashV: 1, Size: 999, Align: 999} // same hash, different payload

	require.NoError(t, r.Register(KindFundamental, m1))
	require.NoError(t, r.Register(KindFundamental, m2))

	require.Equal(t, 1, r.Len(KindFundamental))
	kind, found, ok := r.Find(1)
	require.True(t, ok)
	require.Equal(t, KindFundamental, kind)
	require.Equal(t, int64(4), found.(*FundamentalMeta).Size, "first registration must win")
}

func TestRegisterAfterSealFails(t *testing.T) {
	r := New()
	r.Seal()

	err := r.Register(KindFundamental, &FundamentalMeta{NameV: "int", HashV: 1})
	require.Error(t, err)
	require.False(t, r.Has(1))
}

func TestFindByNameAndAt(t *testing.T) {
	r := New()
	a := &RecordMeta{NameV: "demo::A", HashV: 10}
	b := &RecordMeta{NameV: "demo::B", HashV: 11}

	require.NoError(t, r.Register(KindRecord, a))
	require.NoError(t, r.Register(KindRecord, b))

	kind, found, ok := r.FindByName("demo::B")
	require.True(t, ok)
	require.Equal(t, KindRecord, kind)
	require.Same(t, b, found)

	at0, ok := r.At(KindRecord, 0)
	require.True(t, ok)
	require.Same(t, a, at0)

	_, ok = r.At(KindRecord, 5)
	require.False(t, ok)
}
