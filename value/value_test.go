package value_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halcyon-io/rmarshal/value"
)

func TestSymbolEquality(t *testing.T) {
	a := value.NewSymbol([]byte("hello"))
	b := value.NewSymbol([]byte("hello"))
	c := value.NewSymbol([]byte("world"))

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
	require.Equal(t, a.Hash(), b.Hash())
}

func TestSymbolUTF8(t *testing.T) {
	valid := value.NewSymbol([]byte("abc"))
	s, ok := valid.UTF8()
	require.True(t, ok)
	require.Equal(t, "abc", s)

	invalid := value.NewSymbol([]byte{0xc3, 0x28})
	_, ok = invalid.UTF8()
	require.False(t, ok)
}

func TestDeepEqualScalarsAndSharing(t *testing.T) {
	require.True(t, value.Equal(value.Nil{}, value.Nil{}))
	require.True(t, value.Equal(value.Int(5), value.Int(5)))
	require.False(t, value.Equal(value.Int(5), value.Int(6)))

	arr1 := value.NewArray([]value.Value{value.Int(1), value.True{}})
	arr2 := value.NewArray([]value.Value{value.Int(1), value.True{}})
	require.True(t, value.Equal(arr1, arr2), "distinct handles with identical content are deeply equal")
	require.NotEqual(t, arr1.Identity(), arr2.Identity())
}

func TestDeepEqualSharedHandleShortCircuits(t *testing.T) {
	f := value.NewFloat(1.5)
	clone := f
	require.True(t, value.Equal(f, clone))
	require.Equal(t, f.Identity(), clone.Identity())
}

func TestSelfReferentialArrayComparesEqualToItself(t *testing.T) {
	arr := value.NewArray(nil)
	arr.Set([]value.Value{arr})

	require.True(t, value.Equal(arr, arr))
	require.Equal(t, 0, value.Compare(arr, arr))
}

func TestSelfReferentialArraysOfEqualShapeCompareEqual(t *testing.T) {
	a := value.NewArray(nil)
	a.Set([]value.Value{a})

	b := value.NewArray(nil)
	b.Set([]value.Value{b})

	require.True(t, value.Equal(a, b))
}

func TestCompareKindOrdinal(t *testing.T) {
	require.Negative(t, value.Compare(value.Nil{}, value.False{}))
	require.Negative(t, value.Compare(value.False{}, value.True{}))
	require.Negative(t, value.Compare(value.True{}, value.Int(0)))
	require.Negative(t, value.Compare(value.Int(0), value.NewSymbol([]byte("x"))))
	require.Negative(t, value.Compare(value.NewSymbol([]byte("x")), value.NewArray(nil)))
}

func TestCompareFloatNaNFallsBackToIdentity(t *testing.T) {
	a := value.NewFloat(math.NaN())
	b := value.NewFloat(math.NaN())

	// NaN != NaN structurally, so comparison falls back to handle
	// identity; it must still be total (antisymmetric) and must not
	// panic or loop.
	cmp := value.Compare(a, b)
	require.NotPanics(t, func() { value.Compare(a, b) })
	require.Equal(t, -cmp, value.Compare(b, a))
}

func TestChildLookup(t *testing.T) {
	arr := value.NewArray([]value.Value{value.Int(10), value.Int(20)})
	got, ok := value.Child(arr, value.Int(1))
	require.True(t, ok)
	require.Equal(t, value.Int(20), got)

	_, ok = value.Child(arr, value.Int(5))
	require.False(t, ok)

	fields := value.NewSymbolFieldMap()
	fields.Set(value.NewSymbol([]byte("age")), value.Int(42))
	obj := value.NewObject(value.NewSymbol([]byte("Foo")), fields)

	got, ok = value.Child(obj, value.NewSymbol([]byte("age")))
	require.True(t, ok)
	require.Equal(t, value.Int(42), got)

	ext := value.NewExtended(value.NewSymbol([]byte("Bar")), arr)
	got, ok = value.Child(ext, value.Int(0))
	require.True(t, ok)
	require.Equal(t, value.Int(10), got)
}

func TestOrderedMapInsertionOrder(t *testing.T) {
	m := value.NewSymbolFieldMap()
	keys := []string{"z", "a", "m", "b"}
	for i, k := range keys {
		m.Set(value.NewSymbol([]byte(k)), value.Int(i))
	}

	entries := m.Entries()
	require.Len(t, entries, 4)
	for i, k := range keys {
		s, ok := entries[i].Key.UTF8()
		require.True(t, ok)
		require.Equal(t, k, s)
	}

	m.Set(value.NewSymbol([]byte("a")), value.Int(99))
	entries = m.Entries()
	require.Equal(t, 4, m.Len())
	s, _ := entries[1].Key.UTF8()
	require.Equal(t, "a", s)
	require.Equal(t, value.Int(99), entries[1].Val)

	m.Delete(value.NewSymbol([]byte("m")))
	require.Equal(t, 3, m.Len())
	remaining := []string{"z", "a", "b"}
	for i, k := range remaining {
		s, _ := m.Entries()[i].Key.UTF8()
		require.Equal(t, k, s)
	}
}

func TestHashValueScalarsDeterministic(t *testing.T) {
	require.Equal(t, value.HashValue(value.Int(7)), value.HashValue(value.Int(7)))
	require.NotEqual(t, value.HashValue(value.Int(7)), value.HashValue(value.Int(8)))
}

func TestBigIntCompare(t *testing.T) {
	a := value.NewBigInt(big.NewInt(100))
	b := value.NewBigInt(big.NewInt(200))
	require.Negative(t, value.Compare(a, b))
}
