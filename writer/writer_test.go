package writer_test

import (
	"bytes"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halcyon-io/rmarshal/reader"
	"github.com/halcyon-io/rmarshal/value"
	"github.com/halcyon-io/rmarshal/writer"
)

func roundTrip(t *testing.T, v value.Value) value.Value {
	t.Helper()

	var buf bytes.Buffer
	_, err := writer.New(&buf).Write(v)
	require.NoError(t, err)

	got, err := reader.New(&buf).Read()
	require.NoError(t, err)

	return got
}

func TestWriteArrayOfStringAndHashRoundTrips(t *testing.T) {
	fields := value.NewValueFieldMap()
	fields.Set(value.NewSymbol([]byte("a")), value.NewStr("b"))
	h := value.NewHash(fields)
	arr := value.NewArray([]value.Value{value.NewStr("test"), h})

	got := roundTrip(t, arr)
	require.True(t, value.Equal(arr, got))
}

func TestWriteNamedObjectsByteIdenticalToSpecExample(t *testing.T) {
	in := []byte("\x04\x08[\x07o:\x08Foo\x07:\n@nameI\"\tJack\x06:\x06ET:\t@agei\x1Eo;\x00\x07;\x06I\"\tJane\x06;\x07T;\x08i\x1D")

	v, err := reader.New(bytes.NewReader(in)).Read()
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = writer.New(&buf).Write(v)
	require.NoError(t, err)

	require.Equal(t, in, buf.Bytes())
}

func TestWriteSelfReferentialArrayPreservesIdentity(t *testing.T) {
	arr := value.NewArray(nil)
	arr.Set([]value.Value{arr})

	got := roundTrip(t, arr)

	gotArr, ok := got.(value.Array)
	require.True(t, ok)
	require.Len(t, gotArr.Items(), 1)

	inner, ok := gotArr.Items()[0].(value.Array)
	require.True(t, ok)
	require.Equal(t, gotArr.Identity(), inner.Identity())
}

func TestWriteSharedHandleEmitsOneDefinitionAndBackReferences(t *testing.T) {
	fields := value.NewSymbolFieldMap()
	fields.Set(value.NewSymbol([]byte("name")), value.NewStr("Jack"))
	shared := value.NewObject(value.NewSymbol([]byte("Foo")), fields)

	arr := value.NewArray([]value.Value{shared, shared, shared})

	got := roundTrip(t, arr)

	gotArr, ok := got.(value.Array)
	require.True(t, ok)
	require.Len(t, gotArr.Items(), 3)

	o0 := gotArr.Items()[0].(value.Object)
	o1 := gotArr.Items()[1].(value.Object)
	o2 := gotArr.Items()[2].(value.Object)
	require.Equal(t, o0.Identity(), o1.Identity())
	require.Equal(t, o1.Identity(), o2.Identity())
}

func TestWriteBigIntRoundTrips(t *testing.T) {
	for _, n := range []int64{0, 1, -1, 0x1FFFF, -0x1FFFF} {
		bi := value.NewBigInt(big.NewInt(n))
		got := roundTrip(t, bi)
		require.Equal(t, n, got.(value.BigInt).Get().Int64())
	}
}

func TestWriteFloatSpecialValues(t *testing.T) {
	inf := roundTrip(t, value.NewFloat(math.Inf(1)))
	require.True(t, math.IsInf(inf.(value.Float).Get(), 1))

	ninf := roundTrip(t, value.NewFloat(math.Inf(-1)))
	require.True(t, math.IsInf(ninf.(value.Float).Get(), -1))

	nan := roundTrip(t, value.NewFloat(math.NaN()))
	require.True(t, math.IsNaN(nan.(value.Float).Get()))

	ordinary := roundTrip(t, value.NewFloat(-1196073.75))
	require.InDelta(t, -1196073.75, ordinary.(value.Float).Get(), 1e-9)
}

func TestWriteFloatsByteIdenticalToSpecExample(t *testing.T) {
	// Scenario 5: legacy NUL-terminated float re-encodes to the canonical,
	// NUL-free form; an ordinary large-magnitude value must stay
	// fixed-point rather than switching to scientific notation.
	in := []byte("\x04\x08[\x08f\x0D0.123\x00NOf\n1.234f\x10-1196073.75")
	want := []byte("\x04\x08[\x08f\n0.123f\n1.234f\x10-1196073.75")

	v, err := reader.New(bytes.NewReader(in)).Read()
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = writer.New(&buf).Write(v)
	require.NoError(t, err)

	require.Equal(t, want, buf.Bytes())
}

func TestWriteExtendedOverEmptyArray(t *testing.T) {
	ext := value.NewExtended(value.NewSymbol([]byte("Bar")), value.NewArray(nil))
	got := roundTrip(t, ext)

	gotExt, ok := got.(value.Extended)
	require.True(t, ok)
	mod, _ := gotExt.Module().UTF8()
	require.Equal(t, "Bar", mod)
	require.Empty(t, gotExt.Object().(value.Array).Items())
}

func TestWriteRawBinaryStringRoundTrips(t *testing.T) {
	raw := []byte{0xc3, 0x28, 0x34}
	si := value.NewStrI(raw, nil)

	got := roundTrip(t, si)
	gotSi, ok := got.(value.StrI)
	require.True(t, ok)
	require.Equal(t, raw, gotSi.Bytes())
}
