package reader_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halcyon-io/rmarshal/reader"
	"github.com/halcyon-io/rmarshal/value"
)

func decodeBytes(t *testing.T, b []byte, opts ...reader.Option) value.Value {
	t.Helper()

	v, err := reader.New(bytes.NewReader(b), opts...).Read()
	require.NoError(t, err)

	return v
}

func TestReadBadHeader(t *testing.T) {
	_, err := reader.New(bytes.NewReader([]byte{0x04, 0x09, 'T'})).Read()
	require.Error(t, err)
}

func TestReadShortHeader(t *testing.T) {
	_, err := reader.New(bytes.NewReader([]byte{0x04})).Read()
	require.Error(t, err)
}

func TestReadArrayOfStringAndHash(t *testing.T) {
	// [ "test", { :a => "b" } ]
	in := []byte("\x04\x08[\x07I\"\ttest\x06:\x06ET{\x06:\x06aI\"\x06b\x06;\x00T")
	v := decodeBytes(t, in)

	arr, ok := v.(value.Array)
	require.True(t, ok)
	require.Len(t, arr.Items(), 2)

	s, ok := arr.Items()[0].(value.Str)
	require.True(t, ok)
	require.Equal(t, "test", s.Get())

	h, ok := arr.Items()[1].(value.Hash)
	require.True(t, ok)
	require.Equal(t, 1, h.Entries().Len())

	key := value.NewSymbol([]byte("a"))
	got, ok := h.Entries().Get(key)
	require.True(t, ok)
	require.Equal(t, "b", got.(value.Str).Get())
}

func TestReadArrayOfTwoNamedObjects(t *testing.T) {
	in := []byte("\x04\x08[\x07o:\x08Foo\x07:\n@nameI\"\tJack\x06:\x06ET:\t@agei\x1Eo;\x00\x07;\x06I\"\tJane\x06;\x07T;\x08i\x1D")
	v := decodeBytes(t, in)

	arr, ok := v.(value.Array)
	require.True(t, ok)
	require.Len(t, arr.Items(), 2)

	jack, ok := arr.Items()[0].(value.Object)
	require.True(t, ok)
	name, _ := jack.Name().UTF8()
	require.Equal(t, "Foo", name)

	nameField, ok := jack.Fields().Get(value.NewSymbol([]byte("@name")))
	require.True(t, ok)
	require.Equal(t, "Jack", nameField.(value.Str).Get())

	ageField, ok := jack.Fields().Get(value.NewSymbol([]byte("@age")))
	require.True(t, ok)
	require.Equal(t, value.Int(25), ageField)

	jane, ok := arr.Items()[1].(value.Object)
	require.True(t, ok)
	janeName, ok := jane.Fields().Get(value.NewSymbol([]byte("@name")))
	require.True(t, ok)
	require.Equal(t, "Jane", janeName.(value.Str).Get())
}

func TestReadSharedObjectReferencedFiveTimes(t *testing.T) {
	in := []byte("\x04\x08[\no:\x08Foo\x07:\n@nameI\"\tJack\x06:\x06ET:\t@agei\x1E@\x06{\x06:\x08key@\x06o;\x00\x07;\x06I\"\tJane\x06;\x07T;\x08i\x1D@\t")
	v := decodeBytes(t, in)

	arr, ok := v.(value.Array)
	require.True(t, ok)
	require.Len(t, arr.Items(), 5)

	jack0, ok := arr.Items()[0].(value.Object)
	require.True(t, ok)
	jack1, ok := arr.Items()[1].(value.Object)
	require.True(t, ok)
	require.Equal(t, jack0.Identity(), jack1.Identity())

	h, ok := arr.Items()[2].(value.Hash)
	require.True(t, ok)
	hashVal, ok := h.Entries().Get(value.NewSymbol([]byte("key")))
	require.True(t, ok)
	require.Equal(t, jack0.Identity(), hashVal.(value.Object).Identity())

	jane3, ok := arr.Items()[3].(value.Object)
	require.True(t, ok)
	jane4, ok := arr.Items()[4].(value.Object)
	require.True(t, ok)
	require.Equal(t, jane3.Identity(), jane4.Identity())
	require.NotEqual(t, jack0.Identity(), jane3.Identity())
}

func TestReadExtendedOverEmptyArray(t *testing.T) {
	in := []byte("\x04\x08e:\x08Bar[\x00")
	v := decodeBytes(t, in)

	ext, ok := v.(value.Extended)
	require.True(t, ok)
	mod, _ := ext.Module().UTF8()
	require.Equal(t, "Bar", mod)

	arr, ok := ext.Object().(value.Array)
	require.True(t, ok)
	require.Empty(t, arr.Items())
}

func TestReadFloatsIncludingLegacyNulTerminatedForm(t *testing.T) {
	in := []byte("\x04\x08[\x08f\x0D0.123\x00NOf\n1.234f\x10-1196073.75")
	v := decodeBytes(t, in)

	arr, ok := v.(value.Array)
	require.True(t, ok)
	require.Len(t, arr.Items(), 3)

	require.InDelta(t, 0.123, arr.Items()[0].(value.Float).Get(), 1e-12)
	require.InDelta(t, 1.234, arr.Items()[1].(value.Float).Get(), 1e-12)
	require.InDelta(t, -1196073.75, arr.Items()[2].(value.Float).Get(), 1e-9)
}

func TestReadRawNonUTF8StringUnderAllowBinStrings(t *testing.T) {
	in := []byte{0x04, 0x08, '"', 0x08, 0xc3, 0x28, 0x34}
	v := decodeBytes(t, in, reader.WithAllowBinStrings(true))

	si, ok := v.(value.StrI)
	require.True(t, ok)
	require.Equal(t, []byte{0xc3, 0x28, 0x34}, si.Bytes())
	require.Equal(t, 0, si.Fields().Len())
}

func TestReadRawNonUTF8StringWithoutAllowBinStringsStaysStr(t *testing.T) {
	in := []byte{0x04, 0x08, '"', 0x08, 0xc3, 0x28, 0x34}
	v := decodeBytes(t, in)

	_, ok := v.(value.Str)
	require.True(t, ok)
}

func TestReadSelfReferentialArray(t *testing.T) {
	// [ @0 ] — an array whose single element refers back to itself.
	in := []byte{0x04, 0x08, '[', 6, '@', 0}
	v := decodeBytes(t, in)

	arr, ok := v.(value.Array)
	require.True(t, ok)
	require.Len(t, arr.Items(), 1)

	inner, ok := arr.Items()[0].(value.Array)
	require.True(t, ok)
	require.Equal(t, arr.Identity(), inner.Identity())
}

func TestReadBadSymbolRef(t *testing.T) {
	in := []byte{0x04, 0x08, ';', 0}
	_, err := reader.New(bytes.NewReader(in)).Read()
	require.Error(t, err)
}

func TestReadBadObjectRef(t *testing.T) {
	in := []byte{0x04, 0x08, '@', 0}
	_, err := reader.New(bytes.NewReader(in)).Read()
	require.Error(t, err)
}

func TestReadBigIntRoundTripsViaDecode(t *testing.T) {
	// 'l' '+' halfwords=1 payload 0x01 0x00 -> magnitude 0x0001 -> 1
	in := []byte{0x04, 0x08, 'l', '+', 6, 1, 0}
	v := decodeBytes(t, in)

	bi, ok := v.(value.BigInt)
	require.True(t, ok)
	require.Equal(t, int64(1), bi.Get().Int64())
}

func TestReadNaNFloat(t *testing.T) {
	in := []byte("\x04\x08f\x08nan")
	v := decodeBytes(t, in)

	f, ok := v.(value.Float)
	require.True(t, ok)
	require.True(t, math.IsNaN(f.Get()))
}
