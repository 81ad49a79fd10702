package varint_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halcyon-io/rmarshal/varint"
)

func roundTrip(t *testing.T, v int32) {
	t.Helper()

	var buf bytes.Buffer
	_, err := varint.Encode(&buf, v)
	require.NoError(t, err)

	got, err := varint.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, v, got)
}

func TestRoundTripBoundaries(t *testing.T) {
	cases := []int32{
		0, 1, -1, 122, -122, 123, -123, 124, -124,
		0x100, -0x100, 0x10000, -0x10000,
		math.MaxInt32, math.MinInt32,
	}
	for _, v := range cases {
		roundTrip(t, v)
	}
}

func TestRoundTripExhaustiveSmallRange(t *testing.T) {
	for v := int32(-2000); v <= 2000; v++ {
		roundTrip(t, v)
	}
}

func TestEncodeShortForm(t *testing.T) {
	var buf bytes.Buffer

	n, err := varint.Encode(&buf, 0)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, []byte{0x00}, buf.Bytes())

	buf.Reset()
	_, err = varint.Encode(&buf, 1)
	require.NoError(t, err)
	require.Equal(t, []byte{0x06}, buf.Bytes())

	buf.Reset()
	_, err = varint.Encode(&buf, -1)
	require.NoError(t, err)
	require.Equal(t, []byte{0xFA}, buf.Bytes())
}

func TestEncodeLongForm(t *testing.T) {
	var buf bytes.Buffer

	_, err := varint.Encode(&buf, 256)
	require.NoError(t, err)
	require.Equal(t, []byte{0x02, 0x00, 0x01}, buf.Bytes())

	buf.Reset()
	_, err = varint.Encode(&buf, -256)
	require.NoError(t, err)
	require.Equal(t, []byte{0xFE, 0x00, 0xFF}, buf.Bytes())
}

func TestDecodeShortRead(t *testing.T) {
	_, err := varint.Decode(bytes.NewReader([]byte{0x02, 0x01}))
	require.Error(t, err)
}
