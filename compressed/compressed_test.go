package compressed_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halcyon-io/rmarshal/compressed"
	"github.com/halcyon-io/rmarshal/value"
)

func TestRoundTripWithEachCodec(t *testing.T) {
	arr := value.NewArray([]value.Value{value.NewStr("hello"), value.Int(42)})

	for _, codec := range []compressed.Codec{
		compressed.NewNoOpCodec(),
		compressed.NewZstdCodec(),
		compressed.NewLZ4Codec(),
	} {
		var buf bytes.Buffer

		_, err := compressed.Encode(&buf, arr, codec)
		require.NoError(t, err)

		got, err := compressed.Decode(&buf, codec)
		require.NoError(t, err)
		require.True(t, value.Equal(arr, got))
	}
}
