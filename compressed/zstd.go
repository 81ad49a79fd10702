package compressed

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// zstdDecoderPool pools decoders so repeated Decode calls avoid the
// warm-up cost the klauspost decoder otherwise pays per instance.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		d, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			panic(fmt.Sprintf("compressed: failed to create zstd decoder: %v", err))
		}

		return d
	},
}

var zstdEncoderPool = sync.Pool{
	New: func() any {
		e, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			panic(fmt.Sprintf("compressed: failed to create zstd encoder: %v", err))
		}

		return e
	},
}

// ZstdCodec compresses whole marshal streams with Zstandard.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

// NewZstdCodec creates a Zstandard Codec.
func NewZstdCodec() ZstdCodec { return ZstdCodec{} }

// Compress implements Compressor.
func (ZstdCodec) Compress(data []byte) ([]byte, error) {
	enc := zstdEncoderPool.Get().(*zstd.Encoder) //nolint:forcetypeassert
	defer zstdEncoderPool.Put(enc)

	return enc.EncodeAll(data, nil), nil
}

// Decompress implements Decompressor.
func (ZstdCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dec := zstdDecoderPool.Get().(*zstd.Decoder) //nolint:forcetypeassert
	defer zstdDecoderPool.Put(dec)

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("compressed: zstd decompression failed: %w", err)
	}

	return out, nil
}
