package compressed

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"
)

var lz4CompressorPool = sync.Pool{
	New: func() any { return &lz4.Compressor{} },
}

// LZ4Codec compresses whole marshal streams with LZ4 block compression.
type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

// NewLZ4Codec creates an LZ4 Codec.
func NewLZ4Codec() LZ4Codec { return LZ4Codec{} }

// Compress implements Compressor. The output is a 4-byte little-endian
// original-length prefix followed by the compressed block, since LZ4 block
// decompression needs the original size up front.
func (LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, 4+lz4.CompressBlockBound(len(data)))
	putUint32(dst, uint32(len(data))) //nolint:gosec

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[4:])
	if err != nil {
		return nil, err
	}

	return dst[:4+n], nil
}

// Decompress implements Decompressor.
func (LZ4Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	if len(data) < 4 {
		return nil, errors.New("compressed: lz4 payload too short")
	}

	origLen := getUint32(data)
	dst := make([]byte, origLen)

	n, err := lz4.UncompressBlock(data[4:], dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

func putUint32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func getUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
