package compressed

// NoOpCodec passes data through unchanged. Useful for benchmarking the
// codec's own overhead or when the caller compresses the stream upstream.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

// NewNoOpCodec creates a pass-through Codec.
func NewNoOpCodec() NoOpCodec { return NoOpCodec{} }

// Compress implements Compressor.
func (NoOpCodec) Compress(data []byte) ([]byte, error) { return data, nil }

// Decompress implements Decompressor.
func (NoOpCodec) Decompress(data []byte) ([]byte, error) { return data, nil }
