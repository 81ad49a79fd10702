// Package compressed wraps a whole marshal stream with a single
// compression pass, for callers who want the wire format's compactness
// without managing compression themselves.
package compressed

// Compressor compresses a complete byte buffer.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a complete byte buffer produced by the
// matching Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of one compression algorithm.
type Codec interface {
	Compressor
	Decompressor
}
