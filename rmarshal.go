// Package rmarshal encodes and decodes the binary object-graph
// serialization format produced by a popular dynamic language's standard
// "marshal" facility (wire format version 4.8).
//
// The format round-trips arbitrary in-memory object graphs: symbol
// tables, shared objects, and cyclic references all survive a trip
// through bytes and back. This package provides convenient top-level
// wrappers around the reader and writer packages, which expose the full
// decode/encode configuration surface.
//
// # Basic usage
//
// Decoding a stream:
//
//	v, err := rmarshal.Decode(r)
//
// Encoding a value graph:
//
//	n, err := rmarshal.Encode(w, v)
//
// For advanced usage — non-default decode options, or direct control
// over a Reader/Writer's lifetime across multiple calls — use the
// reader and writer packages directly.
package rmarshal

import (
	"io"

	"github.com/halcyon-io/rmarshal/compressed"
	"github.com/halcyon-io/rmarshal/reader"
	"github.com/halcyon-io/rmarshal/value"
	"github.com/halcyon-io/rmarshal/writer"
)

// Decode reads one complete marshal stream from r: the two-byte header
// followed by exactly one entry.
func Decode(r io.Reader, opts ...reader.Option) (value.Value, error) {
	return reader.New(r, opts...).Read()
}

// Encode writes the two-byte header followed by v as a single entry to w,
// and returns the total byte count written.
func Encode(w io.Writer, v value.Value) (int64, error) {
	return writer.New(w).Write(v)
}

// DecodeCompressed reads all of r, decompresses it with codec, and decodes
// the result as one marshal entry. Use this when the stream was produced
// by EncodeCompressed with a matching codec.
func DecodeCompressed(r io.Reader, codec compressed.Decompressor, opts ...reader.Option) (value.Value, error) {
	return compressed.Decode(r, codec, opts...)
}

// EncodeCompressed marshals v, compresses the whole result with codec, and
// writes it to w.
func EncodeCompressed(w io.Writer, v value.Value, codec compressed.Compressor) (int64, error) {
	return compressed.Encode(w, v, codec)
}
