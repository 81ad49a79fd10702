//go:build nobuild

// This file mirrors the teacher's cgo-backed zstd alternate
// (valyala/gozstd). It is kept as reference only: wiring a cgo
// dependency into a library meant to build with plain `go build` would
// impose a C toolchain requirement on every consumer, so the pure-Go
// klauspost/compress/zstd codec in zstd.go is what Codec actually uses.
// This file is excluded from every real build via the nobuild tag.
package compressed

import "github.com/valyala/gozstd"

// CgoZstdCodec is the cgo-backed equivalent of ZstdCodec, included for
// reference and never compiled.
type CgoZstdCodec struct{}

func (CgoZstdCodec) Compress(data []byte) ([]byte, error) {
	return gozstd.Compress(nil, data), nil
}

func (CgoZstdCodec) Decompress(data []byte) ([]byte, error) {
	return gozstd.Decompress(nil, data)
}
