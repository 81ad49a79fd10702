package compressed

import (
	"bytes"
	"io"

	"github.com/halcyon-io/rmarshal/errs"
	"github.com/halcyon-io/rmarshal/internal/pool"
	"github.com/halcyon-io/rmarshal/reader"
	"github.com/halcyon-io/rmarshal/value"
	"github.com/halcyon-io/rmarshal/writer"
)

var streamBufferPool = pool.NewByteBufferPool(pool.BlobBufferDefaultSize, pool.BlobBufferMaxThreshold)

// Encode marshals v to the wire format, compresses the whole result with
// codec, and writes it to w. Unlike the plain writer, the compressed form
// is not streamed: the marshal bytes are fully buffered (via a pooled
// buffer) so the codec can see the complete payload before compressing.
func Encode(w io.Writer, v value.Value, codec Compressor) (int64, error) {
	buf := streamBufferPool.Get()
	defer streamBufferPool.Put(buf)

	if _, err := writer.New(buf).Write(v); err != nil {
		return 0, err
	}

	out, err := codec.Compress(buf.Bytes())
	if err != nil {
		return 0, err
	}

	n, err := w.Write(out)

	return int64(n), errs.NewIoError(err)
}

// Decode reads the whole of r, decompresses it with codec, and decodes the
// result as one marshal entry.
func Decode(r io.Reader, codec Decompressor, opts ...reader.Option) (value.Value, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.NewIoError(err)
	}

	plain, err := codec.Decompress(raw)
	if err != nil {
		return nil, err
	}

	return reader.New(bytes.NewReader(plain), opts...).Read()
}
