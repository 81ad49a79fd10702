// Package varint implements the signed variable-length integer encoding
// used throughout the wire format, both for small integers and for every
// length/count prefix.
//
// Encoding:
//
//	0            -> single byte 0
//	1..122       -> byte (v+5)
//	-123..-1     -> byte (v-5)
//	otherwise    -> length byte (positive count, or negated count for
//	                negative values) followed by the minimal number of
//	                little-endian bytes needed to represent v
package varint

import (
	"encoding/binary"
	"io"

	"github.com/halcyon-io/rmarshal/errs"
)

// Decode reads one signed varint from r.
func Decode(r io.Reader) (int32, error) {
	var tag [1]byte
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		return 0, errs.NewIoError(err)
	}
	b := tag[0]

	switch {
	case b == 0:
		return 0, nil
	case b >= 1 && b <= 4:
		n := int(b)
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:n]); err != nil {
			return 0, errs.NewIoError(err)
		}

		var v uint32
		for i := n - 1; i >= 0; i-- {
			v = v<<8 | uint32(buf[i])
		}

		return int32(v), nil //nolint:gosec
	case b >= 5 && b <= 127:
		return int32(b) - 5, nil
	case b >= 128 && b <= 251:
		return int32(int8(b)) + 5, nil //nolint:gosec
	default: // 252..255
		k := int(-int8(b)) //nolint:gosec
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:k]); err != nil {
			return 0, errs.NewIoError(err)
		}

		var u uint32
		for i := k - 1; i >= 0; i-- {
			u = u<<8 | uint32(buf[i])
		}

		shift := uint(32 - 8*k) //nolint:gosec
		v := int64(int32(u<<shift)) >> shift //nolint:gosec

		return int32(v), nil //nolint:gosec
	}
}

// Encode writes v as a signed varint to w and returns the number of bytes
// written. Encode never fails except for errors from w itself.
func Encode(w io.Writer, v int32) (int, error) {
	switch {
	case v == 0:
		return writeBytes(w, []byte{0})
	case v >= 1 && v <= 122:
		return writeBytes(w, []byte{byte(v + 5)}) //nolint:gosec
	case v >= -123 && v <= -1:
		return writeBytes(w, []byte{byte(v - 5)}) //nolint:gosec
	}

	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(v)) //nolint:gosec

	n := 4
	var lenByte byte
	if v > 0 {
		for n > 1 && tmp[n-1] == 0x00 {
			n--
		}
		lenByte = byte(n)
	} else {
		for n > 1 && tmp[n-1] == 0xFF && tmp[n-2]&0x80 != 0 {
			n--
		}
		lenByte = byte(-int8(n)) //nolint:gosec
	}

	out := make([]byte, 0, 1+n)
	out = append(out, lenByte)
	out = append(out, tmp[:n]...)

	return writeBytes(w, out)
}

func writeBytes(w io.Writer, b []byte) (int, error) {
	n, err := w.Write(b)
	if err != nil {
		return n, errs.NewIoError(err)
	}

	return n, nil
}
