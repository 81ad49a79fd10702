// Package writer encodes a value.Value graph into a binary marshal stream.
package writer

import (
	"bufio"
	"io"

	"github.com/halcyon-io/rmarshal/errs"
	"github.com/halcyon-io/rmarshal/internal/wireutil"
	"github.com/halcyon-io/rmarshal/value"
	"github.com/halcyon-io/rmarshal/varint"
	"github.com/halcyon-io/rmarshal/wire"
)

// Writer encodes one or more Values to an underlying io.Writer. A Writer is
// not safe for concurrent use.
type Writer struct {
	bw          *bufio.Writer
	n           int64
	symbolIndex map[string]int32
	objectIndex map[uintptr]int32
	nextSymbol  int32
	nextObject  int32
	symE        value.Symbol
}

// New creates a Writer that encodes to w.
func New(w io.Writer) *Writer {
	return &Writer{
		bw:   bufio.NewWriter(w),
		symE: value.NewSymbol([]byte(wire.SymbolE)),
	}
}

// Write encodes the two-byte header followed by v as a single entry,
// flushes the underlying writer, and returns the total byte count written.
func (wr *Writer) Write(v value.Value) (int64, error) {
	wr.n = 0
	wr.symbolIndex = make(map[string]int32)
	wr.objectIndex = make(map[uintptr]int32)
	wr.nextSymbol = 0
	wr.nextObject = 0

	if err := wr.writeBytes(wire.Header[:]); err != nil {
		return wr.n, err
	}

	if err := wr.writeEntry(v); err != nil {
		return wr.n, err
	}

	if err := wr.bw.Flush(); err != nil {
		return wr.n, errs.NewIoError(err)
	}

	return wr.n, nil
}

func (wr *Writer) writeBytes(b []byte) error {
	n, err := wr.bw.Write(b)
	wr.n += int64(n)

	if err != nil {
		return errs.NewIoError(err)
	}

	return nil
}

func (wr *Writer) writeByte(b byte) error { return wr.writeBytes([]byte{b}) }

func (wr *Writer) writeVarint(v int32) error {
	n, err := varint.Encode(wr.bw, v)
	wr.n += int64(n)

	return err
}

func (wr *Writer) writeLengthPrefixed(b []byte) error {
	if err := wr.writeVarint(int32(len(b))); err != nil { //nolint:gosec
		return err
	}

	return wr.writeBytes(b)
}

// writeSymbol emits a Symbol via the interning path: a back-reference if
// already seen, otherwise a fresh definition that also registers it.
func (wr *Writer) writeSymbol(s value.Symbol) error {
	key := string(s.Bytes())
	if idx, ok := wr.symbolIndex[key]; ok {
		if err := wr.writeByte(wire.TagSymbolRef); err != nil {
			return err
		}

		return wr.writeVarint(idx)
	}

	wr.symbolIndex[key] = wr.nextSymbol
	wr.nextSymbol++

	if err := wr.writeByte(wire.TagSymbol); err != nil {
		return err
	}

	return wr.writeLengthPrefixed(s.Bytes())
}

// writeEt emits the {E => true} UTF-8-marker field tail used by canonical
// Str and Regex.
func (wr *Writer) writeEt() error {
	if err := wr.writeVarint(1); err != nil {
		return err
	}

	if err := wr.writeSymbol(wr.symE); err != nil {
		return err
	}

	return wr.writeByte(wire.TagTrue)
}

func (wr *Writer) writeFieldPairs(fields *value.OrderedMap[value.Symbol, value.Value]) error {
	if err := wr.writeVarint(int32(fields.Len())); err != nil { //nolint:gosec
		return err
	}

	for _, e := range fields.Entries() {
		if err := wr.writeSymbol(e.Key); err != nil {
			return err
		}

		if err := wr.writeEntry(e.Val); err != nil {
			return err
		}
	}

	return nil
}

// assignSlot records ref's identity in the object-interning map before its
// payload is written, so self-referential children that encode an `@`
// back-reference to ref resolve to the index assigned here.
func (wr *Writer) assignSlot(ref value.Referenceable) {
	wr.objectIndex[ref.Identity()] = wr.nextObject
	wr.nextObject++
}

// writeReferenceable emits an `@` back-reference if ref has already been
// written, otherwise calls encode to emit its tagged payload after
// assigning its slot.
func (wr *Writer) writeReferenceable(ref value.Referenceable, encode func() error) error {
	if idx, ok := wr.objectIndex[ref.Identity()]; ok {
		if err := wr.writeByte(wire.TagObjectRef); err != nil {
			return err
		}

		return wr.writeVarint(idx)
	}

	wr.assignSlot(ref)

	return encode()
}

func (wr *Writer) writeEntry(v value.Value) error {
	switch x := v.(type) {
	case value.Nil:
		return wr.writeByte(wire.TagNil)
	case value.True:
		return wr.writeByte(wire.TagTrue)
	case value.False:
		return wr.writeByte(wire.TagFalse)
	case value.Int:
		if err := wr.writeByte(wire.TagInt); err != nil {
			return err
		}

		return wr.writeVarint(int32(x))
	case value.Symbol:
		return wr.writeSymbol(x)
	case value.Array:
		return wr.writeReferenceable(x, func() error { return wr.writeArray(x) })
	case value.BigInt:
		return wr.writeReferenceable(x, func() error { return wr.writeBigInt(x) })
	case value.Float:
		return wr.writeReferenceable(x, func() error { return wr.writeFloat(x) })
	case value.Str:
		return wr.writeReferenceable(x, func() error { return wr.writeStr(x) })
	case value.StrI:
		return wr.writeReferenceable(x, func() error { return wr.writeStrI(x) })
	case value.Regex:
		return wr.writeReferenceable(x, func() error { return wr.writeRegex(x) })
	case value.RegexI:
		return wr.writeReferenceable(x, func() error { return wr.writeRegexI(x) })
	case value.Hash:
		return wr.writeReferenceable(x, func() error { return wr.writeHash(x) })
	case value.Object:
		return wr.writeReferenceable(x, func() error { return wr.writeObject(x) })
	case value.Struct:
		return wr.writeReferenceable(x, func() error { return wr.writeStruct(x) })
	case value.ClassRef:
		return wr.writeReferenceable(x, func() error { return wr.writeRef(wire.TagClass, x.Name()) })
	case value.ModuleRef:
		return wr.writeReferenceable(x, func() error { return wr.writeRef(wire.TagModule, x.Name()) })
	case value.ClassModuleRef:
		return wr.writeReferenceable(x, func() error { return wr.writeRef(wire.TagClassModule, x.Name()) })
	case value.Data:
		return wr.writeReferenceable(x, func() error { return wr.writeEnvelope(wire.TagData, x.Name(), x.Payload()) })
	case value.UserClass:
		return wr.writeReferenceable(x, func() error { return wr.writeEnvelope(wire.TagUserClass, x.Name(), x.Payload()) })
	case value.UserMarshal:
		return wr.writeReferenceable(x, func() error { return wr.writeEnvelope(wire.TagUserMarshal, x.Name(), x.Payload()) })
	case value.UserData:
		return wr.writeReferenceable(x, func() error { return wr.writeUserData(x) })
	case value.Extended:
		return wr.writeExtended(x)
	default:
		return &errs.UnexpectedTypeError{Expected: "known Value variant", Found: "unknown"}
	}
}

func (wr *Writer) writeArray(arr value.Array) error {
	if err := wr.writeByte(wire.TagArray); err != nil {
		return err
	}

	items := arr.Items()
	if err := wr.writeVarint(int32(len(items))); err != nil { //nolint:gosec
		return err
	}

	for _, item := range items {
		if err := wr.writeEntry(item); err != nil {
			return err
		}
	}

	return nil
}

func (wr *Writer) writeBigInt(bi value.BigInt) error {
	if err := wr.writeByte(wire.TagBigInt); err != nil {
		return err
	}

	sign, halfwords, payload := wireutil.EncodeBigInt(bi.Get())

	if err := wr.writeByte(sign); err != nil {
		return err
	}

	if err := wr.writeVarint(halfwords); err != nil {
		return err
	}

	return wr.writeBytes(payload)
}

func (wr *Writer) writeFloat(f value.Float) error {
	if err := wr.writeByte(wire.TagFloat); err != nil {
		return err
	}

	return wr.writeLengthPrefixed([]byte(wireutil.FormatFloat(f.Get())))
}

func (wr *Writer) writeStr(s value.Str) error {
	if err := wr.writeByte(wire.TagInstance); err != nil {
		return err
	}

	if err := wr.writeByte(wire.TagString); err != nil {
		return err
	}

	if err := wr.writeLengthPrefixed([]byte(s.Get())); err != nil {
		return err
	}

	return wr.writeEt()
}

func (wr *Writer) writeStrI(s value.StrI) error {
	if err := wr.writeByte(wire.TagInstance); err != nil {
		return err
	}

	if err := wr.writeByte(wire.TagString); err != nil {
		return err
	}

	if err := wr.writeLengthPrefixed(s.Bytes()); err != nil {
		return err
	}

	return wr.writeFieldPairs(s.Fields())
}

func (wr *Writer) writeRegex(r value.Regex) error {
	if err := wr.writeByte(wire.TagInstance); err != nil {
		return err
	}

	if err := wr.writeByte(wire.TagRegex); err != nil {
		return err
	}

	if err := wr.writeLengthPrefixed([]byte(r.Source())); err != nil {
		return err
	}

	if err := wr.writeByte(byte(r.Flags())); err != nil { //nolint:gosec
		return err
	}

	return wr.writeEt()
}

func (wr *Writer) writeRegexI(r value.RegexI) error {
	if err := wr.writeByte(wire.TagInstance); err != nil {
		return err
	}

	if err := wr.writeByte(wire.TagRegex); err != nil {
		return err
	}

	if err := wr.writeLengthPrefixed(r.Bytes()); err != nil {
		return err
	}

	if err := wr.writeByte(byte(r.Flags())); err != nil { //nolint:gosec
		return err
	}

	return wr.writeFieldPairs(r.Fields())
}

func (wr *Writer) writeHash(h value.Hash) error {
	def, hasDefault := h.Default()

	tag := wire.TagHash
	if hasDefault {
		tag = wire.TagHashDefault
	}

	if err := wr.writeByte(tag); err != nil {
		return err
	}

	entries := h.Entries().Entries()
	if err := wr.writeVarint(int32(len(entries))); err != nil { //nolint:gosec
		return err
	}

	for _, e := range entries {
		if err := wr.writeEntry(e.Key); err != nil {
			return err
		}

		if err := wr.writeEntry(e.Val); err != nil {
			return err
		}
	}

	if hasDefault {
		return wr.writeEntry(def)
	}

	return nil
}

func (wr *Writer) writeObject(o value.Object) error {
	if err := wr.writeByte(wire.TagObject); err != nil {
		return err
	}

	if err := wr.writeSymbol(o.Name()); err != nil {
		return err
	}

	return wr.writeFieldPairs(o.Fields())
}

func (wr *Writer) writeStruct(s value.Struct) error {
	if err := wr.writeByte(wire.TagStruct); err != nil {
		return err
	}

	if err := wr.writeSymbol(s.Name()); err != nil {
		return err
	}

	return wr.writeFieldPairs(s.Fields())
}

func (wr *Writer) writeRef(tag byte, name string) error {
	if err := wr.writeByte(tag); err != nil {
		return err
	}

	return wr.writeLengthPrefixed([]byte(name))
}

func (wr *Writer) writeEnvelope(tag byte, name value.Symbol, payload value.Value) error {
	if err := wr.writeByte(tag); err != nil {
		return err
	}

	if err := wr.writeSymbol(name); err != nil {
		return err
	}

	return wr.writeEntry(payload)
}

func (wr *Writer) writeUserData(u value.UserData) error {
	if err := wr.writeByte(wire.TagUserData); err != nil {
		return err
	}

	if err := wr.writeSymbol(u.Name()); err != nil {
		return err
	}

	return wr.writeLengthPrefixed(u.Bytes())
}

func (wr *Writer) writeExtended(e value.Extended) error {
	if err := wr.writeByte(wire.TagExtended); err != nil {
		return err
	}

	if err := wr.writeSymbol(e.Module()); err != nil {
		return err
	}

	return wr.writeEntry(e.Object())
}
