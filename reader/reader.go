// Package reader decodes a binary marshal stream into a value.Value graph.
package reader

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"unicode/utf8"

	"github.com/halcyon-io/rmarshal/errs"
	"github.com/halcyon-io/rmarshal/internal/options"
	"github.com/halcyon-io/rmarshal/internal/wireutil"
	"github.com/halcyon-io/rmarshal/value"
	"github.com/halcyon-io/rmarshal/varint"
	"github.com/halcyon-io/rmarshal/wire"
)

// Reader decodes one or more marshal streams read from an underlying
// io.Reader. A Reader is not safe for concurrent use.
type Reader struct {
	br              *bufio.Reader
	symbols         []value.Symbol
	objects         []value.Value
	symE            value.Symbol
	allowBinStrings bool
}

// Option configures a Reader at construction time.
type Option = options.Option[*Reader]

// WithAllowBinStrings controls how a bare (non-Instance) String entry with
// invalid UTF-8 content is decoded. When true it is decoded as StrI with an
// empty field map; when false (the default) it is decoded as Str regardless
// of content validity, matching the wire format's permissive bare-string
// handling.
func WithAllowBinStrings(allow bool) Option {
	return options.NoError(func(r *Reader) { r.allowBinStrings = allow })
}

// New creates a Reader that decodes from r.
func New(r io.Reader, opts ...Option) *Reader {
	rd := &Reader{
		br:   bufio.NewReader(r),
		symE: value.NewSymbol([]byte(wire.SymbolE)),
	}

	_ = options.Apply(rd, opts...)

	return rd
}

// Read decodes one complete marshal stream: the two-byte header followed by
// exactly one top-level entry. Each call starts a fresh symbol and object
// table, matching the format's per-stream table scope.
func (rd *Reader) Read() (value.Value, error) {
	var hdr [2]byte
	if _, err := io.ReadFull(rd.br, hdr[:]); err != nil {
		return nil, errs.NewIoError(err)
	}

	if hdr != wire.Header {
		return nil, &errs.VersionError{
			Detail: fmt.Sprintf("unsupported marshal header 0x%02x 0x%02x", hdr[0], hdr[1]),
		}
	}

	rd.symbols = rd.symbols[:0]
	rd.objects = rd.objects[:0]

	return rd.readEntry()
}

func (rd *Reader) readByte() (byte, error) {
	b, err := rd.br.ReadByte()
	if err != nil {
		return 0, errs.NewIoError(err)
	}

	return b, nil
}

func (rd *Reader) readFull(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(rd.br, buf); err != nil {
		return nil, errs.NewIoError(err)
	}

	return buf, nil
}

func (rd *Reader) readVarint() (int32, error) { return varint.Decode(rd.br) }

func (rd *Reader) readLengthPrefixed() ([]byte, error) {
	n, err := rd.readVarint()
	if err != nil {
		return nil, err
	}

	if n < 0 {
		return nil, &errs.IoError{Err: fmt.Errorf("negative length prefix %d", n)}
	}

	return rd.readFull(int(n))
}

func (rd *Reader) reserveSlot() int {
	idx := len(rd.objects)
	rd.objects = append(rd.objects, nil)

	return idx
}

func kindName(v value.Value) string {
	if v == nil {
		return "<nil>"
	}

	return v.Kind().String()
}

func (rd *Reader) readEntry() (value.Value, error) {
	tag, err := rd.readByte()
	if err != nil {
		return nil, err
	}

	switch tag {
	case wire.TagTrue:
		return value.True{}, nil
	case wire.TagFalse:
		return value.False{}, nil
	case wire.TagNil:
		return value.Nil{}, nil
	case wire.TagInt:
		n, err := rd.readVarint()
		if err != nil {
			return nil, err
		}

		return value.Int(n), nil
	case wire.TagSymbol:
		return rd.readSymbolDef()
	case wire.TagSymbolRef:
		return rd.readSymbolRef()
	case wire.TagObjectRef:
		return rd.readObjectRef()
	case wire.TagExtended:
		return rd.readExtended()
	default:
		return rd.readReferenceable(tag)
	}
}

func (rd *Reader) readSymbolDef() (value.Value, error) {
	raw, err := rd.readLengthPrefixed()
	if err != nil {
		return nil, err
	}

	sym := value.NewSymbol(raw)
	rd.symbols = append(rd.symbols, sym)

	return sym, nil
}

func (rd *Reader) readSymbolRef() (value.Value, error) {
	idx, err := rd.readVarint()
	if err != nil {
		return nil, err
	}

	if idx < 0 || int(idx) >= len(rd.symbols) {
		return nil, &errs.BadSymbolRefError{Index: idx}
	}

	return rd.symbols[idx], nil
}

func (rd *Reader) readObjectRef() (value.Value, error) {
	idx, err := rd.readVarint()
	if err != nil {
		return nil, err
	}

	if idx < 0 || int(idx) >= len(rd.objects) {
		return nil, &errs.BadObjectRefError{Index: idx}
	}

	return rd.objects[idx], nil
}

func (rd *Reader) readExtended() (value.Value, error) {
	modV, err := rd.readEntry()
	if err != nil {
		return nil, err
	}

	mod, ok := modV.(value.Symbol)
	if !ok {
		return nil, &errs.UnexpectedTypeError{Expected: "Symbol", Found: kindName(modV)}
	}

	obj, err := rd.readEntry()
	if err != nil {
		return nil, err
	}

	return value.NewExtended(mod, obj), nil
}

func (rd *Reader) expectSymbol() (value.Symbol, error) {
	v, err := rd.readEntry()
	if err != nil {
		return value.Symbol{}, err
	}

	sym, ok := v.(value.Symbol)
	if !ok {
		return value.Symbol{}, &errs.UnexpectedTypeError{Expected: "Symbol", Found: kindName(v)}
	}

	return sym, nil
}

func (rd *Reader) readReferenceable(tag byte) (value.Value, error) {
	switch tag {
	case wire.TagArray:
		return rd.readArray()
	case wire.TagBigInt:
		return rd.readBigInt()
	case wire.TagClass, wire.TagModule, wire.TagClassModule:
		return rd.readRef(tag)
	case wire.TagData, wire.TagUserClass, wire.TagUserMarshal:
		return rd.readEnvelope(tag)
	case wire.TagFloat:
		return rd.readFloat()
	case wire.TagHash:
		return rd.readHash(false)
	case wire.TagHashDefault:
		return rd.readHash(true)
	case wire.TagObject:
		return rd.readObject()
	case wire.TagStruct:
		return rd.readStruct()
	case wire.TagRegex:
		return rd.readBareRegex()
	case wire.TagString:
		return rd.readBareString()
	case wire.TagUserData:
		return rd.readUserData()
	case wire.TagInstance:
		return rd.readInstance()
	default:
		return nil, &errs.BadTypeByteError{Byte: tag}
	}
}

func (rd *Reader) readArray() (value.Value, error) {
	idx := rd.reserveSlot()
	arr := value.NewArray(nil)
	rd.objects[idx] = arr

	count, err := rd.readVarint()
	if err != nil {
		return nil, err
	}

	if count < 0 {
		return nil, &errs.IoError{Err: fmt.Errorf("negative array length %d", count)}
	}

	items := make([]value.Value, 0, count)
	for i := int32(0); i < count; i++ {
		v, err := rd.readEntry()
		if err != nil {
			return nil, err
		}

		items = append(items, v)
	}

	arr.Set(items)

	return arr, nil
}

func (rd *Reader) readBigInt() (value.Value, error) {
	idx := rd.reserveSlot()
	placeholder := value.NewBigInt(big.NewInt(0))
	rd.objects[idx] = placeholder

	signByte, err := rd.readByte()
	if err != nil {
		return nil, err
	}

	halfwords, err := rd.readVarint()
	if err != nil {
		return nil, err
	}

	if halfwords < 0 {
		return nil, &errs.IoError{Err: fmt.Errorf("negative bigint halfword count %d", halfwords)}
	}

	payload, err := rd.readFull(int(halfwords) * 2)
	if err != nil {
		return nil, err
	}

	placeholder.Set(wireutil.DecodeBigInt(signByte, payload))

	return placeholder, nil
}

func (rd *Reader) readRef(tag byte) (value.Value, error) {
	idx := rd.reserveSlot()

	raw, err := rd.readLengthPrefixed()
	if err != nil {
		return nil, err
	}

	if !utf8.Valid(raw) {
		return nil, &errs.Utf8Error{Err: fmt.Errorf("invalid utf-8 in class/module reference name")}
	}

	name := string(raw)

	var v value.Value

	switch tag {
	case wire.TagClass:
		v = value.NewClassRef(name)
	case wire.TagModule:
		v = value.NewModuleRef(name)
	default:
		v = value.NewClassModuleRef(name)
	}

	rd.objects[idx] = v

	return v, nil
}

func (rd *Reader) readEnvelope(tag byte) (value.Value, error) {
	idx := rd.reserveSlot()

	var v value.Value

	switch tag {
	case wire.TagData:
		v = value.NewData(value.Symbol{}, value.Nil{})
	case wire.TagUserClass:
		v = value.NewUserClass(value.Symbol{}, value.Nil{})
	default:
		v = value.NewUserMarshal(value.Symbol{}, value.Nil{})
	}

	rd.objects[idx] = v

	name, err := rd.expectSymbol()
	if err != nil {
		return nil, err
	}

	switch e := v.(type) {
	case value.Data:
		e.SetName(name)
	case value.UserClass:
		e.SetName(name)
	case value.UserMarshal:
		e.SetName(name)
	}

	payload, err := rd.readEntry()
	if err != nil {
		return nil, err
	}

	switch e := v.(type) {
	case value.Data:
		e.SetPayload(payload)
	case value.UserClass:
		e.SetPayload(payload)
	case value.UserMarshal:
		e.SetPayload(payload)
	}

	return v, nil
}

func (rd *Reader) readFloat() (value.Value, error) {
	idx := rd.reserveSlot()
	placeholder := value.NewFloat(0)
	rd.objects[idx] = placeholder

	raw, err := rd.readLengthPrefixed()
	if err != nil {
		return nil, err
	}

	f, err := wireutil.ParseFloat(raw)
	if err != nil {
		return nil, err
	}

	placeholder.Set(f)

	return placeholder, nil
}

func (rd *Reader) readHash(hasDefault bool) (value.Value, error) {
	idx := rd.reserveSlot()
	h := value.NewHash(nil)
	rd.objects[idx] = h

	count, err := rd.readVarint()
	if err != nil {
		return nil, err
	}

	if count < 0 {
		return nil, &errs.IoError{Err: fmt.Errorf("negative hash length %d", count)}
	}

	entries := h.Entries()
	for i := int32(0); i < count; i++ {
		k, err := rd.readEntry()
		if err != nil {
			return nil, err
		}

		v, err := rd.readEntry()
		if err != nil {
			return nil, err
		}

		entries.Set(k, v)
	}

	if hasDefault {
		d, err := rd.readEntry()
		if err != nil {
			return nil, err
		}

		h.SetDefault(d)
	}

	return h, nil
}

func (rd *Reader) readFieldPairs(fields *value.OrderedMap[value.Symbol, value.Value]) error {
	count, err := rd.readVarint()
	if err != nil {
		return err
	}

	if count < 0 {
		return &errs.IoError{Err: fmt.Errorf("negative field count %d", count)}
	}

	for i := int32(0); i < count; i++ {
		k, err := rd.expectSymbol()
		if err != nil {
			return err
		}

		v, err := rd.readEntry()
		if err != nil {
			return err
		}

		fields.Set(k, v)
	}

	return nil
}

func (rd *Reader) readObject() (value.Value, error) {
	idx := rd.reserveSlot()
	obj := value.NewObject(value.Symbol{}, nil)
	rd.objects[idx] = obj

	name, err := rd.expectSymbol()
	if err != nil {
		return nil, err
	}

	obj.SetName(name)

	if err := rd.readFieldPairs(obj.Fields()); err != nil {
		return nil, err
	}

	return obj, nil
}

func (rd *Reader) readStruct() (value.Value, error) {
	idx := rd.reserveSlot()
	st := value.NewStruct(value.Symbol{}, nil)
	rd.objects[idx] = st

	name, err := rd.expectSymbol()
	if err != nil {
		return nil, err
	}

	st.SetName(name)

	if err := rd.readFieldPairs(st.Fields()); err != nil {
		return nil, err
	}

	return st, nil
}

func (rd *Reader) readRegexPayload() (string, uint32, error) {
	raw, err := rd.readLengthPrefixed()
	if err != nil {
		return "", 0, err
	}

	flagByte, err := rd.readByte()
	if err != nil {
		return "", 0, err
	}

	return string(raw), uint32(flagByte), nil
}

func (rd *Reader) readBareRegex() (value.Value, error) {
	idx := rd.reserveSlot()

	src, flags, err := rd.readRegexPayload()
	if err != nil {
		return nil, err
	}

	v := value.NewRegex(src, flags)
	rd.objects[idx] = v

	return v, nil
}

func (rd *Reader) readBareString() (value.Value, error) {
	idx := rd.reserveSlot()

	raw, err := rd.readLengthPrefixed()
	if err != nil {
		return nil, err
	}

	var v value.Value
	if rd.allowBinStrings && !utf8.Valid(raw) {
		v = value.NewStrI(raw, nil)
	} else {
		v = value.NewStr(string(raw))
	}

	rd.objects[idx] = v

	return v, nil
}

func (rd *Reader) readUserData() (value.Value, error) {
	idx := rd.reserveSlot()

	name, err := rd.expectSymbol()
	if err != nil {
		return nil, err
	}

	raw, err := rd.readLengthPrefixed()
	if err != nil {
		return nil, err
	}

	v := value.NewUserData(name, raw)
	rd.objects[idx] = v

	return v, nil
}

// readFieldTail reads an Instance's trailing field-count-plus-pairs tail and
// reports whether the fields include the {E => true} UTF-8 marker.
func (rd *Reader) readFieldTail() (*value.OrderedMap[value.Symbol, value.Value], bool, error) {
	fields := value.NewSymbolFieldMap()

	count, err := rd.readVarint()
	if err != nil {
		return nil, false, err
	}

	if count < 0 {
		return nil, false, &errs.IoError{Err: fmt.Errorf("negative field count %d", count)}
	}

	hasMarker := false

	for i := int32(0); i < count; i++ {
		k, err := rd.expectSymbol()
		if err != nil {
			return nil, false, err
		}

		v, err := rd.readEntry()
		if err != nil {
			return nil, false, err
		}

		fields.Set(k, v)

		if k.Equal(rd.symE) {
			if _, isTrue := v.(value.True); isTrue {
				hasMarker = true
			}
		}
	}

	return fields, hasMarker, nil
}

func (rd *Reader) readInstance() (value.Value, error) {
	inner, err := rd.readByte()
	if err != nil {
		return nil, err
	}

	switch inner {
	case wire.TagString:
		return rd.readInstanceString()
	case wire.TagRegex:
		return rd.readInstanceRegex()
	case wire.TagObject:
		return rd.readInstanceObject()
	default:
		return nil, &errs.BadInstanceTypeError{Byte: inner}
	}
}

// readInstanceString decodes an Instance-wrapped String. The inner payload
// is decoded first as a provisional Str and published to the object table
// so any field value that back-references this slot observes a valid
// value; once the field tail is known, a field set without the {E => true}
// marker overwrites the slot with the StrI variant instead.
func (rd *Reader) readInstanceString() (value.Value, error) {
	idx := rd.reserveSlot()

	raw, err := rd.readLengthPrefixed()
	if err != nil {
		return nil, err
	}

	provisional := value.NewStr(string(raw))
	rd.objects[idx] = provisional

	fields, hasMarker, err := rd.readFieldTail()
	if err != nil {
		return nil, err
	}

	if hasMarker {
		return provisional, nil
	}

	final := value.NewStrI(raw, fields)
	rd.objects[idx] = final

	return final, nil
}

// readInstanceRegex mirrors readInstanceString for Regex/RegexI.
func (rd *Reader) readInstanceRegex() (value.Value, error) {
	idx := rd.reserveSlot()

	src, flags, err := rd.readRegexPayload()
	if err != nil {
		return nil, err
	}

	provisional := value.NewRegex(src, flags)
	rd.objects[idx] = provisional

	fields, hasMarker, err := rd.readFieldTail()
	if err != nil {
		return nil, err
	}

	if hasMarker {
		return provisional, nil
	}

	final := value.NewRegexI([]byte(src), flags, fields)
	rd.objects[idx] = final

	return final, nil
}

// readInstanceObject decodes an Instance-wrapped Object: the inner Object
// decodes (and publishes its own table slot) exactly as a bare Object, then
// the Instance's own field tail merges into the same field map.
func (rd *Reader) readInstanceObject() (value.Value, error) {
	v, err := rd.readObject()
	if err != nil {
		return nil, err
	}

	obj, ok := v.(value.Object)
	if !ok {
		return nil, &errs.UnexpectedTypeError{Expected: "Object", Found: kindName(v)}
	}

	fields, _, err := rd.readFieldTail()
	if err != nil {
		return nil, err
	}

	for _, e := range fields.Entries() {
		obj.Fields().Set(e.Key, e.Val)
	}

	return obj, nil
}
