package value

import (
	"math/big"

	"github.com/halcyon-io/rmarshal/internal/handle"
)

// Nil is the singleton nil value.
type Nil struct{}

// Kind implements Value.
func (Nil) Kind() Kind { return KindNil }

// True is the singleton boolean-true value.
type True struct{}

// Kind implements Value.
func (True) Kind() Kind { return KindTrue }

// False is the singleton boolean-false value.
type False struct{}

// Kind implements Value.
func (False) Kind() Kind { return KindFalse }

// Int is a 32-bit signed integer, the format's native fixnum range.
// Values outside int32 fall under BigInt.
type Int int32

// Kind implements Value.
func (Int) Kind() Kind { return KindInt }

// --- Float ---

type floatData struct{ f float64 }

// Float is an IEEE 754 double, stored textually in the wire format.
type Float struct{ h handle.Handle[floatData] }

// NewFloat allocates a new, independently shared Float handle.
func NewFloat(f float64) Float { return Float{h: handle.New(floatData{f: f})} }

// Kind implements Value.
func (Float) Kind() Kind { return KindFloat }

// Get returns the wrapped float64.
func (v Float) Get() float64 { return v.h.Get().f }

// Set replaces the wrapped float64 in place; every alias of this handle
// observes the new value.
func (v Float) Set(f float64) { v.h.Get().f = f }

// Identity implements Referenceable.
func (v Float) Identity() uintptr { return v.h.ID() }

var _ Referenceable = Float{}

// --- BigInt ---

type bigIntData struct{ v *big.Int }

// BigInt is an arbitrary-precision signed integer.
type BigInt struct{ h handle.Handle[bigIntData] }

// NewBigInt allocates a new, independently shared BigInt handle.
func NewBigInt(v *big.Int) BigInt { return BigInt{h: handle.New(bigIntData{v: v})} }

// Kind implements Value.
func (BigInt) Kind() Kind { return KindBigInt }

// Get returns the wrapped *big.Int. The caller must not mutate it; use
// Set to replace it.
func (v BigInt) Get() *big.Int { return v.h.Get().v }

// Set replaces the wrapped *big.Int in place.
func (v BigInt) Set(n *big.Int) { v.h.Get().v = n }

// Identity implements Referenceable.
func (v BigInt) Identity() uintptr { return v.h.ID() }

var _ Referenceable = BigInt{}

// --- Array ---

type arrayData struct{ items []Value }

// Array is an ordered, heterogeneous sequence of Values.
type Array struct{ h handle.Handle[arrayData] }

// NewArray allocates a new, independently shared Array handle.
func NewArray(items []Value) Array { return Array{h: handle.New(arrayData{items: items})} }

// Kind implements Value.
func (Array) Kind() Kind { return KindArray }

// Items returns the array's elements. The returned slice aliases the
// Array's storage; use Set to replace it wholesale.
func (v Array) Items() []Value { return v.h.Get().items }

// Set replaces the array's elements in place.
func (v Array) Set(items []Value) { v.h.Get().items = items }

// Identity implements Referenceable.
func (v Array) Identity() uintptr { return v.h.ID() }

var _ Referenceable = Array{}

// --- Str ---

type strData struct{ s string }

// Str is the canonical UTF-8 string encoding.
type Str struct{ h handle.Handle[strData] }

// NewStr allocates a new, independently shared Str handle.
func NewStr(s string) Str { return Str{h: handle.New(strData{s: s})} }

// Kind implements Value.
func (Str) Kind() Kind { return KindStr }

// Get returns the wrapped string.
func (v Str) Get() string { return v.h.Get().s }

// Set replaces the wrapped string in place.
func (v Str) Set(s string) { v.h.Get().s = s }

// Identity implements Referenceable.
func (v Str) Identity() uintptr { return v.h.ID() }

var _ Referenceable = Str{}

// --- StrI ---

type strIData struct {
	bytes  []byte
	fields *OrderedMap[Symbol, Value]
}

// StrI is a non-UTF-8 or field-annotated string.
type StrI struct{ h handle.Handle[strIData] }

// NewStrI allocates a new, independently shared StrI handle.
func NewStrI(b []byte, fields *OrderedMap[Symbol, Value]) StrI {
	if fields == nil {
		fields = NewSymbolFieldMap()
	}

	return StrI{h: handle.New(strIData{bytes: b, fields: fields})}
}

// Kind implements Value.
func (StrI) Kind() Kind { return KindStrI }

// Bytes returns the wrapped raw bytes.
func (v StrI) Bytes() []byte { return v.h.Get().bytes }

// Fields returns the insertion-ordered Symbol->Value field map.
func (v StrI) Fields() *OrderedMap[Symbol, Value] { return v.h.Get().fields }

// Identity implements Referenceable.
func (v StrI) Identity() uintptr { return v.h.ID() }

var _ Referenceable = StrI{}

// --- Regex ---

type regexData struct {
	source string
	flags  uint32
}

// Regex is a UTF-8 regular expression source plus a flags byte.
type Regex struct{ h handle.Handle[regexData] }

// NewRegex allocates a new, independently shared Regex handle.
func NewRegex(source string, flags uint32) Regex {
	return Regex{h: handle.New(regexData{source: source, flags: flags})}
}

// Kind implements Value.
func (Regex) Kind() Kind { return KindRegex }

// Source returns the regex source text.
func (v Regex) Source() string { return v.h.Get().source }

// Flags returns the regex flags byte (widened to uint32).
func (v Regex) Flags() uint32 { return v.h.Get().flags }

// Identity implements Referenceable.
func (v Regex) Identity() uintptr { return v.h.ID() }

var _ Referenceable = Regex{}

// --- RegexI ---

type regexIData struct {
	bytes  []byte
	flags  uint32
	fields *OrderedMap[Symbol, Value]
}

// RegexI is a non-UTF-8 or field-annotated regular expression.
type RegexI struct{ h handle.Handle[regexIData] }

// NewRegexI allocates a new, independently shared RegexI handle.
func NewRegexI(b []byte, flags uint32, fields *OrderedMap[Symbol, Value]) RegexI {
	if fields == nil {
		fields = NewSymbolFieldMap()
	}

	return RegexI{h: handle.New(regexIData{bytes: b, flags: flags, fields: fields})}
}

// Kind implements Value.
func (RegexI) Kind() Kind { return KindRegexI }

// Bytes returns the wrapped raw source bytes.
func (v RegexI) Bytes() []byte { return v.h.Get().bytes }

// Flags returns the regex flags byte (widened to uint32).
func (v RegexI) Flags() uint32 { return v.h.Get().flags }

// Fields returns the insertion-ordered Symbol->Value field map.
func (v RegexI) Fields() *OrderedMap[Symbol, Value] { return v.h.Get().fields }

// Identity implements Referenceable.
func (v RegexI) Identity() uintptr { return v.h.ID() }

var _ Referenceable = RegexI{}

// --- Hash ---

type hashData struct {
	entries    *OrderedMap[Value, Value]
	def        Value
	hasDefault bool
}

// Hash is an insertion-ordered Value->Value map with an optional default
// value.
type Hash struct{ h handle.Handle[hashData] }

// NewHash allocates a new, independently shared Hash handle with no
// default value.
func NewHash(entries *OrderedMap[Value, Value]) Hash {
	if entries == nil {
		entries = NewValueFieldMap()
	}

	return Hash{h: handle.New(hashData{entries: entries})}
}

// NewHashWithDefault allocates a new Hash with a default value.
func NewHashWithDefault(entries *OrderedMap[Value, Value], def Value) Hash {
	if entries == nil {
		entries = NewValueFieldMap()
	}

	return Hash{h: handle.New(hashData{entries: entries, def: def, hasDefault: true})}
}

// Kind implements Value.
func (Hash) Kind() Kind { return KindHash }

// Entries returns the insertion-ordered Value->Value entries.
func (v Hash) Entries() *OrderedMap[Value, Value] { return v.h.Get().entries }

// Default returns the hash's default value and whether one is set.
func (v Hash) Default() (Value, bool) {
	d := v.h.Get()
	return d.def, d.hasDefault
}

// SetDefault sets the hash's default value.
func (v Hash) SetDefault(def Value) {
	d := v.h.Get()
	d.def = def
	d.hasDefault = true
}

// Identity implements Referenceable.
func (v Hash) Identity() uintptr { return v.h.ID() }

var _ Referenceable = Hash{}

// --- Object / Struct ---

type objectData struct {
	name   Symbol
	fields *OrderedMap[Symbol, Value]
}

// Object is a named, field-carrying instance (wire tag 'o').
type Object struct{ h handle.Handle[objectData] }

// NewObject allocates a new, independently shared Object handle.
func NewObject(name Symbol, fields *OrderedMap[Symbol, Value]) Object {
	if fields == nil {
		fields = NewSymbolFieldMap()
	}

	return Object{h: handle.New(objectData{name: name, fields: fields})}
}

// Kind implements Value.
func (Object) Kind() Kind { return KindObject }

// SetName replaces the object's class name in place. Used by the reader
// to fill in the name once it is known, after the object's placeholder
// has already been published to the object table.
func (v Object) SetName(name Symbol) { v.h.Get().name = name }

// Name returns the object's class name.
func (v Object) Name() Symbol { return v.h.Get().name }

// Fields returns the insertion-ordered Symbol->Value field map.
func (v Object) Fields() *OrderedMap[Symbol, Value] { return v.h.Get().fields }

// Identity implements Referenceable.
func (v Object) Identity() uintptr { return v.h.ID() }

var _ Referenceable = Object{}

// Struct is structurally identical to Object; it differs only in its
// wire tag ('S' instead of 'o').
type Struct struct{ h handle.Handle[objectData] }

// NewStruct allocates a new, independently shared Struct handle.
func NewStruct(name Symbol, fields *OrderedMap[Symbol, Value]) Struct {
	if fields == nil {
		fields = NewSymbolFieldMap()
	}

	return Struct{h: handle.New(objectData{name: name, fields: fields})}
}

// Kind implements Value.
func (Struct) Kind() Kind { return KindStruct }

// SetName replaces the struct's class name in place. Used by the reader
// to fill in the name once it is known, after the struct's placeholder
// has already been published to the object table.
func (v Struct) SetName(name Symbol) { v.h.Get().name = name }

// Name returns the struct's class name.
func (v Struct) Name() Symbol { return v.h.Get().name }

// Fields returns the insertion-ordered Symbol->Value field map.
func (v Struct) Fields() *OrderedMap[Symbol, Value] { return v.h.Get().fields }

// Identity implements Referenceable.
func (v Struct) Identity() uintptr { return v.h.ID() }

var _ Referenceable = Struct{}

// --- ClassRef / ModuleRef / ClassModuleRef ---

type refData struct{ name string }

// ClassRef is a qualified, dotted class name reference (wire tag 'c').
type ClassRef struct{ h handle.Handle[refData] }

// NewClassRef allocates a new, independently shared ClassRef handle.
func NewClassRef(name string) ClassRef { return ClassRef{h: handle.New(refData{name: name})} }

// Kind implements Value.
func (ClassRef) Kind() Kind { return KindClassRef }

// Name returns the dotted class name.
func (v ClassRef) Name() string { return v.h.Get().name }

// Identity implements Referenceable.
func (v ClassRef) Identity() uintptr { return v.h.ID() }

var _ Referenceable = ClassRef{}

// ModuleRef is a qualified, dotted module name reference (wire tag 'm').
type ModuleRef struct{ h handle.Handle[refData] }

// NewModuleRef allocates a new, independently shared ModuleRef handle.
func NewModuleRef(name string) ModuleRef { return ModuleRef{h: handle.New(refData{name: name})} }

// Kind implements Value.
func (ModuleRef) Kind() Kind { return KindModuleRef }

// Name returns the dotted module name.
func (v ModuleRef) Name() string { return v.h.Get().name }

// Identity implements Referenceable.
func (v ModuleRef) Identity() uintptr { return v.h.ID() }

var _ Referenceable = ModuleRef{}

// ClassModuleRef is a qualified, dotted class-or-module name reference
// (wire tag 'M'), used when the source ecosystem could not tell which it
// was at dump time.
type ClassModuleRef struct{ h handle.Handle[refData] }

// NewClassModuleRef allocates a new, independently shared
// ClassModuleRef handle.
func NewClassModuleRef(name string) ClassModuleRef {
	return ClassModuleRef{h: handle.New(refData{name: name})}
}

// Kind implements Value.
func (ClassModuleRef) Kind() Kind { return KindClassModuleRef }

// Name returns the dotted name.
func (v ClassModuleRef) Name() string { return v.h.Get().name }

// Identity implements Referenceable.
func (v ClassModuleRef) Identity() uintptr { return v.h.ID() }

var _ Referenceable = ClassModuleRef{}

// --- Data / UserClass / UserMarshal ---

type envelopeData struct {
	name    Symbol
	payload Value
}

// Data is a user-defined-class envelope carrying one opaque payload
// Value (wire tag 'd'). The codec preserves the payload's bytes but never
// interprets them.
type Data struct{ h handle.Handle[envelopeData] }

// NewData allocates a new, independently shared Data handle.
func NewData(name Symbol, payload Value) Data {
	return Data{h: handle.New(envelopeData{name: name, payload: payload})}
}

// Kind implements Value.
func (Data) Kind() Kind { return KindData }

// SetName replaces the envelope's class name in place, used by the reader
// once the name has been decoded after the envelope's placeholder has
// already been published.
func (v Data) SetName(name Symbol) { v.h.Get().name = name }

// SetPayload replaces the envelope's wrapped payload in place, used by the
// reader once the payload has been decoded.
func (v Data) SetPayload(payload Value) { v.h.Get().payload = payload }

// Name returns the envelope's class name.
func (v Data) Name() Symbol { return v.h.Get().name }

// Payload returns the wrapped opaque Value.
func (v Data) Payload() Value { return v.h.Get().payload }

// Identity implements Referenceable.
func (v Data) Identity() uintptr { return v.h.ID() }

var _ Referenceable = Data{}

// UserClass is structurally identical to Data; it differs only in its
// wire tag ('C').
type UserClass struct{ h handle.Handle[envelopeData] }

// NewUserClass allocates a new, independently shared UserClass handle.
func NewUserClass(name Symbol, payload Value) UserClass {
	return UserClass{h: handle.New(envelopeData{name: name, payload: payload})}
}

// Kind implements Value.
func (UserClass) Kind() Kind { return KindUserClass }

// SetName replaces the envelope's class name in place, used by the reader
// once the name has been decoded after the envelope's placeholder has
// already been published.
func (v UserClass) SetName(name Symbol) { v.h.Get().name = name }

// SetPayload replaces the envelope's wrapped payload in place, used by the
// reader once the payload has been decoded.
func (v UserClass) SetPayload(payload Value) { v.h.Get().payload = payload }

// Name returns the envelope's class name.
func (v UserClass) Name() Symbol { return v.h.Get().name }

// Payload returns the wrapped opaque Value.
func (v UserClass) Payload() Value { return v.h.Get().payload }

// Identity implements Referenceable.
func (v UserClass) Identity() uintptr { return v.h.ID() }

var _ Referenceable = UserClass{}

// UserMarshal is structurally identical to Data; it differs only in its
// wire tag ('U').
type UserMarshal struct{ h handle.Handle[envelopeData] }

// NewUserMarshal allocates a new, independently shared UserMarshal
// handle.
func NewUserMarshal(name Symbol, payload Value) UserMarshal {
	return UserMarshal{h: handle.New(envelopeData{name: name, payload: payload})}
}

// Kind implements Value.
func (UserMarshal) Kind() Kind { return KindUserMarshal }

// SetName replaces the envelope's class name in place, used by the reader
// once the name has been decoded after the envelope's placeholder has
// already been published.
func (v UserMarshal) SetName(name Symbol) { v.h.Get().name = name }

// SetPayload replaces the envelope's wrapped payload in place, used by the
// reader once the payload has been decoded.
func (v UserMarshal) SetPayload(payload Value) { v.h.Get().payload = payload }

// Name returns the envelope's class name.
func (v UserMarshal) Name() Symbol { return v.h.Get().name }

// Payload returns the wrapped opaque Value.
func (v UserMarshal) Payload() Value { return v.h.Get().payload }

// Identity implements Referenceable.
func (v UserMarshal) Identity() uintptr { return v.h.ID() }

var _ Referenceable = UserMarshal{}

// --- UserData ---

type userDataData struct {
	name  Symbol
	bytes []byte
}

// UserData is an opaque payload produced by an external serializer (wire
// tag 'u'): a class name plus raw bytes the codec never interprets.
type UserData struct{ h handle.Handle[userDataData] }

// NewUserData allocates a new, independently shared UserData handle.
func NewUserData(name Symbol, b []byte) UserData {
	return UserData{h: handle.New(userDataData{name: name, bytes: b})}
}

// Kind implements Value.
func (UserData) Kind() Kind { return KindUserData }

// Name returns the payload's class name.
func (v UserData) Name() Symbol { return v.h.Get().name }

// Bytes returns the opaque payload bytes.
func (v UserData) Bytes() []byte { return v.h.Get().bytes }

// Identity implements Referenceable.
func (v UserData) Identity() uintptr { return v.h.ID() }

var _ Referenceable = UserData{}

// --- Extended ---

type extendedData struct {
	module Symbol
	object Value
}

// Extended is a singleton module-extension wrapper (wire tag 'e'). It
// implements Referenceable for representational uniformity but the
// writer never assigns it an object-table slot and the reader never
// allocates one for it: Extended is a decoration on the wire, not a
// referenceable carrier.
type Extended struct{ h handle.Handle[extendedData] }

// NewExtended allocates a new, independently shared Extended handle.
func NewExtended(module Symbol, object Value) Extended {
	return Extended{h: handle.New(extendedData{module: module, object: object})}
}

// Kind implements Value.
func (Extended) Kind() Kind { return KindExtended }

// Module returns the extending module's name.
func (v Extended) Module() Symbol { return v.h.Get().module }

// Object returns the extended object.
func (v Extended) Object() Value { return v.h.Get().object }

// Identity implements Referenceable.
func (v Extended) Identity() uintptr { return v.h.ID() }

var _ Referenceable = Extended{}

// NewSymbolFieldMap creates an empty OrderedMap keyed by Symbol, as used
// by Object/Struct fields and StrI/RegexI field tails.
func NewSymbolFieldMap() *OrderedMap[Symbol, Value] {
	return NewOrderedMap[Symbol, Value](Symbol.Hash, Symbol.Equal)
}

// NewValueFieldMap creates an empty OrderedMap keyed by Value, as used by
// the Hash variant's entries.
func NewValueFieldMap() *OrderedMap[Value, Value] {
	return NewOrderedMap[Value, Value](HashValue, Equal)
}
