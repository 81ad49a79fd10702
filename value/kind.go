package value

// Kind is the coarse type tag returned by Value.Kind. Its integer values
// are declared in the fixed ordinal order used by Compare for the
// "variant tag first" step of deep ordering: scalars in Nil < False <
// True < Int < Symbol order, then referenceable variants in the order
// Array, BigInt, ClassModuleRef, ClassRef, Data, Extended, Float, Hash,
// ModuleRef, Object, Regex, RegexI, Str, StrI, Struct, UserClass,
// UserData, UserMarshal.
type Kind uint8

const (
	KindNil Kind = iota
	KindFalse
	KindTrue
	KindInt
	KindSymbol
	KindArray
	KindBigInt
	KindClassModuleRef
	KindClassRef
	KindData
	KindExtended
	KindFloat
	KindHash
	KindModuleRef
	KindObject
	KindRegex
	KindRegexI
	KindStr
	KindStrI
	KindStruct
	KindUserClass
	KindUserData
	KindUserMarshal
)

// String returns a short human-readable name for the Kind, used in
// UnexpectedTypeError messages.
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "Nil"
	case KindFalse:
		return "False"
	case KindTrue:
		return "True"
	case KindInt:
		return "Int"
	case KindSymbol:
		return "Symbol"
	case KindArray:
		return "Array"
	case KindBigInt:
		return "BigInt"
	case KindClassModuleRef:
		return "ClassModuleRef"
	case KindClassRef:
		return "ClassRef"
	case KindData:
		return "Data"
	case KindExtended:
		return "Extended"
	case KindFloat:
		return "Float"
	case KindHash:
		return "Hash"
	case KindModuleRef:
		return "ModuleRef"
	case KindObject:
		return "Object"
	case KindRegex:
		return "Regex"
	case KindRegexI:
		return "RegexI"
	case KindStr:
		return "Str"
	case KindStrI:
		return "StrI"
	case KindStruct:
		return "Struct"
	case KindUserClass:
		return "UserClass"
	case KindUserData:
		return "UserData"
	case KindUserMarshal:
		return "UserMarshal"
	default:
		return "Unknown"
	}
}

// Value is implemented by every variant in the object graph.
type Value interface {
	Kind() Kind
}

// Referenceable is implemented by every Value variant eligible for
// sharing via an object-table back-reference (everything except Nil,
// False, True, Int, Symbol, and Extended-on-the-wire, per the glossary).
// Extended implements Referenceable too, for uniform handling, even
// though the writer never assigns it an object-table slot.
type Referenceable interface {
	Value
	// Identity returns an address-based identity: two Referenceable
	// values sharing the same underlying handle always return the same
	// Identity, regardless of content.
	Identity() uintptr
}
