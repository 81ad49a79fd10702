package value

import "github.com/halcyon-io/rmarshal/internal/hash"

// HashValue returns a content-based hash for scalar variants and an
// identity-based hash for referenceable variants.
//
// Referenceable content is potentially cyclic, so hashing it by content
// would risk non-termination; sharing is the primary notion of identity
// for these variants during encoding (see Compare), and two handles that
// are the "same object" must hash the same way a plain pointer-keyed map
// would expect.
func HashValue(v Value) uint64 {
	switch x := v.(type) {
	case Nil:
		return tagHash(KindNil)
	case False:
		return tagHash(KindFalse)
	case True:
		return tagHash(KindTrue)
	case Int:
		return tagHash(KindInt) ^ hash.ID(string(int32Bytes(int32(x))))
	case Symbol:
		return tagHash(KindSymbol) ^ x.Hash()
	default:
		r, ok := v.(Referenceable)
		if !ok {
			return tagHash(KindNil)
		}

		return uint64(r.Identity()) //nolint:gosec
	}
}

func tagHash(k Kind) uint64 {
	return hash.ID(string([]byte{byte(k)}))
}

func int32Bytes(v int32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)} //nolint:gosec
}
