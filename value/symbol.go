package value

import (
	"bytes"
	"unicode/utf8"

	"github.com/halcyon-io/rmarshal/internal/hash"
)

// Symbol is an interned, immutable byte string: the wire format's ':'
// entries and the keys of every field map. A Symbol is not necessarily
// valid UTF-8.
//
// Symbol is cheap to copy: the byte slice header is copied, not the
// backing array, the same sharing a Go slice always gives. Callers must
// treat the bytes returned by Bytes as read-only, mirroring the
// immutability the source format assumes of interned strings.
type Symbol struct {
	b []byte
}

var _ Value = Symbol{}

// NewSymbol interns b, copying it once so the returned Symbol owns
// immutable storage independent of the caller's slice.
func NewSymbol(b []byte) Symbol {
	owned := make([]byte, len(b))
	copy(owned, b)

	return Symbol{b: owned}
}

// Kind implements Value.
func (Symbol) Kind() Kind { return KindSymbol }

// Bytes returns the symbol's raw bytes. The caller must not modify the
// returned slice.
func (s Symbol) Bytes() []byte { return s.b }

// UTF8 returns the symbol's bytes as a string if they are valid UTF-8.
func (s Symbol) UTF8() (string, bool) {
	if !utf8.Valid(s.b) {
		return "", false
	}

	return string(s.b), true
}

// Equal reports whether two symbols have identical bytes.
func (s Symbol) Equal(o Symbol) bool { return bytes.Equal(s.b, o.b) }

// Compare orders two symbols by raw byte content.
func (s Symbol) Compare(o Symbol) int { return bytes.Compare(s.b, o.b) }

// Hash returns a content-based hash of the symbol's bytes, used by
// OrderedMap's hash index when Symbol is the key type.
func (s Symbol) Hash() uint64 { return hash.ID(string(s.b)) }
