package wireutil

import "math/big"

// EncodeBigInt splits v into the wire format's sign byte and
// little-endian half-word magnitude. When the big-endian magnitude has an
// odd byte length it is left-padded by one zero byte before reversing, so
// the half-word count is always a whole number and encode/decode stay
// symmetric.
func EncodeBigInt(v *big.Int) (sign byte, halfwords int32, payload []byte) {
	sign = '+'
	if v.Sign() < 0 {
		sign = '-'
	}

	mag := new(big.Int).Abs(v).Bytes() // big-endian, no leading zeros; empty for zero
	if len(mag)%2 != 0 {
		padded := make([]byte, len(mag)+1)
		copy(padded[1:], mag)
		mag = padded
	}

	le := make([]byte, len(mag))
	for i, b := range mag {
		le[len(mag)-1-i] = b
	}

	return sign, int32(len(le) / 2), le //nolint:gosec
}

// DecodeBigInt reconstructs a *big.Int from the wire format's sign byte
// and little-endian magnitude payload.
func DecodeBigInt(sign byte, payload []byte) *big.Int {
	be := make([]byte, len(payload))
	for i, b := range payload {
		be[len(payload)-1-i] = b
	}

	v := new(big.Int).SetBytes(be)
	if sign == '-' {
		v.Neg(v)
	}

	return v
}
