// Package wireutil holds small encode/decode helpers shared by the reader
// and writer packages: Float's textual representation and BigInt's
// little-endian half-word magnitude encoding.
package wireutil

import (
	"bytes"
	"math"
	"strconv"

	"github.com/halcyon-io/rmarshal/errs"
)

// FormatFloat renders f the way the writer emits it: "inf"/"-inf"/"nan"
// for the special values, otherwise plain fixed-point decimal text (never
// scientific notation) with the shortest digit sequence that round-trips
// exactly. This is a canonical choice; the source ecosystem's own
// formatting may differ byte-for-byte and that divergence is accepted as
// non-normative. 'f' rather than 'g' matters here: 'g' switches to
// scientific notation once the exponent grows large enough, which the
// wire format never does.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	default:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
}

// ParseFloat parses a Float body. It truncates at the first NUL byte
// before parsing, tolerating the legacy C-string-terminated form some
// writers emit, and recognizes "inf", "-inf", and "nan" before falling
// back to standard decimal parsing.
func ParseFloat(raw []byte) (float64, error) {
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}

	switch string(raw) {
	case "inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	case "nan":
		return math.NaN(), nil
	}

	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return 0, &errs.ParseFloatError{Err: err}
	}

	return f, nil
}
