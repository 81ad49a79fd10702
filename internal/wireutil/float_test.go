package wireutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name string
		f    float64
		want string
	}{
		{"zero", 0.0, "0"},
		{"negative zero", math.Copysign(0, -1), "-0"},
		{"positive infinity", math.Inf(1), "inf"},
		{"negative infinity", math.Inf(-1), "-inf"},
		{"nan", math.NaN(), "nan"},
		{"spec scenario 5 value", -1196073.75, "-1196073.75"},
		{"five integer digits", 12345.5, "12345.5"},
		{"six integer digits", 123456.5, "123456.5"},
		{"seven integer digits, still fixed-point", 1234567.25, "1234567.25"},
		{"large magnitude stays fixed-point", 123456789012.0, "123456789012"},
		{"ordinary fraction", 0.123, "0.123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatFloat(tt.f)
			require.Equal(t, tt.want, got)
			require.NotContains(t, got, "e", "FormatFloat must never emit scientific notation")
		})
	}
}
