package format

import (
	"math"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFloat(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"zero", 0, "0"},
		{"negative zero", math.Copysign(0, -1), "0"},
		{"fraction", 123.456, "123.456"},
		{"negative fraction", -123.456, "-123.456"},
		{"one third", 1.0 / 3, "0.3333333333333333"},
		{"min float", -math.MaxFloat64, "-1.7976931348623157E+308"},
		{"max float", math.MaxFloat64, "1.7976931348623157E+308"},
		{"1e100", 1e100, "1.0E+100"},
		{"1e-100", 1e-100, "1.0E-100"},
		{"-1e100", -1e100, "-1.0E+100"},
		{"-1e-100", -1e-100, "-1.0E-100"},
		{"1.234e100", 1.234e100, "1.234E+100"},
		{"1.234e-100", 1.234e-100, "1.234E-100"},
		{"-1.234e100", -1.234e100, "-1.234E+100"},
		{"-1.234e-100", -1.234e-100, "-1.234E-100"},
		{"1e18", 1_000_000_000_000_000_000, "1.0E+18"},
		{"-1e18", -1_000_000_000_000_000_000, "-1.0E+18"},
		{"1e-18", 0.000_000_000_000_000_001, "1.0E-18"},
		{"-1e-18", -0.000_000_000_000_000_001, "-1.0E-18"},
		{"1.234e18", 1_234_000_000_000_000_000, "1.234E+18"},
		{"1.234e-18", 0.000_000_000_000_000_001_234, "1.234E-18"},
		{"long fraction", 1.1234567890123456789, "1.1234567890123457"},
		{"negative long fraction", -1.1234567890123456789, "-1.1234567890123457"},
		{"integral", 200.00000000000, "200"},
		{"negative integral", -200.000000000000, "-200"},
		{"upper boundary stays fixed", 1e15, "1000000000000000"},
		{"just above upper boundary", 1e16, "1.0E+16"},
		{"lower boundary stays fixed", 1e-15, "0.000000000000001"},
		{"just below lower boundary", 1e-16, "1.0E-16"},
		{"smallest denormal", math.SmallestNonzeroFloat64, "5.0E-324"},
		{"negative infinity", math.Inf(-1), "-Infinity"},
		{"positive infinity", math.Inf(1), "Infinity"},
		{"nan", math.NaN(), "NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Float(tt.in))
		})
	}
}

func TestAppendFloat_AppendsToExistingBuffer(t *testing.T) {
	buf := []byte("gauge,")
	buf = AppendFloat(buf, 3.4)
	require.Equal(t, "gauge,3.4", string(buf))
}

func TestFloat_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 10000; i++ {
		mantissa := rng.Float64()*2 - 1
		exp := rng.Intn(601) - 300
		d := mantissa * math.Pow(10, float64(exp))

		s := Float(d)
		require.NotContains(t, s, ",")
		require.False(t, strings.HasPrefix(s, "+"))

		parsed, err := strconv.ParseFloat(s, 64)
		require.NoError(t, err, "output %q", s)
		if d == 0 {
			require.Zero(t, parsed)
			continue
		}
		require.Equal(t, d, parsed, "output %q", s)
	}
}
