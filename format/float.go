// Package format holds the wire-level primitives: float rendering and compression identifiers.
package format

import (
	"math"
	"strconv"
	"strings"
)

const (
	// values with a magnitude outside [expLowerBound, expUpperBound] are written in exponential form.
	expLowerBound = 1e-15
	expUpperBound = 1e15
)

// Float renders d the way the ingestion protocol expects floating point numbers.
//
// The output never depends on the host locale:
//   - 0 and -0 are written as "0"
//   - magnitudes below 1e-15 or above 1e15 use exponential form, e.g. "1.0E+100", "-1.234E-18"
//   - everything else uses fixed-point notation without trailing zeros, e.g. "200", "123.456"
//
// Digits are the shortest decimal representation that parses back to the same float64.
// NaN and infinities are rendered as "NaN", "Infinity" and "-Infinity"; metric value
// constructors reject them, so they only show up in diagnostics.
func Float(d float64) string {
	return string(AppendFloat(make([]byte, 0, 24), d))
}

// AppendFloat appends the protocol representation of d to dst and returns the extended buffer.
// See Float for the formatting rules.
func AppendFloat(dst []byte, d float64) []byte {
	switch {
	case math.IsNaN(d):
		return append(dst, "NaN"...)
	case math.IsInf(d, 1):
		return append(dst, "Infinity"...)
	case math.IsInf(d, -1):
		return append(dst, "-Infinity"...)
	}

	abs := math.Abs(d)
	if abs == 0 {
		return append(dst, '0')
	}

	if abs < expLowerBound || abs > expUpperBound {
		return appendExponential(dst, d)
	}

	return strconv.AppendFloat(dst, d, 'f', -1, 64)
}

// appendExponential writes d as <mantissa>E<sign><exponent>. The mantissa always has a
// fractional part and the exponent is not zero-padded.
func appendExponential(dst []byte, d float64) []byte {
	// strconv yields forms like "1E+100", "-1.234E-18" or "1.7976931348623157E+308"
	s := strconv.FormatFloat(d, 'E', -1, 64)
	mantissa, exponent, _ := strings.Cut(s, "E")

	dst = append(dst, mantissa...)
	if !strings.Contains(mantissa, ".") {
		dst = append(dst, ".0"...)
	}
	dst = append(dst, 'E')

	sign, digits := exponent[:1], strings.TrimLeft(exponent[1:], "0")
	if digits == "" {
		digits = "0"
	}
	dst = append(dst, sign...)

	return append(dst, digits...)
}
