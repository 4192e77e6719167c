// Package normalize maps arbitrary strings to identifiers and values that the
// metrics ingestion protocol accepts.
//
// None of the functions fail on malformed input. Invalid characters are replaced with
// underscores and oversized input is truncated. The only exception is MetricKey, which
// reports keys that cannot be turned into anything usable.
//
// All length limits count Unicode code points, not bytes.
package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/arloliu/metricline/errs"
)

const (
	MaxLengthMetricKey      = 250
	MaxLengthDimensionKey   = 100
	MaxLengthDimensionValue = 250
)

// MetricKey transforms a fully-qualified metric name (prefix and name joined with a dot)
// into a valid metric key.
//
// Rules:
//   - the input is truncated to MaxLengthMetricKey characters and split on '.'
//   - an empty first section makes the key undefined; empty later sections are dropped
//   - a leading run of characters outside [a-zA-Z_] in the first section, or outside
//     [a-zA-Z0-9_] in later sections, is replaced by a single '_'
//   - every remaining run of characters outside [a-zA-Z0-9_-] is replaced by a single '_'
//
// Returns errs.ErrUndefinedMetricKey if the input is empty, blank, or starts with a dot.
func MetricKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", errs.ErrUndefinedMetricKey
	}

	key = truncate(key, MaxLengthMetricKey)

	var sb strings.Builder
	sb.Grow(len(key))

	for i, section := range strings.Split(key, ".") {
		if section == "" {
			if i == 0 {
				return "", errs.ErrUndefinedMetricKey
			}

			continue
		}

		validStart := isMetricKeyStart
		if i == 0 {
			validStart = isMetricKeyFirstStart
		}

		if sb.Len() > 0 {
			sb.WriteByte('.')
		}
		writeSection(&sb, section, validStart, isMetricKeyChar)
	}

	if sb.Len() == 0 {
		return "", errs.ErrUndefinedMetricKey
	}

	return sb.String(), nil
}

// DimensionKey normalizes a dimension key.
//
// The key is truncated to MaxLengthDimensionKey characters and lowercased. In every
// non-empty dot-separated section a leading run of characters outside [a-z_] becomes a
// single '_', then each run of characters outside [a-z0-9_-:] becomes a single '_'.
// Empty sections are dropped.
//
// An empty result means the key is unusable and the dimension must be dropped.
func DimensionKey(key string) string {
	if key == "" {
		return ""
	}

	key = strings.ToLower(truncate(key, MaxLengthDimensionKey))

	var sb strings.Builder
	sb.Grow(len(key))

	for _, section := range strings.Split(key, ".") {
		if section == "" {
			continue
		}

		if sb.Len() > 0 {
			sb.WriteByte('.')
		}
		writeSection(&sb, section, isDimensionKeyStart, isDimensionKeyChar)
	}

	return sb.String()
}

// DimensionValue truncates value to MaxLengthDimensionValue characters and replaces
// every run of Unicode control, format, surrogate and private-use characters with a
// single '_'.
func DimensionValue(value string) string {
	if value == "" {
		return ""
	}

	value = truncate(value, MaxLengthDimensionValue)

	var sb strings.Builder
	sb.Grow(len(value))

	inRun := false
	for _, r := range value {
		if unicode.Is(unicode.C, r) {
			if !inRun {
				sb.WriteByte('_')
				inRun = true
			}

			continue
		}
		inRun = false
		sb.WriteRune(r)
	}

	return sb.String()
}

// EscapeDimensionValue prefixes each '=', ' ', ',', '\' and '"' with a backslash.
//
// If the escaped value is longer than MaxLengthDimensionValue characters it is truncated.
// When the cut splits an escape sequence, leaving an odd number of trailing backslashes,
// the dangling backslash is removed as well.
func EscapeDimensionValue(value string) string {
	var sb strings.Builder
	sb.Grow(len(value) + 8)

	for _, r := range value {
		if needsEscape(r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}

	escaped := sb.String()
	if utf8.RuneCountInString(escaped) <= MaxLengthDimensionValue {
		return escaped
	}

	escaped = truncate(escaped, MaxLengthDimensionValue)
	if hasDanglingBackslash(escaped) {
		escaped = escaped[:len(escaped)-1]
	}

	return escaped
}

// hasDanglingBackslash reports whether s ends with an odd number of backslashes that
// follow a non-backslash character.
func hasDanglingBackslash(s string) bool {
	trailing := len(s) - len(strings.TrimRight(s, `\`))
	if trailing == len(s) {
		return false
	}

	return trailing%2 == 1
}

func needsEscape(r rune) bool {
	switch r {
	case '=', ' ', ',', '\\', '"':
		return true
	default:
		return false
	}
}

// writeSection writes section to sb, collapsing a leading run of characters rejected by
// validStart into one '_' and every other run of characters rejected by valid into one '_'.
func writeSection(sb *strings.Builder, section string, validStart, valid func(rune) bool) {
	rest := section
	leading := false
	for len(rest) > 0 {
		r, size := utf8.DecodeRuneInString(rest)
		if validStart(r) {
			break
		}
		rest = rest[size:]
		leading = true
	}

	inRun := false
	if leading {
		sb.WriteByte('_')
		inRun = true
	}

	for _, r := range rest {
		if valid(r) {
			sb.WriteRune(r)
			inRun = false

			continue
		}

		if !inRun {
			sb.WriteByte('_')
			inRun = true
		}
	}
}

// truncate cuts s to at most n characters.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}

	return s
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isLower(r rune) bool {
	return r >= 'a' && r <= 'z'
}

func isMetricKeyFirstStart(r rune) bool {
	return isASCIILetter(r) || r == '_'
}

func isMetricKeyStart(r rune) bool {
	return isASCIILetter(r) || isDigit(r) || r == '_'
}

func isMetricKeyChar(r rune) bool {
	return isMetricKeyStart(r) || r == '-'
}

func isDimensionKeyStart(r rune) bool {
	return isLower(r) || r == '_'
}

func isDimensionKeyChar(r rune) bool {
	return isLower(r) || isDigit(r) || r == '_' || r == '-' || r == ':'
}
