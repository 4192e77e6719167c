// Package errs defines the sentinel errors returned by metricline packages.
//
// Errors are wrapped with additional context using fmt.Errorf and "%w", so callers
// should match them with errors.Is rather than comparing directly.
package errs

import "errors"

var (
	// ErrInvalidMetricDefinition is returned when a metric or metric value cannot be
	// constructed: empty name, summary with min > max or count < 0, or a non-finite float.
	ErrInvalidMetricDefinition = errors.New("invalid metric definition")

	// ErrMissingValue is returned when a metric is built without a value.
	ErrMissingValue = errors.New("metric value is required")

	// ErrUndefinedMetricKey is returned when the fully-qualified metric key normalizes to nothing.
	ErrUndefinedMetricKey = errors.New("metric key can't be undefined")

	// ErrLineTooLong is returned when an assembled line exceeds the protocol line length limit.
	ErrLineTooLong = errors.New("metric line exceeds line length limit")

	// ErrInvalidCompression is returned for an unknown payload compression type.
	ErrInvalidCompression = errors.New("invalid compression type")

	// ErrTooManyLines is returned when a payload would exceed the per-request line limit.
	ErrTooManyLines = errors.New("payload exceeds line limit")
)
