// Package metricline encodes metric observations (counters, gauges and summaries) into
// the line-oriented metrics ingestion protocol.
//
// Every serialized line has the form
//
//	<metric.key>[,<dim.key>=<dim.value>]... <value segment>[ <epoch millis>]
//
// for example
//
//	svc.requests,method=GET,dt.metrics.source=app count,delta=23 1616580000000
//
// # Core Features
//
//   - Metric key and dimension normalization to the protocol character sets
//   - Escaping of dimension values, with truncation that never splits an escape
//   - Dimension merging: default, then metric, then static dimensions, last wins
//   - Protocol limits: 50 dimensions per line, 2000 characters per line
//   - Shortest round-trip float rendering without locale dependence
//   - Metadata enrichment from host agent side-channel files
//   - Compressed request payloads (gzip, zstd, s2, lz4)
//
// # Basic Usage
//
//	s, _ := metricline.NewSerializer(
//	    serializer.WithPrefix("svc"),
//	    serializer.WithMetricsSource("app"),
//	)
//
//	m, _ := metricline.NewMetric("requests",
//	    metric.WithIntCounterValueDelta(23),
//	    metric.WithDimensions(metricline.NewDimension("method", "GET")),
//	    metric.WithTimestamp(time.Now()),
//	)
//
//	line, err := s.Serialize(m)
//
// # Package Structure
//
// This package provides convenient top-level wrappers. The metric, serializer,
// dimensions, enrich and payload packages expose the full API.
package metricline

import (
	"github.com/arloliu/metricline/dimensions"
	"github.com/arloliu/metricline/format"
	"github.com/arloliu/metricline/metric"
	"github.com/arloliu/metricline/payload"
	"github.com/arloliu/metricline/serializer"
)

const (
	// MaxLineLength is the maximum number of characters of one serialized line.
	MaxLineLength = serializer.MaxLineLength
	// MaxDimensions is the maximum number of dimensions on one line.
	MaxDimensions = serializer.MaxDimensions
	// PayloadLinesLimit is the maximum number of lines per ingestion request.
	PayloadLinesLimit = payload.LinesLimit
	// DefaultOneAgentEndpoint is the local OneAgent metrics ingestion endpoint.
	DefaultOneAgentEndpoint = "http://localhost:14499/metrics/ingest"
)

// NewSerializer creates a serializer.
//
// Parameters:
//   - opts: serializer options (serializer.WithPrefix, serializer.WithDefaultDimensions, ...)
//
// Returns:
//   - *serializer.Serializer: the serializer, safe for concurrent use
//   - error: if instrumentation registration failed
func NewSerializer(opts ...serializer.Option) (*serializer.Serializer, error) {
	return serializer.New(opts...)
}

// NewMetric creates an immutable metric. Exactly one value option is required.
//
// Returns an error wrapping errs.ErrInvalidMetricDefinition for an empty name, a
// missing value, or a value that fails validation.
func NewMetric(name string, opts ...metric.Option) (*metric.Metric, error) {
	return metric.New(name, opts...)
}

// NewDimension creates a raw dimension. Keys and values are normalized at
// serialization time.
func NewDimension(key, value string) dimensions.Dimension {
	return dimensions.NewDimension(key, value)
}

// EncodePayload joins lines into one request body compressed with compression.
func EncodePayload(lines []string, compression format.CompressionType) ([]byte, error) {
	return payload.Encode(lines, compression)
}
