// Package serializer turns metric.Metric values into lines of the metrics ingestion
// line protocol:
//
//	<metric.key>[,<dim.key>=<dim.value>]... <value segment>[ <epoch millis>]
//
// A Serializer holds the prefix and the default and static dimensions, which are
// normalized once at construction. Serialize is safe for concurrent use.
package serializer

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/arloliu/metricline/dimensions"
	"github.com/arloliu/metricline/enrich"
	"github.com/arloliu/metricline/errs"
	"github.com/arloliu/metricline/internal/keycache"
	"github.com/arloliu/metricline/internal/options"
	"github.com/arloliu/metricline/internal/pool"
	"github.com/arloliu/metricline/metric"
	"github.com/arloliu/metricline/normalize"
)

const (
	// MaxLineLength is the maximum number of characters of a serialized line.
	MaxLineLength = 2000
	// MaxDimensions is the maximum number of dimensions on a serialized line.
	MaxDimensions = 50
	// MetricsSourceDimension is the dimension key set by WithMetricsSource.
	MetricsSourceDimension = "dt.metrics.source"

	minTimestampYear = 2000
	maxTimestampYear = 3000
)

// Serializer serializes metrics into protocol lines.
type Serializer struct {
	prefix      string
	defaultDims dimensions.NormalizedDimensionList
	staticDims  dimensions.NormalizedDimensionList
	keys        *keycache.Cache
	logger      *zap.Logger
	ins         *instruments
}

// New creates a Serializer.
//
// When metadata enrichment is enabled (the default) the configured enricher, or the
// OneAgent enricher if none is set, runs once here. Enrichment never fails New.
//
// Parameters:
//   - opts: configuration options, see WithPrefix, WithDefaultDimensions, WithMetricsSource
//     and friends
//
// Returns:
//   - *Serializer: the configured serializer
//   - error: if instrumentation could not be registered with the supplied registerer
func New(opts ...Option) (*Serializer, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	ins, err := newInstruments(cfg.registerer)
	if err != nil {
		return nil, fmt.Errorf("register serializer metrics: %w", err)
	}

	return &Serializer{
		prefix:      cfg.prefix,
		defaultDims: dimensions.MergeLists(dimensions.NewNormalizedDimensionList(cfg.defaultDims...)),
		staticDims:  dimensions.MergeLists(dimensions.NewNormalizedDimensionList(staticDimensions(cfg)...)),
		keys:        keycache.New(cfg.keyCacheSize),
		logger:      cfg.logger,
		ins:         ins,
	}, nil
}

// staticDimensions returns enrichment dimensions, then explicit static dimensions, then
// the metrics source.
func staticDimensions(cfg *config) []dimensions.Dimension {
	var dims []dimensions.Dimension

	if cfg.enrichMetadata {
		enricher := cfg.enricher
		if enricher == nil {
			enricher = enrich.NewOneAgentEnricher(cfg.logger, nil)
		}
		dims = enricher.Enrich(dims)
	}

	dims = append(dims, cfg.staticDims...)

	if cfg.metricsSource != "" {
		dims = append(dims, dimensions.NewDimension(MetricsSourceDimension, cfg.metricsSource))
	}

	return dims
}

// Prefix returns the configured metric key prefix.
func (s *Serializer) Prefix() string {
	return s.prefix
}

// DefaultDimensions returns a copy of the normalized default dimensions.
func (s *Serializer) DefaultDimensions() []dimensions.Dimension {
	return s.defaultDims.Dimensions()
}

// StaticDimensions returns a copy of the normalized static dimensions.
func (s *Serializer) StaticDimensions() []dimensions.Dimension {
	return s.staticDims.Dimensions()
}

// Serialize renders m as a single protocol line.
//
// Returns:
//   - string: the line, without a trailing newline
//   - error: errs.ErrUndefinedMetricKey if the prefixed name normalizes to nothing,
//     errs.ErrLineTooLong if the line exceeds MaxLineLength characters
func (s *Serializer) Serialize(m *metric.Metric) (string, error) {
	if m == nil || m.Value() == nil {
		return "", fmt.Errorf("%w: metric has no value", errs.ErrInvalidMetricDefinition)
	}

	key, err := s.metricKey(m.Name())
	if err != nil {
		s.ins.linesTotal.WithLabelValues(resultUndefinedKey).Inc()
		return "", err
	}

	dims := dimensions.MergeLists(s.defaultDims, dimensions.NewNormalizedDimensionList(m.Dimensions()...), s.staticDims)
	if dims.Len() > MaxDimensions {
		dropped := dims.Len() - MaxDimensions
		s.logger.Debug("dropping dimensions over the line limit",
			zap.String("metric", m.Name()),
			zap.Int("dropped", dropped),
			zap.Int("limit", MaxDimensions),
		)
		s.ins.dimensionsDropped.Add(float64(dropped))
		dims = dims.Tail(MaxDimensions)
	}

	buf := pool.GetLineBuffer()
	defer pool.PutLineBuffer(buf)

	buf.B = append(buf.B, key...)
	buf.B = dims.AppendTo(buf.B)
	buf.B = append(buf.B, ' ')
	buf.B = m.Value().AppendTo(buf.B)

	if ts, ok := m.Timestamp(); ok {
		buf.B = s.appendTimestamp(buf.B, ts)
	}

	if n := utf8.RuneCount(buf.B); n > MaxLineLength {
		s.ins.linesTotal.WithLabelValues(resultLineTooLong).Inc()
		return "", fmt.Errorf("%w: metric %q has %d characters, limit is %d",
			errs.ErrLineTooLong, m.Name(), n, MaxLineLength)
	}

	s.ins.linesTotal.WithLabelValues(resultOK).Inc()

	return buf.String(), nil
}

// SerializeAll serializes every metric independently. It returns the successful lines in
// input order together with the combined error of every failure.
func (s *Serializer) SerializeAll(metrics []*metric.Metric) ([]string, error) {
	lines := make([]string, 0, len(metrics))

	var err error
	for i, m := range metrics {
		line, serr := s.Serialize(m)
		if serr != nil {
			err = multierr.Append(err, fmt.Errorf("metric %d: %w", i, serr))
			continue
		}
		lines = append(lines, line)
	}

	return lines, err
}

func (s *Serializer) metricKey(name string) (string, error) {
	if key, ok := s.keys.Get(s.prefix, name); ok {
		s.ins.keyCacheHits.Inc()
		return key, nil
	}

	raw := name
	if s.prefix != "" {
		raw = s.prefix + "." + name
	}

	key, err := normalize.MetricKey(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", err, raw)
	}
	s.keys.Put(s.prefix, name, key)

	return key, nil
}

func (s *Serializer) appendTimestamp(dst []byte, ts time.Time) []byte {
	if year := ts.Year(); year < minTimestampYear || year > maxTimestampYear {
		s.ins.timestampsDropped.Inc()
		if timestampWarnings.allow(timestampWarningThrottle) {
			s.logger.Warn("timestamp out of range, omitting it; the ingestion time will be used instead",
				zap.Time("timestamp", ts),
				zap.Int("throttle", timestampWarningThrottle),
			)
		}

		return dst
	}

	dst = append(dst, ' ')

	return strconv.AppendInt(dst, ts.UnixMilli(), 10)
}
