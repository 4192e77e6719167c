package serializer

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultOK            = "ok"
	resultUndefinedKey  = "undefined_key"
	resultLineTooLong   = "line_too_long"
	instrumentNamespace = "metricline"
	instrumentSubsystem = "serializer"
)

// instruments tracks serializer activity.
//
// Metrics:
//   - metricline_serializer_lines_total: serialized lines by result
//   - metricline_serializer_dimensions_dropped_total: dimensions dropped by the per-line cap
//   - metricline_serializer_timestamps_dropped_total: out-of-range timestamps omitted
//   - metricline_serializer_key_cache_hits_total: metric keys served from the key cache
//
// The collectors always exist; they are only exported when a registerer is supplied.
type instruments struct {
	linesTotal        *prometheus.CounterVec
	dimensionsDropped prometheus.Counter
	timestampsDropped prometheus.Counter
	keyCacheHits      prometheus.Counter
}

func newInstruments(reg prometheus.Registerer) (*instruments, error) {
	ins := &instruments{
		linesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: instrumentNamespace,
				Subsystem: instrumentSubsystem,
				Name:      "lines_total",
				Help:      "Total number of serialized metric lines by result",
			},
			[]string{"result"},
		),
		dimensionsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: instrumentNamespace,
			Subsystem: instrumentSubsystem,
			Name:      "dimensions_dropped_total",
			Help:      "Total number of dimensions dropped because a line exceeded the dimension limit",
		}),
		timestampsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: instrumentNamespace,
			Subsystem: instrumentSubsystem,
			Name:      "timestamps_dropped_total",
			Help:      "Total number of timestamps omitted because they were out of range",
		}),
		keyCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: instrumentNamespace,
			Subsystem: instrumentSubsystem,
			Name:      "key_cache_hits_total",
			Help:      "Total number of metric keys served from the normalized key cache",
		}),
	}

	if reg == nil {
		return ins, nil
	}

	var err error
	if ins.linesTotal, err = register(reg, ins.linesTotal); err != nil {
		return nil, err
	}
	if ins.dimensionsDropped, err = register(reg, ins.dimensionsDropped); err != nil {
		return nil, err
	}
	if ins.timestampsDropped, err = register(reg, ins.timestampsDropped); err != nil {
		return nil, err
	}
	if ins.keyCacheHits, err = register(reg, ins.keyCacheHits); err != nil {
		return nil, err
	}

	return ins, nil
}

// register registers c, or returns the collector already registered under the same
// descriptor so several serializers can share one registry.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}

	return c, err
}
