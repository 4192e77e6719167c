// Package metric defines the metric object handed to the serializer: a name, raw
// dimensions, a value and an optional timestamp.
//
// Metrics are immutable once built:
//
//	m, err := metric.New("requests",
//	    metric.WithDimensions(dimensions.NewDimension("method", "GET")),
//	    metric.WithIntCounterValueDelta(23),
//	    metric.WithTimestamp(time.Now()),
//	)
package metric

import (
	"fmt"
	"time"

	"github.com/arloliu/metricline/dimensions"
	"github.com/arloliu/metricline/errs"
	"github.com/arloliu/metricline/internal/options"
)

// Metric is a single observation ready to be serialized.
type Metric struct {
	name       string
	dimensions []dimensions.Dimension
	value      Value
	timestamp  time.Time
}

// Option configures a Metric under construction.
type Option = options.Option[*Metric]

// New creates a metric named name.
//
// Parameters:
//   - name: raw metric name, must not be empty. Normalization happens at serialization.
//   - opts: options; exactly one value option is required, the last one wins.
//
// Returns:
//   - *Metric: the immutable metric
//   - error: wraps errs.ErrInvalidMetricDefinition if the name is empty, a value option
//     rejects its input, or no value was set (errs.ErrMissingValue)
func New(name string, opts ...Option) (*Metric, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: metric name can't be empty", errs.ErrInvalidMetricDefinition)
	}

	m := &Metric{name: name}
	if err := options.Apply(m, opts...); err != nil {
		return nil, err
	}

	if m.value == nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidMetricDefinition, errs.ErrMissingValue)
	}

	return m, nil
}

// Name returns the raw metric name.
func (m *Metric) Name() string {
	return m.name
}

// Dimensions returns a copy of the raw metric dimensions in insertion order.
func (m *Metric) Dimensions() []dimensions.Dimension {
	if len(m.dimensions) == 0 {
		return nil
	}

	out := make([]dimensions.Dimension, len(m.dimensions))
	copy(out, m.dimensions)

	return out
}

// Value returns the metric value.
func (m *Metric) Value() Value {
	return m.value
}

// Timestamp returns the metric timestamp and whether one was set.
func (m *Metric) Timestamp() (time.Time, bool) {
	return m.timestamp, !m.timestamp.IsZero()
}

// WithDimensions appends raw dimensions to the metric. It may be used several times.
func WithDimensions(dims ...dimensions.Dimension) Option {
	return options.NoError(func(m *Metric) {
		m.dimensions = append(m.dimensions, dims...)
	})
}

// WithTimestamp sets the metric timestamp. The zero time means no timestamp.
func WithTimestamp(ts time.Time) Option {
	return options.NoError(func(m *Metric) {
		m.timestamp = ts
	})
}

// WithValue sets an already constructed value.
func WithValue(v Value) Option {
	return options.NoError(func(m *Metric) {
		m.value = v
	})
}

// WithIntCounterValueDelta sets an integer delta counter value.
func WithIntCounterValueDelta(v int64) Option {
	return WithValue(NewIntCounter(v, true))
}

// WithIntCounterValueTotal sets an integer absolute counter value.
func WithIntCounterValueTotal(v int64) Option {
	return WithValue(NewIntCounter(v, false))
}

// WithIntGaugeValue sets an integer gauge value.
func WithIntGaugeValue(v int64) Option {
	return WithValue(NewIntGauge(v))
}

// WithIntSummaryValue sets an integer summary value.
func WithIntSummaryValue(minimum, maximum, sum, count int64) Option {
	return options.New(func(m *Metric) error {
		v, err := NewIntSummary(minimum, maximum, sum, count)
		if err != nil {
			return err
		}
		m.value = v

		return nil
	})
}

// WithFloatCounterValueDelta sets a floating point delta counter value.
func WithFloatCounterValueDelta(v float64) Option {
	return withFloatCounter(v, true)
}

// WithFloatCounterValueTotal sets a floating point absolute counter value.
func WithFloatCounterValueTotal(v float64) Option {
	return withFloatCounter(v, false)
}

func withFloatCounter(v float64, delta bool) Option {
	return options.New(func(m *Metric) error {
		c, err := NewFloatCounter(v, delta)
		if err != nil {
			return err
		}
		m.value = c

		return nil
	})
}

// WithFloatGaugeValue sets a floating point gauge value.
func WithFloatGaugeValue(v float64) Option {
	return options.New(func(m *Metric) error {
		g, err := NewFloatGauge(v)
		if err != nil {
			return err
		}
		m.value = g

		return nil
	})
}

// WithFloatSummaryValue sets a floating point summary value.
func WithFloatSummaryValue(minimum, maximum, sum float64, count int64) Option {
	return options.New(func(m *Metric) error {
		s, err := NewFloatSummary(minimum, maximum, sum, count)
		if err != nil {
			return err
		}
		m.value = s

		return nil
	})
}
