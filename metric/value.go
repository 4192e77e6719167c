package metric

import (
	"fmt"
	"math"
	"strconv"

	"github.com/arloliu/metricline/errs"
	"github.com/arloliu/metricline/format"
)

// Value is the numeric payload of a metric. Each implementation renders its own value
// segment, e.g. "count,delta=5" or "gauge,min=1,max=6,sum=10,count=5".
type Value interface {
	// AppendTo appends the value segment to dst and returns the extended buffer.
	AppendTo(dst []byte) []byte
	// String returns the value segment.
	String() string
}

var (
	_ Value = IntCounter{}
	_ Value = IntGauge{}
	_ Value = IntSummary{}
	_ Value = FloatCounter{}
	_ Value = FloatGauge{}
	_ Value = FloatSummary{}
)

const (
	counterDeltaPrefix = "count,delta="
	counterPrefix      = "count,"
	gaugePrefix        = "gauge,"
)

// IntCounter is an integer counter value.
type IntCounter struct {
	value int64
	delta bool
}

// NewIntCounter creates an integer counter. If delta is true the value is rendered as a
// delta ("count,delta=<v>"), otherwise as an absolute total ("count,<v>").
func NewIntCounter(value int64, delta bool) IntCounter {
	return IntCounter{value: value, delta: delta}
}

// Value returns the counter value.
func (c IntCounter) Value() int64 { return c.value }

// IsDelta reports whether the counter is rendered as a delta.
func (c IntCounter) IsDelta() bool { return c.delta }

func (c IntCounter) AppendTo(dst []byte) []byte {
	dst = appendCounterPrefix(dst, c.delta)
	return strconv.AppendInt(dst, c.value, 10)
}

func (c IntCounter) String() string { return string(c.AppendTo(nil)) }

// IntGauge is an integer gauge value.
type IntGauge struct {
	value int64
}

// NewIntGauge creates an integer gauge.
func NewIntGauge(value int64) IntGauge {
	return IntGauge{value: value}
}

// Value returns the gauge value.
func (g IntGauge) Value() int64 { return g.value }

func (g IntGauge) AppendTo(dst []byte) []byte {
	dst = append(dst, gaugePrefix...)
	return strconv.AppendInt(dst, g.value, 10)
}

func (g IntGauge) String() string { return string(g.AppendTo(nil)) }

// IntSummary is an integer summary (min, max, sum, count) value.
type IntSummary struct {
	min   int64
	max   int64
	sum   int64
	count int64
}

// NewIntSummary creates an integer summary.
//
// Returns an error wrapping errs.ErrInvalidMetricDefinition if count is negative or min
// is larger than max.
func NewIntSummary(minimum, maximum, sum, count int64) (IntSummary, error) {
	if count < 0 {
		return IntSummary{}, fmt.Errorf("%w: count cannot be less than 0", errs.ErrInvalidMetricDefinition)
	}
	if minimum > maximum {
		return IntSummary{}, fmt.Errorf("%w: min cannot be larger than max", errs.ErrInvalidMetricDefinition)
	}

	return IntSummary{min: minimum, max: maximum, sum: sum, count: count}, nil
}

func (s IntSummary) Min() int64   { return s.min }
func (s IntSummary) Max() int64   { return s.max }
func (s IntSummary) Sum() int64   { return s.sum }
func (s IntSummary) Count() int64 { return s.count }

func (s IntSummary) AppendTo(dst []byte) []byte {
	dst = append(dst, "gauge,min="...)
	dst = strconv.AppendInt(dst, s.min, 10)
	dst = append(dst, ",max="...)
	dst = strconv.AppendInt(dst, s.max, 10)
	dst = append(dst, ",sum="...)
	dst = strconv.AppendInt(dst, s.sum, 10)
	dst = append(dst, ",count="...)

	return strconv.AppendInt(dst, s.count, 10)
}

func (s IntSummary) String() string { return string(s.AppendTo(nil)) }

// FloatCounter is a floating point counter value.
type FloatCounter struct {
	value float64
	delta bool
}

// NewFloatCounter creates a floating point counter.
//
// Returns an error wrapping errs.ErrInvalidMetricDefinition if value is NaN or infinite.
func NewFloatCounter(value float64, delta bool) (FloatCounter, error) {
	if err := checkFinite(value); err != nil {
		return FloatCounter{}, err
	}

	return FloatCounter{value: value, delta: delta}, nil
}

// Value returns the counter value.
func (c FloatCounter) Value() float64 { return c.value }

// IsDelta reports whether the counter is rendered as a delta.
func (c FloatCounter) IsDelta() bool { return c.delta }

func (c FloatCounter) AppendTo(dst []byte) []byte {
	dst = appendCounterPrefix(dst, c.delta)
	return format.AppendFloat(dst, c.value)
}

func (c FloatCounter) String() string { return string(c.AppendTo(nil)) }

// FloatGauge is a floating point gauge value.
type FloatGauge struct {
	value float64
}

// NewFloatGauge creates a floating point gauge.
//
// Returns an error wrapping errs.ErrInvalidMetricDefinition if value is NaN or infinite.
func NewFloatGauge(value float64) (FloatGauge, error) {
	if err := checkFinite(value); err != nil {
		return FloatGauge{}, err
	}

	return FloatGauge{value: value}, nil
}

// Value returns the gauge value.
func (g FloatGauge) Value() float64 { return g.value }

func (g FloatGauge) AppendTo(dst []byte) []byte {
	dst = append(dst, gaugePrefix...)
	return format.AppendFloat(dst, g.value)
}

func (g FloatGauge) String() string { return string(g.AppendTo(nil)) }

// FloatSummary is a floating point summary value with an integer count.
type FloatSummary struct {
	min   float64
	max   float64
	sum   float64
	count int64
}

// NewFloatSummary creates a floating point summary.
//
// Returns an error wrapping errs.ErrInvalidMetricDefinition if count is negative, min is
// larger than max, or any of min, max and sum is NaN or infinite.
func NewFloatSummary(minimum, maximum, sum float64, count int64) (FloatSummary, error) {
	if count < 0 {
		return FloatSummary{}, fmt.Errorf("%w: count cannot be less than 0", errs.ErrInvalidMetricDefinition)
	}
	if minimum > maximum {
		return FloatSummary{}, fmt.Errorf("%w: min cannot be larger than max", errs.ErrInvalidMetricDefinition)
	}
	for _, v := range [...]float64{minimum, maximum, sum} {
		if err := checkFinite(v); err != nil {
			return FloatSummary{}, err
		}
	}

	return FloatSummary{min: minimum, max: maximum, sum: sum, count: count}, nil
}

func (s FloatSummary) Min() float64 { return s.min }
func (s FloatSummary) Max() float64 { return s.max }
func (s FloatSummary) Sum() float64 { return s.sum }
func (s FloatSummary) Count() int64 { return s.count }

func (s FloatSummary) AppendTo(dst []byte) []byte {
	dst = append(dst, "gauge,min="...)
	dst = format.AppendFloat(dst, s.min)
	dst = append(dst, ",max="...)
	dst = format.AppendFloat(dst, s.max)
	dst = append(dst, ",sum="...)
	dst = format.AppendFloat(dst, s.sum)
	dst = append(dst, ",count="...)

	return strconv.AppendInt(dst, s.count, 10)
}

func (s FloatSummary) String() string { return string(s.AppendTo(nil)) }

func appendCounterPrefix(dst []byte, delta bool) []byte {
	if delta {
		return append(dst, counterDeltaPrefix...)
	}

	return append(dst, counterPrefix...)
}

func checkFinite(v float64) error {
	if math.IsNaN(v) {
		return fmt.Errorf("%w: value is NaN", errs.ErrInvalidMetricDefinition)
	}
	if math.IsInf(v, 0) {
		return fmt.Errorf("%w: value is infinite", errs.ErrInvalidMetricDefinition)
	}

	return nil
}
