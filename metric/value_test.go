package metric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/metricline/errs"
)

func TestIntCounter(t *testing.T) {
	tests := []struct {
		value int64
		delta bool
		want  string
	}{
		{100, true, "count,delta=100"},
		{-10, true, "count,delta=-10"},
		{math.MaxInt64, true, "count,delta=9223372036854775807"},
		{math.MinInt64, true, "count,delta=-9223372036854775808"},
		{100, false, "count,100"},
		{0, false, "count,0"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			c := NewIntCounter(tt.value, tt.delta)
			require.Equal(t, tt.want, c.String())
			require.Equal(t, tt.value, c.Value())
			require.Equal(t, tt.delta, c.IsDelta())
		})
	}
}

func TestIntGauge(t *testing.T) {
	require.Equal(t, "gauge,100", NewIntGauge(100).String())
	require.Equal(t, "gauge,-10", NewIntGauge(-10).String())
	require.Equal(t, "gauge,9223372036854775807", NewIntGauge(math.MaxInt64).String())
	require.Equal(t, "gauge,-9223372036854775808", NewIntGauge(math.MinInt64).String())
}

func TestIntSummary(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		tests := []struct {
			min, max, sum, count int64
			want                 string
		}{
			{1, 6, 10, 5, "gauge,min=1,max=6,sum=10,count=5"},
			{-5, -1, -10, 5, "gauge,min=-5,max=-1,sum=-10,count=5"},
			{1, 1, 1, 1, "gauge,min=1,max=1,sum=1,count=1"},
			{1, 6, 10, 0, "gauge,min=1,max=6,sum=10,count=0"},
		}
		for _, tt := range tests {
			s, err := NewIntSummary(tt.min, tt.max, tt.sum, tt.count)
			require.NoError(t, err)
			require.Equal(t, tt.want, s.String())
			require.Equal(t, tt.count, s.Count())
		}
	})

	t.Run("negative count", func(t *testing.T) {
		_, err := NewIntSummary(1, 6, 10, -3)
		require.ErrorIs(t, err, errs.ErrInvalidMetricDefinition)
		require.ErrorContains(t, err, "count cannot be less than 0")
	})

	t.Run("min larger than max", func(t *testing.T) {
		_, err := NewIntSummary(6, 1, 10, 5)
		require.ErrorIs(t, err, errs.ErrInvalidMetricDefinition)
		require.ErrorContains(t, err, "min cannot be larger than max")
	})
}

func TestFloatCounterAndGauge(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{123.456, "123.456"},
		{-123.456, "-123.456"},
		{1.0 / 3, "0.3333333333333333"},
		{200.00000000000000, "200"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			c, err := NewFloatCounter(tt.value, true)
			require.NoError(t, err)
			require.Equal(t, "count,delta="+tt.want, c.String())

			total, err := NewFloatCounter(tt.value, false)
			require.NoError(t, err)
			require.Equal(t, "count,"+tt.want, total.String())

			g, err := NewFloatGauge(tt.value)
			require.NoError(t, err)
			require.Equal(t, "gauge,"+tt.want, g.String())
		})
	}

	for _, v := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		_, err := NewFloatCounter(v, true)
		require.ErrorIs(t, err, errs.ErrInvalidMetricDefinition)
		_, err = NewFloatGauge(v)
		require.ErrorIs(t, err, errs.ErrInvalidMetricDefinition)
	}

	_, err := NewFloatGauge(math.NaN())
	require.ErrorContains(t, err, "value is NaN")
	_, err = NewFloatGauge(math.Inf(1))
	require.ErrorContains(t, err, "value is infinite")
}

func TestFloatSummary(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		tests := []struct {
			min, max, sum float64
			count         int64
			want          string
		}{
			{1.2, 3.4, 8.9, 4, "gauge,min=1.2,max=3.4,sum=8.9,count=4"},
			{
				-math.MaxFloat64, math.MaxFloat64, math.MaxFloat64, 5,
				"gauge,min=-1.7976931348623157E+308,max=1.7976931348623157E+308,sum=1.7976931348623157E+308,count=5",
			},
			{1.23e-18, 1.23e18, 5.6e18, 7, "gauge,min=1.23E-18,max=1.23E+18,sum=5.6E+18,count=7"},
			{1.2, 1.2, 1.2, 4, "gauge,min=1.2,max=1.2,sum=1.2,count=4"},
		}
		for _, tt := range tests {
			s, err := NewFloatSummary(tt.min, tt.max, tt.sum, tt.count)
			require.NoError(t, err)
			require.Equal(t, tt.want, s.String())
		}
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := NewFloatSummary(1.2, 2.3, 5.6, -3)
		require.ErrorIs(t, err, errs.ErrInvalidMetricDefinition)
		require.ErrorContains(t, err, "count cannot be less than 0")

		_, err = NewFloatSummary(6.5, 1.2, 10.7, 5)
		require.ErrorIs(t, err, errs.ErrInvalidMetricDefinition)
		require.ErrorContains(t, err, "min cannot be larger than max")
	})

	t.Run("non-finite combinations", func(t *testing.T) {
		values := []float64{1.2, math.Inf(-1), math.Inf(1), math.NaN()}
		finite := func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

		for _, i := range values {
			for _, j := range values {
				for _, k := range values {
					s, err := NewFloatSummary(i, j, k, 1)
					if finite(i) && finite(j) && finite(k) {
						require.NoError(t, err)
						require.Equal(t, "gauge,min=1.2,max=1.2,sum=1.2,count=1", s.String())
					} else {
						require.ErrorIs(t, err, errs.ErrInvalidMetricDefinition, "min=%v max=%v sum=%v", i, j, k)
					}
				}
			}
		}
	})
}

func TestValue_AppendTo(t *testing.T) {
	buf := []byte("svc.requests ")
	buf = NewIntGauge(7).AppendTo(buf)
	require.Equal(t, "svc.requests gauge,7", string(buf))
}
