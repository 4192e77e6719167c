package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/arloliu/metricline/dimensions"
	"github.com/arloliu/metricline/metric"
)

// record is one JSON input line.
//
//	{"name":"requests","type":"counter","int":true,"value":23,"dimensions":[{"key":"a","value":"1"}]}
type record struct {
	Name       string            `json:"name"`
	Type       string            `json:"type"`
	Int        bool              `json:"int"`
	Delta      *bool             `json:"delta"`
	Value      json.Number       `json:"value"`
	Min        json.Number       `json:"min"`
	Max        json.Number       `json:"max"`
	Sum        json.Number       `json:"sum"`
	Count      int64             `json:"count"`
	Dimensions []recordDimension `json:"dimensions"`
	Timestamp  int64             `json:"timestamp"`
}

type recordDimension struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func parseRecord(line []byte) (record, error) {
	var rec record

	dec := json.NewDecoder(bytes.NewReader(line))
	dec.UseNumber()
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rec); err != nil {
		return record{}, fmt.Errorf("decode input: %w", err)
	}

	return rec, nil
}

// toMetric converts the record into a metric. Counters are deltas unless "delta" is
// explicitly false.
func (r record) toMetric() (*metric.Metric, error) {
	value, err := r.valueOption()
	if err != nil {
		return nil, err
	}

	opts := []metric.Option{value}
	if len(r.Dimensions) > 0 {
		dims := make([]dimensions.Dimension, len(r.Dimensions))
		for i, d := range r.Dimensions {
			dims[i] = dimensions.NewDimension(d.Key, d.Value)
		}
		opts = append(opts, metric.WithDimensions(dims...))
	}
	if r.Timestamp != 0 {
		opts = append(opts, metric.WithTimestamp(time.UnixMilli(r.Timestamp)))
	}

	return metric.New(r.Name, opts...)
}

func (r record) valueOption() (metric.Option, error) {
	switch r.Type {
	case "counter":
		delta := r.Delta == nil || *r.Delta
		if r.Int {
			v, err := parseInt("value", r.Value)
			if err != nil {
				return nil, err
			}
			if delta {
				return metric.WithIntCounterValueDelta(v), nil
			}

			return metric.WithIntCounterValueTotal(v), nil
		}

		v, err := parseFloat("value", r.Value)
		if err != nil {
			return nil, err
		}
		if delta {
			return metric.WithFloatCounterValueDelta(v), nil
		}

		return metric.WithFloatCounterValueTotal(v), nil

	case "gauge":
		if r.Int {
			v, err := parseInt("value", r.Value)
			if err != nil {
				return nil, err
			}

			return metric.WithIntGaugeValue(v), nil
		}

		v, err := parseFloat("value", r.Value)
		if err != nil {
			return nil, err
		}

		return metric.WithFloatGaugeValue(v), nil

	case "summary":
		fields := r.summaryFields()
		if r.Int {
			var vals [3]int64
			for i, f := range fields {
				v, err := parseInt(f.name, f.num)
				if err != nil {
					return nil, err
				}
				vals[i] = v
			}

			return metric.WithIntSummaryValue(vals[0], vals[1], vals[2], r.Count), nil
		}

		var vals [3]float64
		for i, f := range fields {
			v, err := parseFloat(f.name, f.num)
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}

		return metric.WithFloatSummaryValue(vals[0], vals[1], vals[2], r.Count), nil

	default:
		return nil, fmt.Errorf("unknown metric type %q", r.Type)
	}
}

type numberField struct {
	name string
	num  json.Number
}

func (r record) summaryFields() [3]numberField {
	return [3]numberField{{"min", r.Min}, {"max", r.Max}, {"sum", r.Sum}}
}

func parseInt(field string, n json.Number) (int64, error) {
	if n == "" {
		return 0, fmt.Errorf("missing %s", field)
	}

	v, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %s %q", field, n)
	}

	return v, nil
}

func parseFloat(field string, n json.Number) (float64, error) {
	if n == "" {
		return 0, fmt.Errorf("missing %s", field)
	}

	v, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %s %q", field, n)
	}

	return v, nil
}
