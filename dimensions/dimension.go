// Package dimensions provides the dimension type, normalized dimension lists and the
// merge algorithm used to combine dimensions from several sources.
package dimensions

import "github.com/arloliu/metricline/normalize"

// Dimension is a key/value tag attached to a metric.
type Dimension struct {
	Key   string
	Value string
}

// NewDimension creates a raw, unnormalized dimension.
func NewDimension(key, value string) Dimension {
	return Dimension{Key: key, Value: value}
}

// NormalizedDimensionList is an ordered list of dimensions whose keys and values have been
// normalized and escaped.
//
// The zero value is an empty list. A non-empty list can only be created with
// NewNormalizedDimensionList or MergeLists, so every list of this type is safe to write
// to a metric line as-is.
type NormalizedDimensionList struct {
	dimensions []Dimension
}

// NewNormalizedDimensionList normalizes the given dimensions.
//
// Keys are normalized with normalize.DimensionKey and pairs whose key normalizes to the
// empty string are dropped. Values are normalized and then escaped. Input order is kept,
// and so are duplicate keys; duplicates are only resolved by MergeLists.
func NewNormalizedDimensionList(dims ...Dimension) NormalizedDimensionList {
	if len(dims) == 0 {
		return NormalizedDimensionList{}
	}

	normalized := make([]Dimension, 0, len(dims))
	for _, dim := range dims {
		key := normalize.DimensionKey(dim.Key)
		if key == "" {
			continue
		}

		normalized = append(normalized, Dimension{
			Key:   key,
			Value: normalize.EscapeDimensionValue(normalize.DimensionValue(dim.Value)),
		})
	}

	return NormalizedDimensionList{dimensions: normalized}
}

// Len returns the number of dimensions in the list.
func (l NormalizedDimensionList) Len() int {
	return len(l.dimensions)
}

// Dimensions returns a copy of the normalized dimensions.
func (l NormalizedDimensionList) Dimensions() []Dimension {
	if len(l.dimensions) == 0 {
		return nil
	}

	out := make([]Dimension, len(l.dimensions))
	copy(out, l.dimensions)

	return out
}

// Tail returns a list holding the last n dimensions. If the list holds n dimensions or
// fewer it is returned unchanged.
func (l NormalizedDimensionList) Tail(n int) NormalizedDimensionList {
	if n < 0 {
		n = 0
	}
	if len(l.dimensions) <= n {
		return l
	}

	return NormalizedDimensionList{dimensions: l.dimensions[len(l.dimensions)-n:]}
}

// AppendTo appends ",key=value" for every dimension to dst and returns the extended buffer.
func (l NormalizedDimensionList) AppendTo(dst []byte) []byte {
	for _, dim := range l.dimensions {
		dst = append(dst, ',')
		dst = append(dst, dim.Key...)
		dst = append(dst, '=')
		dst = append(dst, dim.Value...)
	}

	return dst
}
