package dimensions

// MergeLists combines normalized dimension lists into a single list.
//
// Lists are scanned left to right and each list in its own order. The first occurrence of
// a key fixes its position in the result; a later occurrence of the same key, in any list,
// replaces the value in place. Lists further right therefore take precedence on values,
// while positions follow first appearance.
//
// No normalization happens here; the inputs are already normalized by construction.
func MergeLists(lists ...NormalizedDimensionList) NormalizedDimensionList {
	total := 0
	for _, l := range lists {
		total += len(l.dimensions)
	}
	if total == 0 {
		return NormalizedDimensionList{}
	}

	merged := make([]Dimension, 0, total)
	positions := make(map[string]int, total)

	for _, l := range lists {
		for _, dim := range l.dimensions {
			if pos, ok := positions[dim.Key]; ok {
				merged[pos].Value = dim.Value
				continue
			}
			positions[dim.Key] = len(merged)
			merged = append(merged, dim)
		}
	}

	return NormalizedDimensionList{dimensions: merged}
}
