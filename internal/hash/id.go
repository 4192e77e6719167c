// Package hash provides the xxHash64 helpers used to key cached metric names.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// MetricKeyID computes the hash of the fully-qualified key prefix + "." + name without
// building the joined string. An empty prefix hashes name alone, so
// MetricKeyID("", name) == ID(name).
func MetricKeyID(prefix, name string) uint64 {
	if prefix == "" {
		return ID(name)
	}

	d := xxhash.New()
	_, _ = d.WriteString(prefix)
	_, _ = d.WriteString(".")
	_, _ = d.WriteString(name)

	return d.Sum64()
}
