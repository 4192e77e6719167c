package format

import "strings"

// CompressionType identifies the algorithm used to compress a line payload.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
	CompressionGzip CompressionType = 0x5 // CompressionGzip represents gzip compression.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionGzip:
		return "Gzip"
	default:
		return "Unknown"
	}
}

// ContentEncoding returns the HTTP Content-Encoding token for the compression type,
// or "" when the payload is sent uncompressed. S2 and LZ4 have no registered token and
// use the experimental "x-" form.
func (c CompressionType) ContentEncoding() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	case CompressionS2:
		return "x-s2"
	case CompressionLZ4:
		return "x-lz4"
	default:
		return ""
	}
}

// ParseCompressionType parses a case-insensitive compression name such as "gzip" or "none".
// An empty name maps to CompressionNone.
func ParseCompressionType(name string) (CompressionType, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	case "gzip":
		return CompressionGzip, true
	default:
		return 0, false
	}
}
