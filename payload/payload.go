// Package payload builds request bodies for the metrics ingestion endpoint: serialized
// lines joined with '\n', optionally compressed.
package payload

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/arloliu/metricline/compress"
	"github.com/arloliu/metricline/errs"
	"github.com/arloliu/metricline/format"
	"github.com/arloliu/metricline/internal/pool"
)

// LinesLimit is the maximum number of lines the ingestion endpoint accepts per request.
const LinesLimit = 1000

// Encode joins lines with '\n' and compresses the result.
//
// Parameters:
//   - lines: serialized metric lines, without trailing newlines
//   - compression: payload compression
//
// Returns:
//   - []byte: the request body, owned by the caller
//   - error: wraps errs.ErrTooManyLines if len(lines) > LinesLimit, or
//     errs.ErrInvalidCompression for an unknown compression
func Encode(lines []string, compression format.CompressionType) ([]byte, error) {
	if len(lines) > LinesLimit {
		return nil, fmt.Errorf("%w: %d lines, limit is %d", errs.ErrTooManyLines, len(lines), LinesLimit)
	}

	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}

	buf := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(buf)

	for i, line := range lines {
		if i > 0 {
			_ = buf.WriteByte('\n')
		}
		_, _ = buf.WriteString(line)
	}

	if codec.Type() == format.CompressionNone {
		return bytes.Clone(buf.Bytes()), nil
	}

	body, err := codec.Compress(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("compress payload: %w", err)
	}

	return body, nil
}

// Decode reverses Encode and returns the individual lines. An empty body yields no lines.
func Decode(body []byte, compression format.CompressionType) ([]string, error) {
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}

	data, err := codec.Decompress(body)
	if err != nil {
		return nil, fmt.Errorf("decompress payload: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	return strings.Split(string(data), "\n"), nil
}
