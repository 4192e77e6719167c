package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/metricline/format"
)

// S2Compressor produces S2 blocks. S2 trades ratio for speed and is a good fit for
// high volume local forwarding.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

func (c S2Compressor) Type() format.CompressionType { return format.CompressionS2 }

func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := s2.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return out, nil
}
