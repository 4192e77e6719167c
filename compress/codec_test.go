package compress

import (
	"bytes"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/metricline/errs"
	"github.com/arloliu/metricline/format"
)

var allTypes = []format.CompressionType{
	format.CompressionNone,
	format.CompressionGzip,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

func samplePayload(lines int) []byte {
	var sb strings.Builder
	for i := 0; i < lines; i++ {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "svc.requests,host=web%02d,method=GET count,delta=%d 1616580000000", i%8, i)
	}

	return []byte(sb.String())
}

func TestCreateCodec(t *testing.T) {
	for _, ct := range allTypes {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := CreateCodec(ct, "payload")
			require.NoError(t, err)
			require.Equal(t, ct, codec.Type())
		})
	}

	t.Run("invalid type", func(t *testing.T) {
		_, err := CreateCodec(format.CompressionType(0xff), "payload")
		require.ErrorIs(t, err, errs.ErrInvalidCompression)
		require.ErrorContains(t, err, "payload")
	})
}

func TestGetCodec(t *testing.T) {
	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)
		require.Equal(t, ct, codec.Type())
	}

	_, err := GetCodec(format.CompressionType(0))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func TestCodec_RoundTrip(t *testing.T) {
	payloads := map[string][]byte{
		"single line": []byte("svc.requests,a=1 count,delta=23"),
		"many lines":  samplePayload(1000),
		"random":      randomBytes(4096),
	}

	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		for name, payload := range payloads {
			t.Run(ct.String()+"/"+name, func(t *testing.T) {
				compressed, err := codec.Compress(payload)
				require.NoError(t, err)

				decompressed, err := codec.Decompress(compressed)
				require.NoError(t, err)
				require.Equal(t, payload, decompressed)
			})
		}
	}
}

func TestCodec_CompressesLinePayloads(t *testing.T) {
	payload := samplePayload(1000)

	for _, ct := range allTypes[1:] {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(payload)
		require.NoError(t, err)
		require.Less(t, len(compressed), len(payload)/2, ct.String())
	}
}

func TestCodec_Empty(t *testing.T) {
	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(nil)
		require.NoError(t, err)

		decompressed, err := codec.Decompress(compressed)
		require.NoError(t, err)
		require.Empty(t, decompressed, ct.String())
	}
}

func TestCodec_CorruptInput(t *testing.T) {
	garbage := []byte("definitely not a compressed stream")

	for _, ct := range allTypes[1:] {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		_, err = codec.Decompress(garbage)
		require.Error(t, err, ct.String())
	}
}

func TestGzipCompressor_StandardHeader(t *testing.T) {
	compressed, err := NewGzipCompressor().Compress([]byte("m gauge,1"))
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(compressed, []byte{0x1f, 0x8b}))
}

func TestCodec_Concurrent(t *testing.T) {
	payload := samplePayload(200)

	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		t.Run(ct.String(), func(t *testing.T) {
			var wg sync.WaitGroup
			for g := 0; g < 8; g++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := 0; i < 20; i++ {
						compressed, err := codec.Compress(payload)
						if err != nil {
							t.Error(err)
							return
						}
						out, err := codec.Decompress(compressed)
						if err != nil {
							t.Error(err)
							return
						}
						if !bytes.Equal(payload, out) {
							t.Error("round trip mismatch")
							return
						}
					}
				}()
			}
			wg.Wait()
		})
	}
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	r := rand.New(rand.NewSource(42))
	_, _ = r.Read(b)

	return b
}

func BenchmarkCodec_Compress(b *testing.B) {
	payload := samplePayload(1000)

	for _, ct := range allTypes {
		codec, _ := GetCodec(ct)
		b.Run(ct.String(), func(b *testing.B) {
			b.SetBytes(int64(len(payload)))
			for b.Loop() {
				_, _ = codec.Compress(payload)
			}
		})
	}
}
