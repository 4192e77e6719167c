// Package compress provides the codecs used to compress metric line payloads.
//
// Every codec is stateless from the caller's point of view and safe for concurrent
// use. Encoders and decoders that are expensive to create are pooled internally.
//
// Supported algorithms:
//   - None: payload passed through unchanged
//   - Gzip: klauspost/compress/gzip, the encoding most ingestion endpoints accept
//   - Zstd: klauspost/compress/zstd, best ratio
//   - S2: klauspost/compress/s2, fastest
//   - LZ4: pierrec/lz4 frame format
//
// Use GetCodec to obtain a shared codec for a format.CompressionType.
package compress
