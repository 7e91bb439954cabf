// Package compress provides the compressors applied to encoded SCALE payloads
// when they are sealed into a frame.
//
// SCALE output is already compact, so compression only pays off for larger
// payloads: long byte vectors, header dumps, or vectors with repeated
// elements. Four algorithms are available:
//   - None: bytes pass through unchanged (format.CompressionNone)
//   - Zstd: best ratio, klauspost/compress/zstd (format.CompressionZstd)
//   - S2: fast with a reasonable ratio, klauspost/compress/s2 (format.CompressionS2)
//   - LZ4: fastest decompression, pierrec/lz4 (format.CompressionLZ4)
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	compressed, err := codec.Compress(payload)
//
// GetCodec returns shared instances. All built-in codecs are safe for
// concurrent use; Zstd and LZ4 keep their encoder state in sync.Pools.
//
// The frame package picks the codec from the compression byte stored in the
// frame, so callers rarely use this package directly.
package compress
