package compress

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/scale/codec"
	"github.com/arloliu/scale/format"
)

// getAllCodecs returns all available codec implementations for testing
func getAllCodecs() map[string]Codec {
	return map[string]Codec{
		"NoOp": NewNoOpCompressor(),
		"LZ4":  NewLZ4Compressor(),
		"S2":   NewS2Compressor(),
		"Zstd": NewZstdCompressor(),
	}
}

func TestGetCodec(t *testing.T) {
	for _, typ := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(typ.String(), func(t *testing.T) {
			c, err := GetCodec(typ)
			require.NoError(t, err)
			require.NotNil(t, c)
		})
	}

	_, err := GetCodec(format.CompressionType(0))
	require.ErrorContains(t, err, "unsupported compression type: Unknown")
}

func TestCreateCodec(t *testing.T) {
	c, err := CreateCodec(format.CompressionS2, "frame")
	require.NoError(t, err)
	require.IsType(t, S2Compressor{}, c)

	_, err = CreateCodec(format.CompressionType(9), "frame")
	require.EqualError(t, err, "invalid frame compression: Unknown")
}

func TestCompressionStats_Calculations(t *testing.T) {
	tests := []struct {
		name            string
		stats           CompressionStats
		expectedRatio   float64
		expectedSavings float64
	}{
		{
			name:            "good compression",
			stats:           CompressionStats{Algorithm: format.CompressionZstd, OriginalSize: 1000, CompressedSize: 300},
			expectedRatio:   0.3,
			expectedSavings: 70.0,
		},
		{
			name:            "no compression benefit",
			stats:           CompressionStats{Algorithm: format.CompressionNone, OriginalSize: 500, CompressedSize: 500},
			expectedRatio:   1.0,
			expectedSavings: 0.0,
		},
		{
			name:            "compression overhead",
			stats:           CompressionStats{Algorithm: format.CompressionS2, OriginalSize: 100, CompressedSize: 120},
			expectedRatio:   1.2,
			expectedSavings: -20.0,
		},
		{
			name:            "zero original size",
			stats:           CompressionStats{Algorithm: format.CompressionLZ4, CompressedSize: 100},
			expectedRatio:   0.0,
			expectedSavings: 100.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.expectedRatio, tt.stats.CompressionRatio(), 0.001)
			require.InDelta(t, tt.expectedSavings, tt.stats.SpaceSavings(), 0.001)
		})
	}
}

func TestMeasure(t *testing.T) {
	// A byte vector of a repeating digest pattern compresses well.
	data := codec.Encode(codec.Bytes, bytes.Repeat([]byte{0x06, 0x42, 0x41, 0x42, 0x45, 0x00, 0x01}, 512))

	out, stats, err := Measure(format.CompressionZstd, data)
	require.NoError(t, err)
	require.Equal(t, format.CompressionZstd, stats.Algorithm)
	require.Equal(t, int64(len(data)), stats.OriginalSize)
	require.Equal(t, int64(len(out)), stats.CompressedSize)
	require.Less(t, stats.CompressionRatio(), 1.0)

	_, _, err = Measure(format.CompressionType(0), data)
	require.Error(t, err)
}

func TestNoOpCompressor_RoundTrip(t *testing.T) {
	compressor := NewNoOpCompressor()

	for _, data := range [][]byte{[]byte("hello world"), {0x00, 0x01, 0xFF}, make([]byte, 64*1024)} {
		compressed, err := compressor.Compress(data)
		require.NoError(t, err)
		require.Same(t, &data[0], &compressed[0])

		decompressed, err := compressor.Decompress(compressed)
		require.NoError(t, err)
		require.Equal(t, data, decompressed)
	}

	compressed, err := compressor.Compress(nil)
	require.NoError(t, err)
	require.Nil(t, compressed)
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for name, c := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := c.Compress(nil)
			require.NoError(t, err)
			require.Nil(t, compressed)

			decompressed, err := c.Decompress(nil)
			require.NoError(t, err)
			require.Nil(t, decompressed)

			compressed, err = c.Compress([]byte{})
			require.NoError(t, err)

			decompressed, err = c.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, decompressed)
		})
	}
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{name: "single_byte", data: []byte{0x42}},
		{name: "compact_vector", data: scalePayload(100)},
		{name: "large_compact_vector", data: scalePayload(50000)},
		{name: "repeated_pattern", data: bytes.Repeat([]byte{0x04, 0x42, 0x41, 0x42, 0x45}, 400)},
		{name: "zeros", data: make([]byte, 1024*1024)},
	}

	for codecName, c := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			for _, tc := range testCases {
				t.Run(tc.name, func(t *testing.T) {
					compressed, err := c.Compress(tc.data)
					require.NoError(t, err)
					require.NotNil(t, compressed)

					decompressed, err := c.Decompress(compressed)
					require.NoError(t, err)
					require.Equal(t, tc.data, decompressed)
				})
			}
		})
	}
}

func TestAllCodecs_InvalidData(t *testing.T) {
	invalidInputs := [][]byte{
		{0xFF, 0xFF, 0xFF, 0xFF},
		[]byte("this is not compressed data"),
	}

	for codecName, c := range getAllCodecs() {
		if codecName == "NoOp" {
			continue
		}

		t.Run(codecName, func(t *testing.T) {
			for i, input := range invalidInputs {
				_, err := c.Decompress(input)
				require.Error(t, err, "input %d", i)
			}
		})
	}
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	const numGoroutines = 20
	testData := scalePayload(512)

	for codecName, c := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			compressed, err := c.Compress(testData)
			require.NoError(t, err)

			done := make(chan error, numGoroutines*2)
			for range numGoroutines {
				go func() {
					_, err := c.Compress(testData)
					done <- err
				}()

				go func() {
					decompressed, err := c.Decompress(compressed)
					if err != nil {
						done <- err
						return
					}
					if !bytes.Equal(testData, decompressed) {
						done <- fmt.Errorf("data mismatch")
						return
					}
					done <- nil
				}()
			}

			for range numGoroutines * 2 {
				require.NoError(t, <-done)
			}
		})
	}
}

func TestAllCodecs_LargeExpansionRatio(t *testing.T) {
	original := make([]byte, 1024*1024)

	for codecName, c := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			compressed, err := c.Compress(original)
			require.NoError(t, err)

			if codecName == "NoOp" {
				require.Len(t, compressed, len(original))
			} else {
				require.Less(t, len(compressed), len(original)/10)
			}

			decompressed, err := c.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, original, decompressed)
		})
	}
}
