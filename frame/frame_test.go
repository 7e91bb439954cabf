package frame

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/scale/codec"
	"github.com/arloliu/scale/errs"
	"github.com/arloliu/scale/format"
	"github.com/arloliu/scale/internal/hash"
)

var allCompressions = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

func TestSeal_Layout(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03}

	sealed, err := Seal(payload, format.CompressionNone)
	require.NoError(t, err)
	require.Len(t, sealed, 17)
	require.Equal(t, []byte("SCL\x01"), sealed[:4])
	require.Equal(t, byte(format.CompressionNone), sealed[4])
	require.Equal(t, hash.Checksum(payload), binary.LittleEndian.Uint64(sealed[5:13]))
	require.Equal(t, byte(0x0c), sealed[13])
	require.Equal(t, payload, sealed[14:])

	info, err := Inspect(sealed)
	require.NoError(t, err)
	require.Equal(t, Info{
		Compression: format.CompressionNone,
		Checksum:    hash.Checksum(payload),
		BodyLen:     3,
		HeaderLen:   14,
	}, info)
	require.Equal(t, 17, info.Size())
}

func TestSealOpen_RoundTrip(t *testing.T) {
	payloads := map[string][]byte{
		"empty":    {},
		"single":   {0x2a},
		"vector":   codec.Encode(codec.Vector(codec.U16), []uint16{1, 2, 3, 258}),
		"repeated": bytes.Repeat([]byte{0x06, 0x42, 0x41, 0x42, 0x45}, 2000),
	}

	for _, ct := range allCompressions {
		for name, payload := range payloads {
			t.Run(ct.String()+"/"+name, func(t *testing.T) {
				sealed, err := Seal(payload, ct)
				require.NoError(t, err)
				require.Equal(t, byte(ct), sealed[4])

				opened, err := Open(sealed)
				require.NoError(t, err)
				require.Len(t, opened, len(payload))
				if len(payload) > 0 {
					require.Equal(t, payload, opened)
				}
			})
		}
	}
}

func TestOpen_DecodesAsScale(t *testing.T) {
	values := []uint16{7, 300, 65535}
	sealed, err := Seal(codec.Encode(codec.Vector(codec.U16), values), format.CompressionZstd)
	require.NoError(t, err)

	payload, err := Open(sealed)
	require.NoError(t, err)

	decoded, err := codec.DecodeAll[[]uint16](codec.Vector(codec.U16), payload)
	require.NoError(t, err)
	require.Equal(t, values, decoded)
}

func TestOpen_ChecksumMismatch(t *testing.T) {
	sealed, err := Seal([]byte{0x01, 0x02, 0x03}, format.CompressionNone)
	require.NoError(t, err)

	t.Run("corrupted body", func(t *testing.T) {
		b := bytes.Clone(sealed)
		b[15] ^= 0xff
		_, err := Open(b)
		require.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("corrupted checksum", func(t *testing.T) {
		b := bytes.Clone(sealed)
		b[5] ^= 0x01
		_, err := Open(b)
		require.ErrorIs(t, err, ErrChecksum)
	})
}

func TestOpen_Malformed(t *testing.T) {
	sealed, err := Seal([]byte{0x01, 0x02, 0x03}, format.CompressionNone)
	require.NoError(t, err)

	unknown := bytes.Clone(sealed)
	unknown[4] = 0x09

	tests := []struct {
		name   string
		in     []byte
		want   error
		offset int
	}{
		{"empty", nil, errs.ErrUnexpectedEOF, 0},
		{"partial magic", []byte("SCL"), errs.ErrUnexpectedEOF, 3},
		{"short header", sealed[:5], errs.ErrUnexpectedEOF, 5},
		{"missing length", sealed[:13], errs.ErrUnexpectedEOF, 13},
		{"truncated body", sealed[:16], errs.ErrUnexpectedEOF, 16},
		{"trailing byte", append(bytes.Clone(sealed), 0x00), errs.ErrTrailingBytes, 17},
		{"bad magic", append([]byte("XCL\x01"), sealed[4:]...), ErrMagic, -1},
		{"bad magic short", []byte("ABCD\x01"), ErrMagic, -1},
		{"unknown compression", unknown, ErrCompression, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(tt.in)
			require.ErrorIs(t, err, tt.want)
			require.Equal(t, tt.offset, errs.Offset(err))
		})
	}
}

func TestSeal_InvalidCompression(t *testing.T) {
	_, err := Seal([]byte{0x01}, format.CompressionType(0))
	require.ErrorIs(t, err, ErrCompression)
}

func BenchmarkSealOpen(b *testing.B) {
	payload := codec.Encode(codec.Vector(codec.Compact), make([]uint64, 4096))

	for _, ct := range allCompressions {
		b.Run(ct.String(), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				sealed, err := Seal(payload, ct)
				if err != nil {
					b.Fatal(err)
				}
				if _, err := Open(sealed); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
