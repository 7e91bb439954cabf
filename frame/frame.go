// Package frame seals encoded SCALE payloads into a self-describing envelope
// for storage or transport.
//
// A frame is laid out as:
//
//	magic       4 bytes  "SCL\x01"
//	compression 1 byte   format.CompressionType
//	checksum    8 bytes  little-endian xxHash64 of the uncompressed payload
//	length      compact  byte length of body
//	body        length bytes, the payload after compression
//
// The length prefix uses SCALE compact encoding so the frame itself is a
// valid SCALE concatenation.
package frame

import (
	"errors"
	"fmt"

	"github.com/arloliu/scale/compact"
	"github.com/arloliu/scale/compress"
	"github.com/arloliu/scale/endian"
	"github.com/arloliu/scale/errs"
	"github.com/arloliu/scale/format"
	"github.com/arloliu/scale/internal/hash"
	"github.com/arloliu/scale/internal/pool"
)

// Magic identifies a frame and its layout version.
var Magic = [4]byte{'S', 'C', 'L', 0x01}

var (
	// ErrMagic indicates input that does not start with Magic.
	ErrMagic = errors.New("scale: invalid frame magic")

	// ErrChecksum indicates a payload whose xxHash64 differs from the stored checksum.
	ErrChecksum = errors.New("scale: frame checksum mismatch")

	// ErrCompression indicates an unknown compression byte or a body that fails to decompress.
	ErrCompression = errors.New("scale: invalid frame compression")
)

// fixedHeaderSize is the size of magic, compression and checksum.
const fixedHeaderSize = len(Magic) + 1 + 8

var le = endian.GetLittleEndianEngine()

// Info describes a frame without decompressing it.
type Info struct {
	Compression format.CompressionType
	Checksum    uint64
	BodyLen     int
	// HeaderLen is the offset of the body within the frame.
	HeaderLen int
}

// Size returns the total frame length in bytes.
func (i Info) Size() int {
	return i.HeaderLen + i.BodyLen
}

// Seal compresses payload with the given algorithm and wraps it in a frame.
func Seal(payload []byte, compression format.CompressionType) ([]byte, error) {
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompression, err)
	}

	body, err := codec.Compress(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCompression, compression, err)
	}

	bb := pool.GetFrameBuffer()
	defer pool.PutFrameBuffer(bb)

	bb.Grow(fixedHeaderSize + compact.EncodedLen(uint64(len(body))) + len(body))
	bb.B = append(bb.B, Magic[:]...)
	bb.B = append(bb.B, byte(compression))
	bb.B = le.AppendUint64(bb.B, hash.Checksum(payload))
	bb.B = compact.AppendUint64(bb.B, uint64(len(body)))
	bb.B = append(bb.B, body...)

	return bb.Clone(), nil
}

// Inspect parses the frame header and checks that the body is complete.
// It does not verify the checksum.
func Inspect(b []byte) (Info, error) {
	if len(b) < fixedHeaderSize {
		if len(b) >= len(Magic) && [4]byte(b[:4]) != Magic {
			return Info{}, fmt.Errorf("%w: % x", ErrMagic, b[:4])
		}

		return Info{}, errs.At("frame header", len(b), errs.ErrUnexpectedEOF)
	}
	if [4]byte(b[:4]) != Magic {
		return Info{}, fmt.Errorf("%w: % x", ErrMagic, b[:4])
	}

	info := Info{
		Compression: format.CompressionType(b[4]),
		Checksum:    le.Uint64(b[5:fixedHeaderSize]),
	}
	if !info.Compression.Valid() {
		return Info{}, fmt.Errorf("%w: type 0x%02x", ErrCompression, b[4])
	}

	bodyLen, n, err := compact.DecodeUint64(b[fixedHeaderSize:])
	if err != nil {
		return Info{}, errs.At("frame length", fixedHeaderSize, err)
	}
	info.HeaderLen = fixedHeaderSize + n

	remaining := uint64(len(b) - info.HeaderLen)
	if bodyLen > remaining {
		return Info{}, errs.At("frame body", len(b), errs.ErrUnexpectedEOF)
	}
	info.BodyLen = int(bodyLen)

	return info, nil
}

// Open validates a frame and returns its decompressed payload.
//
// Bytes after the body are rejected with errs.ErrTrailingBytes. For
// CompressionNone the returned payload aliases b.
func Open(b []byte) ([]byte, error) {
	info, err := Inspect(b)
	if err != nil {
		return nil, err
	}
	if info.Size() != len(b) {
		return nil, errs.At("frame", info.Size(), errs.ErrTrailingBytes)
	}

	codec, err := compress.GetCodec(info.Compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompression, err)
	}

	payload, err := codec.Decompress(b[info.HeaderLen:])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCompression, info.Compression, err)
	}

	if sum := hash.Checksum(payload); sum != info.Checksum {
		return nil, fmt.Errorf("%w: stored %016x, computed %016x", ErrChecksum, info.Checksum, sum)
	}

	return payload, nil
}
