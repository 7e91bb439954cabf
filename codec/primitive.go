package codec

import (
	"fmt"
	"math/big"

	"github.com/arloliu/scale/compact"
	"github.com/arloliu/scale/endian"
	"github.com/arloliu/scale/errs"
)

// UintCodec encodes a fixed-width unsigned integer in little-endian order.
type UintCodec[T endian.Unsigned] struct {
	op string
}

// Uint returns the fixed-width little-endian codec for T.
func Uint[T endian.Unsigned]() UintCodec[T] {
	return UintCodec[T]{op: fmt.Sprintf("u%d", 8*endian.SizeOf[T]())}
}

var (
	U8  Codec[uint8]  = Uint[uint8]()
	U16 Codec[uint16] = Uint[uint16]()
	U32 Codec[uint32] = Uint[uint32]()
	U64 Codec[uint64] = Uint[uint64]()
)

func (c UintCodec[T]) Append(dst []byte, v T) []byte {
	return endian.AppendBytes(dst, v, endian.LittleEndian)
}

func (c UintCodec[T]) Decode(b []byte) (T, int, error) {
	size := endian.SizeOf[T]()
	if len(b) < size {
		return 0, 0, errs.At(c.op, len(b), errs.ErrUnexpectedEOF)
	}

	return endian.FromBytes[T](b, endian.LittleEndian), size, nil
}

type boolCodec struct{}

// Bool encodes false as 0x00 and true as 0x01. Any other byte fails to decode
// with errs.ErrInvalidBool.
var Bool Codec[bool] = boolCodec{}

func (boolCodec) Append(dst []byte, v bool) []byte {
	if v {
		return append(dst, 0x01)
	}

	return append(dst, 0x00)
}

func (boolCodec) Decode(b []byte) (bool, int, error) {
	if len(b) == 0 {
		return false, 0, errs.At("bool", 0, errs.ErrUnexpectedEOF)
	}

	switch b[0] {
	case 0x00:
		return false, 1, nil
	case 0x01:
		return true, 1, nil
	default:
		return false, 0, errs.At("bool", 0, fmt.Errorf("%w: 0x%02x", errs.ErrInvalidBool, b[0]))
	}
}

// CompactCodec encodes uint64 values with the compact scheme.
type CompactCodec struct {
	dec *compact.Decoder
}

// Compact is the lenient compact integer codec.
var Compact Codec[uint64] = CompactCodec{}

// NewCompact returns a compact integer codec decoding under d's policy.
// A nil d is lenient.
func NewCompact(d *compact.Decoder) CompactCodec {
	return CompactCodec{dec: d}
}

func (c CompactCodec) Append(dst []byte, v uint64) []byte {
	return compact.AppendUint64(dst, v)
}

func (c CompactCodec) Decode(b []byte) (uint64, int, error) {
	return c.dec.DecodeUint64(b)
}

// BigCompactCodec encodes non-negative *big.Int values with the compact scheme.
type BigCompactCodec struct {
	dec *compact.Decoder
}

// CompactBig is the lenient compact codec for values beyond 64 bits.
var CompactBig Codec[*big.Int] = BigCompactCodec{}

// NewCompactBig returns a big compact codec decoding under d's policy.
func NewCompactBig(d *compact.Decoder) BigCompactCodec {
	return BigCompactCodec{dec: d}
}

// Append panics if v is negative or exceeds compact.MaxBig, neither of which
// is a valid compact value.
func (c BigCompactCodec) Append(dst []byte, v *big.Int) []byte {
	out, err := compact.AppendBig(dst, v)
	if err != nil {
		panic(fmt.Sprintf("codec: %v", err))
	}

	return out
}

func (c BigCompactCodec) Decode(b []byte) (*big.Int, int, error) {
	return c.dec.DecodeBig(b)
}

// FixedBytesCodec encodes a byte string of statically known length with no prefix.
//
// It is the byte-oriented fast path of Array(U8, n).
type FixedBytesCodec struct {
	n int
}

// FixedBytes returns the codec for byte strings of exactly n bytes.
func FixedBytes(n int) FixedBytesCodec {
	return FixedBytesCodec{n: n}
}

// Len returns the fixed length.
func (c FixedBytesCodec) Len() int {
	return c.n
}

// Append panics if len(v) differs from the fixed length.
func (c FixedBytesCodec) Append(dst []byte, v []byte) []byte {
	if len(v) != c.n {
		panic(fmt.Sprintf("codec: fixed bytes of length %d, want %d", len(v), c.n))
	}

	return append(dst, v...)
}

func (c FixedBytesCodec) Decode(b []byte) ([]byte, int, error) {
	if len(b) < c.n {
		return nil, 0, errs.At("fixed bytes", len(b), errs.ErrUnexpectedEOF)
	}

	out := make([]byte, c.n)
	copy(out, b)

	return out, c.n, nil
}
