package codec

import (
	"fmt"
	"math"

	"github.com/arloliu/scale/compact"
	"github.com/arloliu/scale/errs"
	"github.com/arloliu/scale/internal/options"
)

// SequenceConfig holds the decode policy of length-prefixed sequences.
type SequenceConfig struct {
	maxLength uint64
	decoder   *compact.Decoder
}

// SequenceOption configures a Vector or Bytes codec.
type SequenceOption = options.Option[*SequenceConfig]

// WithMaxLength caps the element count accepted from a length prefix.
//
// A prefix announcing more than n elements fails with errs.ErrLengthLimit
// before any element is decoded. Zero means unlimited.
func WithMaxLength(n int) SequenceOption {
	return options.New(func(c *SequenceConfig) error {
		if n < 0 {
			return fmt.Errorf("max length must not be negative, got %d", n)
		}
		c.maxLength = uint64(n)

		return nil
	})
}

// WithStrictCompact rejects non-minimal length prefixes with errs.ErrNonCanonical.
func WithStrictCompact(strict bool) SequenceOption {
	return options.NoError(func(c *SequenceConfig) {
		c.decoder = compact.PolicyDecoder(strict)
	})
}

// WithCompactDecoder decodes length prefixes with d.
func WithCompactDecoder(d *compact.Decoder) SequenceOption {
	return options.NoError(func(c *SequenceConfig) {
		c.decoder = d
	})
}

func newSequenceConfig(opts []SequenceOption) (SequenceConfig, error) {
	var cfg SequenceConfig
	if err := options.Apply(&cfg, opts...); err != nil {
		return SequenceConfig{}, err
	}

	return cfg, nil
}

// decodeLength reads a compact length prefix and applies the length cap.
func (c SequenceConfig) decodeLength(b []byte, op string) (int, int, error) {
	n, k, err := c.decoder.DecodeUint64(b)
	if err != nil {
		return 0, 0, errs.At(op, 0, err)
	}
	if c.maxLength > 0 && n > c.maxLength {
		return 0, 0, errs.At(op, 0, fmt.Errorf("%w: %d elements, max %d", errs.ErrLengthLimit, n, c.maxLength))
	}
	if n > math.MaxInt {
		return 0, 0, errs.At(op, 0, fmt.Errorf("%w: length %d", errs.ErrOverflow, n))
	}

	return int(n), k, nil
}

// decodeElements decodes exactly count elements from the start of b.
//
// base is the offset of b within the caller's buffer and is added to error
// offsets. The initial allocation is bounded by len(b) regardless of count.
// When unbounded is set, a zero-width element with count above len(b) fails
// with errs.ErrLengthLimit, since nothing else would stop the slice growing.
func decodeElements[T any](elem Codec[T], b []byte, count int, base int, op string, unbounded bool) ([]T, int, error) {
	out := make([]T, 0, min(count, len(b)))
	off := 0
	for i := 0; i < count; i++ {
		v, n, err := elem.Decode(b[off:])
		if err != nil {
			return nil, 0, errs.At(fmt.Sprintf("%s %d", op, i), base+off, err)
		}
		if n == 0 && unbounded && count > len(b) {
			return nil, 0, errs.At(op, base+off,
				fmt.Errorf("%w: %d zero-width elements from %d bytes", errs.ErrLengthLimit, count, len(b)))
		}
		out = append(out, v)
		off += n
	}

	return out, off, nil
}

// VectorCodec encodes a variable-length sequence as a compact length prefix
// followed by the element encodings.
type VectorCodec[T any] struct {
	elem Codec[T]
	cfg  SequenceConfig
}

// Vector returns a vector codec with the default lenient, unbounded policy.
func Vector[T any](elem Codec[T]) *VectorCodec[T] {
	return &VectorCodec[T]{elem: elem}
}

// NewVector returns a vector codec configured by opts.
func NewVector[T any](elem Codec[T], opts ...SequenceOption) (*VectorCodec[T], error) {
	cfg, err := newSequenceConfig(opts)
	if err != nil {
		return nil, err
	}

	return &VectorCodec[T]{elem: elem, cfg: cfg}, nil
}

// Append writes compact(len(v)) followed by each element in order.
func (c *VectorCodec[T]) Append(dst []byte, v []T) []byte {
	dst = compact.AppendUint64(dst, uint64(len(v)))
	for _, e := range v {
		dst = c.elem.Append(dst, e)
	}

	return dst
}

// Decode reads the length prefix n and then exactly n elements.
//
// The bytes consumed are the prefix length plus the sum of the element lengths.
// A decoded empty vector is a non-nil empty slice. A vector of zero-width
// elements longer than the remaining input needs an explicit WithMaxLength.
func (c *VectorCodec[T]) Decode(b []byte) ([]T, int, error) {
	count, k, err := c.cfg.decodeLength(b, "vector length")
	if err != nil {
		return nil, 0, err
	}

	out, n, err := decodeElements(c.elem, b[k:], count, k, "vector element", c.cfg.maxLength == 0)
	if err != nil {
		return nil, 0, err
	}

	return out, k + n, nil
}

// ArrayCodec encodes a fixed-length sequence with no length prefix.
type ArrayCodec[T any] struct {
	elem Codec[T]
	n    int
}

// Array returns the codec for sequences of exactly n elements.
func Array[T any](elem Codec[T], n int) *ArrayCodec[T] {
	if n < 0 {
		panic(fmt.Sprintf("codec: negative array length %d", n))
	}

	return &ArrayCodec[T]{elem: elem, n: n}
}

// Len returns the static element count.
func (c *ArrayCodec[T]) Len() int {
	return c.n
}

// Append writes each element in order. It panics if len(v) differs from the
// static length, since that value does not belong to the array type.
func (c *ArrayCodec[T]) Append(dst []byte, v []T) []byte {
	if len(v) != c.n {
		panic(fmt.Sprintf("codec: array of %d elements, want %d", len(v), c.n))
	}
	for _, e := range v {
		dst = c.elem.Append(dst, e)
	}

	return dst
}

// Decode reads exactly Len() elements.
func (c *ArrayCodec[T]) Decode(b []byte) ([]T, int, error) {
	return decodeElements(c.elem, b, c.n, 0, "array element", false)
}

// BytesCodec is the Vec<u8> fast path: a compact length followed by raw bytes.
type BytesCodec struct {
	cfg SequenceConfig
}

// Bytes is the unbounded, lenient byte vector codec.
var Bytes Codec[[]byte] = &BytesCodec{}

// NewBytes returns a byte vector codec configured by opts.
func NewBytes(opts ...SequenceOption) (*BytesCodec, error) {
	cfg, err := newSequenceConfig(opts)
	if err != nil {
		return nil, err
	}

	return &BytesCodec{cfg: cfg}, nil
}

func (c *BytesCodec) Append(dst []byte, v []byte) []byte {
	dst = compact.AppendUint64(dst, uint64(len(v)))
	return append(dst, v...)
}

func (c *BytesCodec) Decode(b []byte) ([]byte, int, error) {
	count, k, err := c.cfg.decodeLength(b, "bytes length")
	if err != nil {
		return nil, 0, err
	}

	if len(b)-k < count {
		return nil, 0, errs.At("bytes", len(b), errs.ErrUnexpectedEOF)
	}

	out := make([]byte, count)
	copy(out, b[k:])

	return out, k + count, nil
}
