package compact

import (
	"fmt"
	"math/big"

	"github.com/arloliu/scale/errs"
	"github.com/arloliu/scale/internal/options"
)

const opCompact = "compact"

// Decoder decodes compact integers under a canonicality policy.
//
// The zero value is a lenient decoder and is ready to use.
type Decoder struct {
	strict bool
}

// Option configures a Decoder.
type Option = options.Option[*Decoder]

// WithStrict enables or disables rejection of non-minimal encodings.
//
// A strict decoder fails with errs.ErrNonCanonical when a value was encoded in a
// larger mode than necessary, or in ModeBig with a leading zero value byte.
func WithStrict(strict bool) Option {
	return options.NoError(func(d *Decoder) {
		d.strict = strict
	})
}

// NewDecoder creates a Decoder with the given options.
func NewDecoder(opts ...Option) (*Decoder, error) {
	d := &Decoder{}
	if err := options.Apply(d, opts...); err != nil {
		return nil, err
	}

	return d, nil
}

// Strict reports whether the decoder rejects non-minimal encodings.
func (d *Decoder) Strict() bool {
	return d != nil && d.strict
}

var (
	lenient       = &Decoder{}
	strictDecoder = &Decoder{strict: true}
)

// PolicyDecoder returns the shared strict or lenient decoder.
func PolicyDecoder(strictMode bool) *Decoder {
	if strictMode {
		return strictDecoder
	}

	return lenient
}

// DecodeUint64 decodes a compact integer from the start of b with the lenient policy.
func DecodeUint64(b []byte) (uint64, int, error) {
	return lenient.DecodeUint64(b)
}

// DecodeBig decodes a compact integer of any size from the start of b with the lenient policy.
func DecodeBig(b []byte) (*big.Int, int, error) {
	return lenient.DecodeBig(b)
}

// Len returns the number of bytes the compact integer at the start of b
// occupies, without decoding its value.
func Len(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, errs.At(opCompact, 0, errs.ErrUnexpectedEOF)
	}

	n := headerLen(b[0])
	if len(b) < n {
		return 0, errs.At(opCompact, len(b), errs.ErrUnexpectedEOF)
	}

	return n, nil
}

// headerLen returns the total encoded length announced by the first byte.
func headerLen(first byte) int {
	switch ModeOf(first) {
	case ModeSingle:
		return 1
	case ModeTwo:
		return 2
	case ModeFour:
		return 4
	default:
		return 1 + int(first>>2) + MinBigBytes
	}
}

// DecodeUint64 decodes a compact integer from the start of b.
//
// Returns:
//   - uint64: Decoded value
//   - int: Number of bytes consumed
//   - error: errs.ErrUnexpectedEOF if b is shorter than the mode requires,
//     errs.ErrOverflow if the value does not fit in 64 bits,
//     errs.ErrNonCanonical for non-minimal input on a strict decoder
func (d *Decoder) DecodeUint64(b []byte) (uint64, int, error) {
	n, err := Len(b)
	if err != nil {
		return 0, 0, err
	}

	var v uint64
	mode := ModeOf(b[0])
	switch mode {
	case ModeSingle:
		v = uint64(b[0] >> 2)
	case ModeTwo:
		v = uint64(le.Uint16(b) >> 2)
	case ModeFour:
		v = uint64(le.Uint32(b) >> 2)
	default:
		value := b[1:n]
		for i := len(value) - 1; i >= 8; i-- {
			if value[i] != 0 {
				return 0, 0, errs.At(opCompact, 0,
					fmt.Errorf("%w: compact value of %d bytes exceeds 64 bits", errs.ErrOverflow, len(value)))
			}
		}
		for i := min(len(value), 8) - 1; i >= 0; i-- {
			v = v<<8 | uint64(value[i])
		}
	}

	if d.Strict() && !canonical(mode, n, v, b[n-1]) {
		return 0, 0, errs.At(opCompact, 0,
			fmt.Errorf("%w: value %d encoded in %s mode with %d bytes", errs.ErrNonCanonical, v, mode, n))
	}

	return v, n, nil
}

// DecodeBig decodes a compact integer of any size from the start of b.
//
// Returns:
//   - *big.Int: Decoded value (newly allocated)
//   - int: Number of bytes consumed
//   - error: errs.ErrUnexpectedEOF if b is shorter than the mode requires,
//     errs.ErrNonCanonical for non-minimal input on a strict decoder
func (d *Decoder) DecodeBig(b []byte) (*big.Int, int, error) {
	n, err := Len(b)
	if err != nil {
		return nil, 0, err
	}

	if ModeOf(b[0]) != ModeBig {
		v, n, err := d.DecodeUint64(b)
		if err != nil {
			return nil, 0, err
		}

		return new(big.Int).SetUint64(v), n, nil
	}

	value := b[1:n]
	be := make([]byte, len(value))
	for i, c := range value {
		be[len(value)-1-i] = c
	}
	v := new(big.Int).SetBytes(be)

	if d.Strict() && (value[len(value)-1] == 0 || (v.IsUint64() && v.Uint64() <= MaxFour)) {
		return nil, 0, errs.At(opCompact, 0,
			fmt.Errorf("%w: value %s encoded with %d value bytes", errs.ErrNonCanonical, v, len(value)))
	}

	return v, n, nil
}

// canonical reports whether a value decoded from an n byte encoding in mode
// is the minimal encoding. last is the final byte of the encoding.
func canonical(mode Mode, n int, v uint64, last byte) bool {
	if ModeFor(v) != mode {
		return false
	}
	if mode == ModeBig {
		return n == EncodedLen(v) && last != 0
	}

	return true
}
