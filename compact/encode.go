package compact

import (
	"fmt"
	"math/big"

	"github.com/arloliu/scale/endian"
	"github.com/arloliu/scale/errs"
)

var le = endian.GetLittleEndianEngine()

// AppendUint64 appends the compact encoding of v to dst.
//
// The smallest mode that fits v is always used. For values of 2^30 and above the
// value bytes carry no leading zero byte.
//
// Parameters:
//   - dst: Destination buffer (may be nil)
//   - v: Value to encode
//
// Returns:
//   - []byte: dst extended by EncodedLen(v) bytes
func AppendUint64(dst []byte, v uint64) []byte {
	switch ModeFor(v) {
	case ModeSingle:
		return append(dst, byte(v<<2)|byte(ModeSingle))
	case ModeTwo:
		return le.AppendUint16(dst, uint16(v<<2)|uint16(ModeTwo)) //nolint:gosec
	case ModeFour:
		return le.AppendUint32(dst, uint32(v<<2)|uint32(ModeFour)) //nolint:gosec
	default:
		n := byteLen(v)
		dst = append(dst, byte(n-MinBigBytes)<<2|byte(ModeBig))
		for i := 0; i < n; i++ {
			dst = append(dst, byte(v>>(8*i)))
		}

		return dst
	}
}

// EncodeUint64 returns the compact encoding of v in a new slice.
func EncodeUint64(v uint64) []byte {
	return AppendUint64(make([]byte, 0, EncodedLen(v)), v)
}

// AppendBig appends the compact encoding of a non-negative big integer to dst.
//
// Values that fit in a uint64 take the same path as AppendUint64. Larger values
// are written in ModeBig with the minimum number of value bytes.
//
// Returns:
//   - []byte: dst extended with the encoding
//   - error: errs.ErrOverflow if v is nil, negative or needs more than MaxBigBytes bytes
func AppendBig(dst []byte, v *big.Int) ([]byte, error) {
	if v == nil || v.Sign() < 0 {
		return dst, fmt.Errorf("%w: compact value must be non-negative", errs.ErrOverflow)
	}

	if v.IsUint64() {
		return AppendUint64(dst, v.Uint64()), nil
	}

	be := v.Bytes() // big-endian, no leading zeros
	n := len(be)
	if n > MaxBigBytes {
		return dst, fmt.Errorf("%w: compact value needs %d bytes, max %d", errs.ErrOverflow, n, MaxBigBytes)
	}

	dst = append(dst, byte(n-MinBigBytes)<<2|byte(ModeBig))
	for i := n - 1; i >= 0; i-- {
		dst = append(dst, be[i])
	}

	return dst, nil
}

// EncodeBig returns the compact encoding of v in a new slice.
func EncodeBig(v *big.Int) ([]byte, error) {
	return AppendBig(nil, v)
}

// MaxBig returns the largest value compact encoding can represent, 2^536-1.
func MaxBig() *big.Int {
	limit := new(big.Int).Lsh(big.NewInt(1), 8*MaxBigBytes)
	return limit.Sub(limit, big.NewInt(1))
}
