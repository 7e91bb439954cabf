// Package compact implements the SCALE compact encoding for unsigned integers.
//
// Compact encoding spends one, two, four or 5-68 bytes on a value depending on
// its magnitude. The two least significant bits of the first byte select the
// mode:
//
//	Mode  Range                     Layout
//	0b00  0 - 63                    [VVVVVV00]
//	0b01  64 - 16383                [VVVVVV01 VVVVVVVV]            (little-endian)
//	0b10  16384 - 2^30-1            [VVVVVV10 VVVVVVVV x3]         (little-endian)
//	0b11  2^30 - 2^536-1            [LLLLLL11 VVVVVVVV x(L+4)]     (little-endian)
//
// In the big-integer mode the upper six bits of the first byte hold the number
// of value bytes minus four, and the value bytes follow with no leading zero
// byte.
//
// # Encoding
//
// Encoders always choose the smallest mode that fits, and in mode 0b11 the
// smallest number of value bytes:
//
//	b := compact.EncodeUint64(65)          // 05 01
//	b = compact.AppendUint64(b, 1<<30)     // 05 01 03 00 00 00 40
//	big, err := compact.EncodeBig(x)       // *big.Int up to 2^536-1
//
// # Decoding
//
// Decoders return the value and the number of bytes consumed:
//
//	v, n, err := compact.DecodeUint64(b)
//
// The package-level decode functions are lenient: a value encoded in a larger
// mode than necessary (for example 0x01 0x00 for zero) decodes to its value.
// A Decoder built with WithStrict(true) rejects such input with
// errs.ErrNonCanonical, which is what consensus-critical callers want.
//
// Truncated input fails with errs.ErrUnexpectedEOF wrapped in an
// *errs.DecodeError whose offset is the position of the first missing byte.
//
// # Thread Safety
//
// All functions are pure. A Decoder is immutable after construction and safe
// for concurrent use.
package compact
