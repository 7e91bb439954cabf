package compact

import (
	"math/big"
	"math/bits"
)

// Mode is the encoding mode stored in the two low bits of the first byte.
type Mode uint8

const (
	ModeSingle Mode = 0b00 // ModeSingle stores 0-63 in one byte.
	ModeTwo    Mode = 0b01 // ModeTwo stores 64-16383 in two bytes.
	ModeFour   Mode = 0b10 // ModeFour stores 16384-(2^30-1) in four bytes.
	ModeBig    Mode = 0b11 // ModeBig stores larger values in 4-67 value bytes.
)

const (
	// MaxSingle is the largest value encodable in ModeSingle.
	MaxSingle = 1<<6 - 1
	// MaxTwo is the largest value encodable in ModeTwo.
	MaxTwo = 1<<14 - 1
	// MaxFour is the largest value encodable in ModeFour.
	MaxFour = 1<<30 - 1

	// MinBigBytes is the smallest number of value bytes in ModeBig.
	MinBigBytes = 4
	// MaxBigBytes is the largest number of value bytes in ModeBig (63 + 4).
	MaxBigBytes = 67
	// MaxEncodedLen is the longest possible compact encoding.
	MaxEncodedLen = 1 + MaxBigBytes

	modeMask = 0b11
)

func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single-byte"
	case ModeTwo:
		return "two-byte"
	case ModeFour:
		return "four-byte"
	case ModeBig:
		return "big-integer"
	default:
		return "unknown"
	}
}

// ModeOf returns the mode selected by the first byte of an encoding.
func ModeOf(first byte) Mode {
	return Mode(first & modeMask)
}

// ModeFor returns the smallest mode able to represent v.
func ModeFor(v uint64) Mode {
	switch {
	case v <= MaxSingle:
		return ModeSingle
	case v <= MaxTwo:
		return ModeTwo
	case v <= MaxFour:
		return ModeFour
	default:
		return ModeBig
	}
}

// ModeForBig returns the smallest mode able to represent a non-negative v.
func ModeForBig(v *big.Int) Mode {
	if v.IsUint64() {
		return ModeFor(v.Uint64())
	}

	return ModeBig
}

// byteLen returns the minimum number of bytes holding v, at least MinBigBytes.
func byteLen(v uint64) int {
	n := (bits.Len64(v) + 7) / 8
	if n < MinBigBytes {
		return MinBigBytes
	}

	return n
}

// EncodedLen returns the number of bytes EncodeUint64(v) produces.
func EncodedLen(v uint64) int {
	switch ModeFor(v) {
	case ModeSingle:
		return 1
	case ModeTwo:
		return 2
	case ModeFour:
		return 4
	default:
		return 1 + byteLen(v)
	}
}
