package endian

import "unsafe"

// ByteOrder selects the byte layout used by ToBytes and FromBytes.
type ByteOrder uint8

const (
	LittleEndian ByteOrder = iota // LittleEndian emits the least significant byte first.
	BigEndian                     // BigEndian emits the most significant byte first.
	NativeEndian                  // NativeEndian follows the host's in-memory layout.
)

func (o ByteOrder) String() string {
	switch o {
	case LittleEndian:
		return "little"
	case BigEndian:
		return "big"
	case NativeEndian:
		return "native"
	default:
		return "unknown"
	}
}

// Resolve maps NativeEndian to the concrete order of the host.
// LittleEndian and BigEndian are returned unchanged.
func (o ByteOrder) Resolve() ByteOrder {
	if o != NativeEndian {
		return o
	}
	if IsNativeBigEndian() {
		return BigEndian
	}

	return LittleEndian
}

// Engine returns the EndianEngine implementing the byte order.
// Unknown orders fall back to little-endian, the SCALE wire order.
func (o ByteOrder) Engine() EndianEngine {
	switch o.Resolve() {
	case BigEndian:
		return GetBigEndianEngine()
	default:
		return GetLittleEndianEngine()
	}
}

// ParseByteOrder parses "little", "big" or "native" (also "le", "be", "ne").
func ParseByteOrder(s string) (ByteOrder, bool) {
	switch s {
	case "little", "le":
		return LittleEndian, true
	case "big", "be":
		return BigEndian, true
	case "native", "ne":
		return NativeEndian, true
	default:
		return LittleEndian, false
	}
}

// Unsigned is the set of fixed-width unsigned integers handled by this package.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// SizeOf returns the width of T in bytes.
func SizeOf[T Unsigned]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// ToBytes converts v into exactly SizeOf[T]() bytes in the given order.
func ToBytes[T Unsigned](v T, order ByteOrder) []byte {
	return AppendBytes(make([]byte, 0, SizeOf[T]()), v, order)
}

// AppendBytes appends the SizeOf[T]() byte representation of v to dst.
func AppendBytes[T Unsigned](dst []byte, v T, order ByteOrder) []byte {
	engine := order.Engine()

	switch SizeOf[T]() {
	case 1:
		return append(dst, byte(v))
	case 2:
		return engine.AppendUint16(dst, uint16(v))
	case 4:
		return engine.AppendUint32(dst, uint32(v))
	default:
		return engine.AppendUint64(dst, uint64(v))
	}
}

// FromBytes reads a T from the first SizeOf[T]() bytes of b in the given order.
//
// FromBytes is the exact inverse of ToBytes. It panics if b is shorter than
// SizeOf[T](), the same contract as encoding/binary.
func FromBytes[T Unsigned](b []byte, order ByteOrder) T {
	engine := order.Engine()

	switch SizeOf[T]() {
	case 1:
		return T(b[0])
	case 2:
		return T(engine.Uint16(b))
	case 4:
		return T(engine.Uint32(b))
	default:
		return T(engine.Uint64(b))
	}
}
