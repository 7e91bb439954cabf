// Package endian provides the byte order primitives used by every SCALE codec.
//
// The package wraps Go's encoding/binary byte orders in a unified EndianEngine
// interface (ByteOrder + AppendByteOrder) and adds generic helpers that convert
// fixed-width unsigned integers to and from little-endian, big-endian and
// host-native byte sequences.
//
// # Basic Usage
//
// SCALE mandates little-endian for every primitive integer on the wire, so most
// callers should request LittleEndian explicitly:
//
//	b := endian.ToBytes(uint32(0x12345678), endian.LittleEndian) // 78 56 34 12
//	v := endian.FromBytes[uint32](b, endian.LittleEndian)        // 0x12345678
//
// For interoperability with big-endian systems:
//
//	b := endian.ToBytes(uint32(0x12345678), endian.BigEndian) // 12 34 56 78
//
// # Native Byte Order
//
// NativeEndian is whichever of little or big matches the host's in-memory
// integer layout. It is resolved at runtime by inspecting a known integer value,
// never assumed. Bytes produced with NativeEndian are therefore not portable;
// callers that need wire-format determinism must use LittleEndian, or call
// ByteOrder.Resolve to record which concrete order was used.
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// CompareNativeEndian reports whether engine matches the host byte order.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// GetLittleEndianEngine returns the little-endian engine, the SCALE wire order.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetNativeEngine returns the engine matching the host byte order.
func GetNativeEngine() EndianEngine {
	if IsNativeBigEndian() {
		return binary.BigEndian
	}

	return binary.LittleEndian
}
