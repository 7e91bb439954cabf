// Package codec composes SCALE encoders and decoders over arbitrary element types.
//
// Every codec implements the Codec[T] capability interface:
//
//	type Codec[T any] interface {
//	    Append(dst []byte, v T) []byte
//	    Decode(b []byte) (T, int, error)
//	}
//
// Append is total for well-typed input. Decode reads one value from the start
// of b and reports how many bytes it consumed. Because element codecs are plain
// values of this interface, the same Vector, Array and Enum logic works over
// primitives, enums and nested sequences alike.
//
// # Wire Formats
//
//	Primitive integers   little-endian, fixed width
//	Bool                 0x00 or 0x01
//	Compact              see package compact
//	Enum                 [discriminant: 1 byte][payload]
//	Vector               [compact length][elem_0]...[elem_n-1]
//	Array                [elem_0]...[elem_N-1]      (N known statically)
//
// # Usage
//
//	vec := codec.Vector(codec.U8)
//	b := codec.Encode(vec, []uint8{1, 2, 3})       // 0c 01 02 03
//	arr := codec.Array(codec.U8, 3)
//	b = codec.Encode(arr, []uint8{1, 2, 3})        // 01 02 03
//
//	shape, _ := codec.NewEnum(
//	    codec.UnitVariant(0, "Unit"),
//	    codec.NewVariant(1, "U16", codec.U16),
//	    codec.NewVariant(2, "Bool", codec.Bool),
//	)
//	b = codec.Encode(shape, codec.EnumValue{Index: 1, Payload: uint16(300)}) // 01 2c 01
//
// # Errors
//
// Decoders fail with errs.ErrUnexpectedEOF, errs.ErrInvalidVariant and the
// other sentinels of package errs, wrapped in *errs.DecodeError with the
// absolute byte offset of the failure. Composed decoders stop at the first
// element failure and return it.
//
// # Untrusted Input
//
// A vector length prefix is not bounded by the codec itself. Decoders of
// untrusted input should set WithMaxLength. Capacity for decoded elements is
// never pre-allocated beyond the number of remaining input bytes.
//
// # Thread Safety
//
// Codecs are immutable after construction and safe for concurrent use.
package codec
