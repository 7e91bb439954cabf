package codec

import (
	"fmt"

	"github.com/arloliu/scale/errs"
)

// EnumValue is a decoded tagged-union value.
//
// Index is the discriminant. Payload holds the value produced by the variant's
// payload codec, or nil for unit variants.
type EnumValue struct {
	Index   byte
	Payload any
}

// Variant declares one shape of a tagged union.
type Variant struct {
	Index   byte       // Index is the discriminant byte.
	Name    string     // Name is used in error messages.
	Payload Codec[any] // Payload is nil for unit variants.
}

// NewVariant declares a variant carrying a payload encoded by c.
func NewVariant[T any](index byte, name string, c Codec[T]) Variant {
	return Variant{Index: index, Name: name, Payload: Any(c)}
}

// UnitVariant declares a variant without payload.
func UnitVariant(index byte, name string) Variant {
	return Variant{Index: index, Name: name}
}

// Unit reports whether the variant carries no payload.
func (v Variant) Unit() bool {
	return v.Payload == nil
}

// EnumCodec encodes tagged unions as a discriminant byte followed by the payload.
//
// Variants are resolved through a 256 slot table indexed by discriminant, so
// the set of shapes is closed once the codec is built. Discriminants need not be
// contiguous; a byte with no declared variant fails to decode with
// errs.ErrInvalidVariant.
type EnumCodec struct {
	table [256]*Variant
	count int
}

// NewEnum builds an enum codec from its variants.
//
// Returns an error if two variants share a discriminant.
func NewEnum(variants ...Variant) (*EnumCodec, error) {
	e := &EnumCodec{}
	for i := range variants {
		v := variants[i]
		if prev := e.table[v.Index]; prev != nil {
			return nil, fmt.Errorf("duplicate enum discriminant %d: %q and %q", v.Index, prev.Name, v.Name)
		}
		e.table[v.Index] = &v
		e.count++
	}

	return e, nil
}

// Ordered builds an enum whose discriminants are the positions of the shapes.
//
// A nil shape declares a unit variant. Ordered panics if more than 256 shapes
// are given.
func Ordered(shapes ...Codec[any]) *EnumCodec {
	if len(shapes) > 256 {
		panic(fmt.Sprintf("codec: %d enum variants, max 256", len(shapes)))
	}

	e := &EnumCodec{}
	for i, s := range shapes {
		e.table[i] = &Variant{Index: byte(i), Name: fmt.Sprintf("variant %d", i), Payload: s}
	}
	e.count = len(shapes)

	return e
}

// Len returns the number of declared variants.
func (e *EnumCodec) Len() int {
	return e.count
}

// Lookup returns the variant declared for a discriminant.
func (e *EnumCodec) Lookup(index byte) (Variant, bool) {
	v := e.table[index]
	if v == nil {
		return Variant{}, false
	}

	return *v, true
}

// Append writes v.Index followed by the payload encoding.
//
// It panics if v.Index has no declared variant or the payload type does not
// match the variant, since such a value does not belong to the enum type.
func (e *EnumCodec) Append(dst []byte, v EnumValue) []byte {
	variant := e.table[v.Index]
	if variant == nil {
		panic(fmt.Sprintf("codec: enum has no variant %d", v.Index))
	}

	dst = append(dst, v.Index)
	if variant.Payload == nil {
		return dst
	}

	return variant.Payload.Append(dst, v.Payload)
}

// Decode reads the discriminant, looks up the variant and decodes its payload
// from the remaining bytes.
func (e *EnumCodec) Decode(b []byte) (EnumValue, int, error) {
	if len(b) == 0 {
		return EnumValue{}, 0, errs.At("enum discriminant", 0, errs.ErrUnexpectedEOF)
	}

	index := b[0]
	variant := e.table[index]
	if variant == nil {
		return EnumValue{}, 0, errs.At("enum discriminant", 0,
			fmt.Errorf("%w: discriminant %d not among %d variants", errs.ErrInvalidVariant, index, e.count))
	}

	if variant.Payload == nil {
		return EnumValue{Index: index}, 1, nil
	}

	payload, n, err := variant.Payload.Decode(b[1:])
	if err != nil {
		return EnumValue{}, 0, errs.At("enum "+variant.Name, 1, err)
	}

	return EnumValue{Index: index, Payload: payload}, 1 + n, nil
}
