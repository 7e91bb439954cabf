package codec

import (
	"fmt"

	"github.com/arloliu/scale/errs"
	"github.com/arloliu/scale/internal/pool"
)

// Codec encodes and decodes values of type T.
type Codec[T any] interface {
	// Append appends the encoding of v to dst and returns the extended slice.
	Append(dst []byte, v T) []byte
	// Decode decodes one value from the start of b and returns it together
	// with the number of bytes consumed.
	Decode(b []byte) (T, int, error)
}

// Encode returns the encoding of v in a newly allocated slice.
//
// The value is assembled in a pooled scratch buffer, so the returned slice is
// exactly sized and owned by the caller.
func Encode[T any](c Codec[T], v T) []byte {
	bb := pool.GetEncodeBuffer()
	defer pool.PutEncodeBuffer(bb)

	bb.B = c.Append(bb.B, v)

	return bb.Clone()
}

// DecodeAll decodes exactly one value occupying all of b.
//
// Returns errs.ErrTrailingBytes if bytes remain after the value.
func DecodeAll[T any](c Codec[T], b []byte) (T, error) {
	v, n, err := c.Decode(b)
	if err != nil {
		var zero T
		return zero, err
	}
	if n != len(b) {
		var zero T
		return zero, errs.At("decode", n,
			fmt.Errorf("%w: %d of %d bytes unread", errs.ErrTrailingBytes, len(b)-n, len(b)))
	}

	return v, nil
}

// Func adapts a pair of functions to the Codec interface.
type Func[T any] struct {
	AppendFunc func(dst []byte, v T) []byte
	DecodeFunc func(b []byte) (T, int, error)
}

var _ Codec[uint8] = Func[uint8]{}

func (f Func[T]) Append(dst []byte, v T) []byte {
	return f.AppendFunc(dst, v)
}

func (f Func[T]) Decode(b []byte) (T, int, error) {
	return f.DecodeFunc(b)
}

// mapped converts between a user type V and a wire type W.
type mapped[V, W any] struct {
	inner Codec[W]
	to    func(V) W
	from  func(W) (V, error)
}

// Map builds a Codec[V] from a Codec[W] and conversions between V and W.
//
// The from conversion may reject a decoded wire value; its error is returned
// positioned at the start of the value.
func Map[V, W any](inner Codec[W], to func(V) W, from func(W) (V, error)) Codec[V] {
	return &mapped[V, W]{inner: inner, to: to, from: from}
}

func (m *mapped[V, W]) Append(dst []byte, v V) []byte {
	return m.inner.Append(dst, m.to(v))
}

func (m *mapped[V, W]) Decode(b []byte) (V, int, error) {
	w, n, err := m.inner.Decode(b)
	if err != nil {
		var zero V
		return zero, 0, err
	}

	v, err := m.from(w)
	if err != nil {
		var zero V
		return zero, 0, errs.At("map", 0, err)
	}

	return v, n, nil
}

// erased hides the element type of a codec behind any.
type erased[T any] struct {
	inner Codec[T]
}

// Any wraps c so that it encodes and decodes values typed as any.
//
// Append panics if handed a value whose dynamic type is not T. Enum payload
// codecs are built with Any.
func Any[T any](c Codec[T]) Codec[any] {
	return erased[T]{inner: c}
}

func (e erased[T]) Append(dst []byte, v any) []byte {
	t, ok := v.(T)
	if !ok {
		var zero T
		panic(fmt.Sprintf("codec: payload of type %T, want %T", v, zero))
	}

	return e.inner.Append(dst, t)
}

func (e erased[T]) Decode(b []byte) (any, int, error) {
	v, n, err := e.inner.Decode(b)
	if err != nil {
		return nil, 0, err
	}

	return v, n, nil
}
