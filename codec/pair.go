package codec

import "github.com/arloliu/scale/errs"

// Tuple2 is an ordered pair of values encoded back to back.
type Tuple2[A, B any] struct {
	First  A
	Second B
}

type pairCodec[A, B any] struct {
	first  Codec[A]
	second Codec[B]
}

// Pair returns the codec for (A, B) tuples: the encoding of First immediately
// followed by the encoding of Second.
func Pair[A, B any](first Codec[A], second Codec[B]) Codec[Tuple2[A, B]] {
	return pairCodec[A, B]{first: first, second: second}
}

func (c pairCodec[A, B]) Append(dst []byte, v Tuple2[A, B]) []byte {
	dst = c.first.Append(dst, v.First)
	return c.second.Append(dst, v.Second)
}

func (c pairCodec[A, B]) Decode(b []byte) (Tuple2[A, B], int, error) {
	a, n, err := c.first.Decode(b)
	if err != nil {
		return Tuple2[A, B]{}, 0, err
	}

	second, m, err := c.second.Decode(b[n:])
	if err != nil {
		return Tuple2[A, B]{}, 0, errs.At("pair second", n, err)
	}

	return Tuple2[A, B]{First: a, Second: second}, n + m, nil
}
