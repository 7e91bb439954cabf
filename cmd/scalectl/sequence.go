package main

import (
	"fmt"

	"github.com/arloliu/scale/codec"
	"github.com/arloliu/scale/compact"
	"github.com/arloliu/scale/endian"
)

const (
	vectorUsage = "vector encode <n...> | vector decode <hex>   [--elem u8|u16|u32|u64|compact]"
	arrayUsage  = "array encode <n...> | array decode <hex> --len <n>   [--elem ...]"
)

// elemShape adapts an element codec of any unsigned width to sequences of uint64.
type elemShape struct {
	bits   int
	vector func(opts ...codec.SequenceOption) (codec.Codec[[]uint64], error)
	array  func(n int) codec.Codec[[]uint64]
}

func shapeFor[T endian.Unsigned](elem codec.Codec[T]) elemShape {
	return elemShape{
		bits: endian.SizeOf[T]() * 8,
		vector: func(opts ...codec.SequenceOption) (codec.Codec[[]uint64], error) {
			v, err := codec.NewVector(elem, opts...)
			if err != nil {
				return nil, err
			}

			return widen[T](v), nil
		},
		array: func(n int) codec.Codec[[]uint64] {
			return widen[T](codec.Array(elem, n))
		},
	}
}

// widen converts between []T and []uint64. Values are range checked when
// parsed, so narrowing never truncates.
func widen[T endian.Unsigned](c codec.Codec[[]T]) codec.Codec[[]uint64] {
	return codec.Map(c,
		func(in []uint64) []T {
			out := make([]T, len(in))
			for i, v := range in {
				out[i] = T(v)
			}

			return out
		},
		func(in []T) ([]uint64, error) {
			out := make([]uint64, len(in))
			for i, v := range in {
				out[i] = uint64(v)
			}

			return out, nil
		})
}

func elemFor(name string, dec *compact.Decoder) (elemShape, error) {
	switch name {
	case "u8":
		return shapeFor[uint8](codec.U8), nil
	case "u16":
		return shapeFor[uint16](codec.U16), nil
	case "u32":
		return shapeFor[uint32](codec.U32), nil
	case "u64":
		return shapeFor[uint64](codec.U64), nil
	case "compact":
		return shapeFor[uint64](codec.NewCompact(dec)), nil
	default:
		return elemShape{}, fmt.Errorf("--elem: unknown element type %q", name)
	}
}

func parseValues(args []string, bits int) ([]uint64, error) {
	values := make([]uint64, len(args))
	for i, arg := range args {
		v, err := parseUint(arg, bits)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		values[i] = v
	}

	return values, nil
}

func (e *env) elem() (elemShape, error) {
	dec, err := e.compactDecoder()
	if err != nil {
		return elemShape{}, err
	}

	return elemFor(e.flags.elem, dec)
}

func runVector(e *env, args []string) error {
	sub, rest, err := subcommand(args, vectorUsage)
	if err != nil {
		return err
	}
	shape, err := e.elem()
	if err != nil {
		return err
	}

	dec, err := e.compactDecoder()
	if err != nil {
		return err
	}
	vec, err := shape.vector(codec.WithCompactDecoder(dec), codec.WithMaxLength(e.cfg.MaxLength))
	if err != nil {
		return err
	}

	switch sub {
	case "encode":
		values, err := parseValues(rest, shape.bits)
		if err != nil {
			return err
		}
		fmt.Fprintln(e.stdout, formatHex(codec.Encode(vec, values)))

		return nil

	case "decode":
		if err := exactArgs(rest, 1, vectorUsage); err != nil {
			return err
		}
		b, err := parseHex(rest[0])
		if err != nil {
			return err
		}
		values, err := codec.DecodeAll(vec, b)
		if err != nil {
			return err
		}
		e.log.Debug().Int("elements", len(values)).Int("bytes", len(b)).Msg("decoded vector")
		fmt.Fprintln(e.stdout, values)

		return nil

	default:
		return fmt.Errorf("unknown vector subcommand %q, usage: %s", sub, vectorUsage)
	}
}

func runArray(e *env, args []string) error {
	sub, rest, err := subcommand(args, arrayUsage)
	if err != nil {
		return err
	}
	shape, err := e.elem()
	if err != nil {
		return err
	}

	switch sub {
	case "encode":
		values, err := parseValues(rest, shape.bits)
		if err != nil {
			return err
		}
		fmt.Fprintln(e.stdout, formatHex(codec.Encode(shape.array(len(values)), values)))

		return nil

	case "decode":
		if err := exactArgs(rest, 1, arrayUsage); err != nil {
			return err
		}
		if e.flags.length < 0 {
			return fmt.Errorf("array decode needs --len, usage: %s", arrayUsage)
		}
		b, err := parseHex(rest[0])
		if err != nil {
			return err
		}
		values, err := codec.DecodeAll(shape.array(e.flags.length), b)
		if err != nil {
			return err
		}
		fmt.Fprintln(e.stdout, values)

		return nil

	default:
		return fmt.Errorf("unknown array subcommand %q, usage: %s", sub, arrayUsage)
	}
}
