package main

import (
	"fmt"

	"github.com/arloliu/scale/endian"
)

const endianUsage = "endian <n> | endian decode <hex>   [--width 8|16|32|64] [--order little|big|native]"

func runEndian(e *env, args []string) error {
	width := e.flags.width
	switch width {
	case 8, 16, 32, 64:
	default:
		return fmt.Errorf("--width must be 8, 16, 32 or 64, got %d", width)
	}
	order := e.cfg.ByteOrder

	if len(args) > 0 && args[0] == "decode" {
		if err := exactArgs(args[1:], 1, endianUsage); err != nil {
			return err
		}
		b, err := parseHex(args[1])
		if err != nil {
			return err
		}
		if len(b) != width/8 {
			return fmt.Errorf("u%d needs %d bytes, got %d", width, width/8, len(b))
		}

		var v uint64
		switch width {
		case 8:
			v = uint64(endian.FromBytes[uint8](b, order))
		case 16:
			v = uint64(endian.FromBytes[uint16](b, order))
		case 32:
			v = uint64(endian.FromBytes[uint32](b, order))
		default:
			v = endian.FromBytes[uint64](b, order)
		}
		fmt.Fprintln(e.stdout, v)

		return nil
	}

	if err := exactArgs(args, 1, endianUsage); err != nil {
		return err
	}
	v, err := parseUint(args[0], width)
	if err != nil {
		return err
	}

	var b []byte
	switch width {
	case 8:
		b = endian.ToBytes(uint8(v), order)
	case 16:
		b = endian.ToBytes(uint16(v), order)
	case 32:
		b = endian.ToBytes(uint32(v), order)
	default:
		b = endian.ToBytes(v, order)
	}
	e.log.Debug().Str("order", order.Resolve().String()).Int("width", width).Msg("encoded fixed-width integer")
	fmt.Fprintln(e.stdout, formatHex(b))

	return nil
}
