package main

import (
	"fmt"
	"math/big"

	"github.com/arloliu/scale/compact"
	"github.com/arloliu/scale/errs"
)

const (
	compactUsage = "compact encode <n> | compact decode <hex>"
	opCompactCmd = "compact"
)

func (e *env) compactDecoder() (*compact.Decoder, error) {
	return compact.NewDecoder(compact.WithStrict(e.cfg.Strict))
}

func runCompact(e *env, args []string) error {
	sub, rest, err := subcommand(args, compactUsage)
	if err != nil {
		return err
	}
	if err := exactArgs(rest, 1, compactUsage); err != nil {
		return err
	}

	switch sub {
	case "encode":
		v, ok := new(big.Int).SetString(rest[0], 0)
		if !ok {
			return fmt.Errorf("invalid integer %q", rest[0])
		}

		b, err := compact.EncodeBig(v)
		if err != nil {
			return err
		}
		e.log.Debug().Str("mode", compact.ModeOf(b[0]).String()).Int("bytes", len(b)).Msg("encoded compact")
		fmt.Fprintln(e.stdout, formatHex(b))

		return nil

	case "decode":
		b, err := parseHex(rest[0])
		if err != nil {
			return err
		}
		dec, err := e.compactDecoder()
		if err != nil {
			return err
		}

		v, n, err := dec.DecodeBig(b)
		if err != nil {
			return err
		}
		if n != len(b) {
			return errs.At(opCompactCmd, n, errs.ErrTrailingBytes)
		}
		e.log.Debug().Str("mode", compact.ModeOf(b[0]).String()).Int("bytes", n).Msg("decoded compact")
		fmt.Fprintln(e.stdout, v.String())

		return nil

	default:
		return fmt.Errorf("unknown compact subcommand %q, usage: %s", sub, compactUsage)
	}
}
