package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/arloliu/scale/compress"
	"github.com/arloliu/scale/frame"
)

const frameUsage = "frame seal <hex> [--compression none|zstd|s2|lz4] | frame open <hex> | frame inspect <hex>"

func runFrame(e *env, args []string) error {
	sub, rest, err := subcommand(args, frameUsage)
	if err != nil {
		return err
	}
	if err := exactArgs(rest, 1, frameUsage); err != nil {
		return err
	}
	b, err := parseHex(rest[0])
	if err != nil {
		return err
	}

	switch sub {
	case "seal":
		sealed, err := frame.Seal(b, e.cfg.Compression)
		if err != nil {
			return err
		}
		if e.log.GetLevel() <= zerolog.InfoLevel {
			if _, stats, err := compress.Measure(e.cfg.Compression, b); err == nil {
				e.log.Info().
					Stringer("compression", stats.Algorithm).
					Int64("payload", stats.OriginalSize).
					Int64("body", stats.CompressedSize).
					Float64("savings_pct", stats.SpaceSavings()).
					Msg("sealed frame")
			}
		}
		fmt.Fprintln(e.stdout, formatHex(sealed))

		return nil

	case "open":
		payload, err := frame.Open(b)
		if err != nil {
			return err
		}
		fmt.Fprintln(e.stdout, formatHex(payload))

		return nil

	case "inspect":
		info, err := frame.Inspect(b)
		if err != nil {
			return err
		}
		fmt.Fprintf(e.stdout, "compression: %s\nchecksum:    %016x\nbody:        %d bytes\nsize:        %d bytes\n",
			info.Compression, info.Checksum, info.BodyLen, info.Size())

		return nil

	default:
		return fmt.Errorf("unknown frame subcommand %q, usage: %s", sub, frameUsage)
	}
}
