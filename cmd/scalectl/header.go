package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/arloliu/scale/header"
)

const headerUsage = "header hash|encode [file] | header decode <hex> | header subscribe"

// sampleHeader is the payload shape pushed by chain_subscribeNewHeads. The
// example layout classifies its logs by first byte. They are not valid
// substrate DigestItems and are kept as Other items in lenient mode.
const sampleHeader = `{
  "parentHash": "0x1234567890abcdef1234567890abcdef1234567890abcdef1234567890abcdef",
  "number": "0x1234567",
  "stateRoot": "0xabcdef1234567890abcdef1234567890abcdef1234567890abcdef1234567890",
  "extrinsicsRoot": "0x9876543210fedcba9876543210fedcba9876543210fedcba9876543210fedcba",
  "digest": {
    "logs": [
      "0x0642414245b5010100000000",
      "0x05424142450101"
    ]
  }
}`

func (e *env) headerCodec() (*header.Codec, error) {
	return header.NewCodec(
		header.WithLayout(e.cfg.Layout),
		header.WithStrict(e.cfg.Strict),
		header.WithMaxLogs(e.cfg.MaxLength),
		header.WithLenientLogs(e.cfg.LenientLogs),
	)
}

func (e *env) readHeader(c *header.Codec, args []string) (header.Header, error) {
	raw := []byte(sampleHeader)
	switch len(args) {
	case 0:
		e.log.Info().Msg("no header file given, using built-in sample")
	case 1:
		b, err := os.ReadFile(args[0])
		if err != nil {
			return header.Header{}, err
		}
		raw = b
	default:
		return header.Header{}, fmt.Errorf("expected at most one file, usage: %s", headerUsage)
	}

	h, err := c.ParseJSON(raw)
	if err != nil {
		return header.Header{}, err
	}
	for i, item := range h.Digest.Logs {
		e.log.Debug().Int("log", i).Stringer("item", item).Msg("digest log")
	}

	return h, nil
}

func runHeader(e *env, args []string) error {
	sub, rest, err := subcommand(args, headerUsage)
	if err != nil {
		return err
	}
	c, err := e.headerCodec()
	if err != nil {
		return err
	}

	switch sub {
	case "hash":
		h, err := e.readHeader(c, rest)
		if err != nil {
			return err
		}
		printHeader(e, c, h)

		return nil

	case "encode":
		h, err := e.readHeader(c, rest)
		if err != nil {
			return err
		}
		fmt.Fprintln(e.stdout, formatHex(c.Encode(h)))

		return nil

	case "decode":
		if err := exactArgs(rest, 1, headerUsage); err != nil {
			return err
		}
		b, err := parseHex(rest[0])
		if err != nil {
			return err
		}
		h, err := c.DecodeAll(b)
		if err != nil {
			return err
		}
		raw, err := c.FormatJSON(h)
		if err != nil {
			return err
		}
		var out bytes.Buffer
		if err := json.Indent(&out, raw, "", "  "); err != nil {
			return err
		}
		fmt.Fprintln(e.stdout, out.String())

		return nil

	case "subscribe":
		fmt.Fprintln(e.stdout, string(header.SubscribeRequest(1)))
		return nil

	default:
		return fmt.Errorf("unknown header subcommand %q, usage: %s", sub, headerUsage)
	}
}

func printHeader(e *env, c *header.Codec, h header.Header) {
	encoded := c.Encode(h)
	w := e.stdout
	fmt.Fprintf(w, "layout:          %s\n", c.Layout())
	fmt.Fprintf(w, "parent hash:     %s\n", h.ParentHash)
	fmt.Fprintf(w, "number:          %d\n", h.Number)
	fmt.Fprintf(w, "state root:      %s\n", h.StateRoot)
	fmt.Fprintf(w, "extrinsics root: %s\n", h.ExtrinsicsRoot)
	fmt.Fprintf(w, "digest logs:     %d\n", len(h.Digest.Logs))
	for i, item := range h.Digest.Logs {
		fmt.Fprintf(w, "  [%d] %s\n", i, item)
	}
	fmt.Fprintf(w, "encoded length:  %d bytes\n", len(encoded))
	fmt.Fprintf(w, "hash:            %s\n", c.Hash(h))
}
