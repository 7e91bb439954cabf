package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

func parseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex %q: %w", s, err)
	}

	return b, nil
}

func formatHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

// parseUint parses a decimal or 0x-prefixed unsigned integer of at most bits bits.
func parseUint(s string, bits int) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, bits)
	if err != nil {
		return 0, fmt.Errorf("invalid u%d %q: %w", bits, s, err)
	}

	return v, nil
}

func subcommand(args []string, usage string) (string, []string, error) {
	if len(args) == 0 {
		return "", nil, fmt.Errorf("missing subcommand, usage: %s", usage)
	}

	return args[0], args[1:], nil
}

func exactArgs(args []string, n int, usage string) error {
	if len(args) != n {
		return fmt.Errorf("expected %d argument(s), got %d, usage: %s", n, len(args), usage)
	}

	return nil
}
