package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/arloliu/scale/endian"
	"github.com/arloliu/scale/format"
	"github.com/arloliu/scale/header"
	"github.com/arloliu/scale/internal/config"
	"github.com/arloliu/scale/internal/logging"
)

type cliFlags struct {
	configPath  string
	strict      bool
	maxLen      int
	compression string
	order       string
	lenientLogs bool
	layout      string
	logLevel    string
	width       int
	elem        string
	length      int
	help        bool
}

func (f *cliFlags) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "path to a TOML config file")
	fs.BoolVar(&f.strict, "strict", false, "reject non-canonical compact integers")
	fs.IntVar(&f.maxLen, "max-len", 0, "maximum sequence length accepted when decoding (0 = unlimited)")
	fs.StringVar(&f.compression, "compression", "none", "frame compression: none, zstd, s2, lz4")
	fs.StringVar(&f.order, "order", "little", "byte order for endian: little, big, native")
	fs.BoolVar(&f.lenientLogs, "lenient-logs", true, "keep undecodable header digest logs as Other items")
	fs.StringVar(&f.layout, "layout", "example", "header wire layout: example, substrate")
	fs.StringVar(&f.logLevel, "log-level", "warn", "log level: trace, debug, info, warn, error, off")
	fs.IntVar(&f.width, "width", 32, "integer width in bits for endian: 8, 16, 32, 64")
	fs.StringVar(&f.elem, "elem", "u8", "element type for vector and array: u8, u16, u32, u64, compact")
	fs.IntVar(&f.length, "len", -1, "element count for array decode")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")
}

// apply overlays explicitly set flags on cfg.
func (f *cliFlags) apply(fs *pflag.FlagSet, cfg *config.Config) error {
	if fs.Changed("strict") {
		cfg.Strict = f.strict
	}
	if fs.Changed("max-len") {
		cfg.MaxLength = f.maxLen
	}
	if fs.Changed("compression") {
		ct, ok := format.ParseCompressionType(f.compression)
		if !ok {
			return fmt.Errorf("--compression: unknown algorithm %q", f.compression)
		}
		cfg.Compression = ct
	}
	if fs.Changed("order") {
		order, ok := endian.ParseByteOrder(f.order)
		if !ok {
			return fmt.Errorf("--order: unknown byte order %q", f.order)
		}
		cfg.ByteOrder = order
	}
	if fs.Changed("lenient-logs") {
		cfg.LenientLogs = f.lenientLogs
	}
	if fs.Changed("layout") {
		layout, ok := header.ParseLayout(f.layout)
		if !ok {
			return fmt.Errorf("--layout: unknown header layout %q", f.layout)
		}
		cfg.Layout = layout
	}
	if fs.Changed("log-level") {
		if _, ok := logging.ParseLevel(f.logLevel); !ok {
			return fmt.Errorf("--log-level: unknown level %q", f.logLevel)
		}
		cfg.LogLevel = f.logLevel
	}

	return cfg.Validate()
}
