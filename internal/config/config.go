// Package config loads scalectl settings from a TOML file.
//
// Every key is optional; keys left out keep their defaults. Command line flags
// are applied on top by the caller.
//
//	log_level    = "warn"
//	strict       = false
//	max_length   = 0         # 0 means unlimited
//	compression  = "none"    # none, zstd, s2, lz4
//	byte_order   = "little"  # little, big, native
//	lenient_logs = true
//	layout       = "example" # example, substrate
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/arloliu/scale/endian"
	"github.com/arloliu/scale/format"
	"github.com/arloliu/scale/header"
	"github.com/arloliu/scale/internal/logging"
)

// Config is the resolved scalectl configuration.
type Config struct {
	LogLevel    string
	Strict      bool
	MaxLength   int
	Compression format.CompressionType
	ByteOrder   endian.ByteOrder
	LenientLogs bool
	Layout      header.Layout
}

type fileConfig struct {
	LogLevel    string `toml:"log_level"`
	Strict      bool   `toml:"strict"`
	MaxLength   int    `toml:"max_length"`
	Compression string `toml:"compression"`
	ByteOrder   string `toml:"byte_order"`
	LenientLogs bool   `toml:"lenient_logs"`
	Layout      string `toml:"layout"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		LogLevel:    "warn",
		Compression: format.CompressionNone,
		ByteOrder:   endian.LittleEndian,
		LenientLogs: true,
		Layout:      header.LayoutExample,
	}
}

// Load reads path over the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	cfg, err := resolve(raw, meta)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	return cfg, nil
}

// Parse reads TOML text over the defaults.
func Parse(text string) (Config, error) {
	var raw fileConfig
	meta, err := toml.Decode(text, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config parse failed: %w", err)
	}

	return resolve(raw, meta)
}

func resolve(raw fileConfig, meta toml.MetaData) (Config, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}

		return Config{}, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}

	cfg := Default()
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("strict") {
		cfg.Strict = raw.Strict
	}
	if meta.IsDefined("max_length") {
		cfg.MaxLength = raw.MaxLength
	}
	if meta.IsDefined("compression") {
		ct, ok := format.ParseCompressionType(raw.Compression)
		if !ok {
			return Config{}, fmt.Errorf("parse compression: unknown algorithm %q", raw.Compression)
		}
		cfg.Compression = ct
	}
	if meta.IsDefined("byte_order") {
		order, ok := endian.ParseByteOrder(raw.ByteOrder)
		if !ok {
			return Config{}, fmt.Errorf("parse byte_order: unknown order %q", raw.ByteOrder)
		}
		cfg.ByteOrder = order
	}
	if meta.IsDefined("lenient_logs") {
		cfg.LenientLogs = raw.LenientLogs
	}
	if meta.IsDefined("layout") {
		layout, ok := header.ParseLayout(raw.Layout)
		if !ok {
			return Config{}, fmt.Errorf("parse layout: unknown header layout %q", raw.Layout)
		}
		cfg.Layout = layout
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks ranges and names that the TOML decoder cannot.
func (c Config) Validate() error {
	var problems []error
	if c.MaxLength < 0 {
		problems = append(problems, fmt.Errorf("max_length must not be negative, got %d", c.MaxLength))
	}
	if !c.Compression.Valid() {
		problems = append(problems, fmt.Errorf("compression %s is not supported", c.Compression))
	}
	if !c.Layout.Valid() {
		problems = append(problems, fmt.Errorf("layout %s is not supported", c.Layout))
	}
	if _, ok := logging.ParseLevel(c.LogLevel); !ok {
		problems = append(problems, fmt.Errorf("log_level %q is not a level", c.LogLevel))
	}

	return errors.Join(problems...)
}
