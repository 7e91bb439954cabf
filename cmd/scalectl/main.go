// scalectl encodes and decodes SCALE values from the command line.
//
// Values are read from arguments as decimal or 0x-prefixed numbers, and
// encodings are read and written as 0x-prefixed hex. Errors are printed to
// stderr as "error: ..." with exit status 1.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/arloliu/scale/internal/config"
	"github.com/arloliu/scale/internal/logging"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr, os.Getenv); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// env is the resolved state every command runs with.
type env struct {
	stdout io.Writer
	stderr io.Writer
	log    zerolog.Logger
	cfg    config.Config
	flags  *cliFlags
}

type command struct {
	name  string
	usage string
	run   func(e *env, args []string) error
}

var commands = []command{
	{"compact", "compact encode <n> | compact decode <hex>", runCompact},
	{"endian", "endian <n> | endian decode <hex>   [--width 8|16|32|64] [--order little|big|native]", runEndian},
	{"vector", "vector encode <n...> | vector decode <hex>   [--elem u8|u16|u32|u64|compact]", runVector},
	{"array", "array encode <n...> | array decode <hex> --len <n>   [--elem ...]", runArray},
	{"header", "header hash|encode [file] | header decode <hex> | header subscribe", runHeader},
	{"frame", "frame seal <hex> [--compression ...] | frame open <hex> | frame inspect <hex>", runFrame},
}

func run(args []string, stdout, stderr io.Writer, getenv func(string) string) error {
	var flags cliFlags
	flagSet := pflag.NewFlagSet("scalectl", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flags.addFlags(flagSet)

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stderr, flagSet)
			return nil
		}

		return err
	}

	positional := flagSet.Args()
	if flags.help || len(positional) == 0 || positional[0] == "help" {
		printHelp(stderr, flagSet)
		return nil
	}

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	if err := flags.apply(flagSet, &cfg); err != nil {
		return err
	}

	logCfg := logging.DefaultConfig(logging.ProfileRuntime)
	if lvl, ok := logging.ParseLevel(cfg.LogLevel); ok {
		logCfg.Level = lvl
	}
	logging.ApplyEnvOverrides(&logCfg, getenv)
	if flagSet.Changed("log-level") {
		logCfg.Level, _ = logging.ParseLevel(flags.logLevel)
	}

	e := &env{
		stdout: stdout,
		stderr: stderr,
		log:    logging.New(stderr, logCfg),
		cfg:    cfg,
		flags:  &flags,
	}

	name := positional[0]
	for _, cmd := range commands {
		if cmd.name == name {
			e.log.Debug().Str("command", name).Strs("args", positional[1:]).Msg("running")
			return cmd.run(e, positional[1:])
		}
	}

	return fmt.Errorf("unknown command %q (run scalectl help)", name)
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `scalectl - SCALE codec tool.

Usage:
`)
	for _, cmd := range commands {
		fmt.Fprintf(w, "  scalectl %s\n", cmd.usage)
	}
	fmt.Fprintf(w, `
Examples:
  scalectl compact encode 65            # 0x0501
  scalectl vector decode 0x0c010203     # [1 2 3]
  scalectl array encode --elem u16 258 3
  scalectl frame seal --compression zstd 0x0c010203

Flags:
`)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
