package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefaultConfig(t *testing.T) {
	require.Equal(t, Config{Level: zerolog.WarnLevel, Timestamp: true}, DefaultConfig(ProfileRuntime))
	require.Equal(t, Config{Level: zerolog.DebugLevel, NoColor: true}, DefaultConfig(ProfileTest))
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := DefaultConfig(ProfileRuntime)
	ApplyEnvOverrides(&cfg, envMap(map[string]string{
		EnvLogLevel:     " Debug ",
		EnvLogTimestamp: "false",
		EnvLogNoColor:   "1",
	}))
	require.Equal(t, Config{Level: zerolog.DebugLevel, NoColor: true}, cfg)

	cfg = DefaultConfig(ProfileRuntime)
	ApplyEnvOverrides(&cfg, envMap(map[string]string{
		EnvLogLevel:   "loud",
		EnvLogNoColor: "maybe",
	}))
	require.Equal(t, DefaultConfig(ProfileRuntime), cfg)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
		ok   bool
	}{
		{"trace", zerolog.TraceLevel, true},
		{"DEBUG", zerolog.DebugLevel, true},
		{"info", zerolog.InfoLevel, true},
		{"warning", zerolog.WarnLevel, true},
		{"error", zerolog.ErrorLevel, true},
		{"off", zerolog.Disabled, true},
		{"", zerolog.InfoLevel, false},
		{"verbose", zerolog.InfoLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLevel(tt.in)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Config{Level: zerolog.InfoLevel, NoColor: true})

	log.Debug().Msg("hidden")
	log.Info().Str("op", "compact").Int("offset", 3).Msg("decoded")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "INF")
	require.Contains(t, out, "decoded")
	require.Contains(t, out, "op=compact")
	require.Contains(t, out, "offset=3")
}
