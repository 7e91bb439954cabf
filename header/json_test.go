package header

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/scale/errs"
)

// demoHeader carries logs whose length prefixes overrun their buffers, as
// seen in hand-written fixtures.
const demoHeader = `{
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

const validHeader = `{
	"parentHash": "0x1111111111111111111111111111111111111111111111111111111111111111",
	"number": "0x5",
	"stateRoot": "0x2222222222222222222222222222222222222222222222222222222222222222",
	"extrinsicsRoot": "0x3333333333333333333333333333333333333333333333333333333333333333",
	"digest": {
		"logs": [
			"0x06424142451001000000",
			"0x",
			"0x054241424508aabb"
		]
	}
}`

func TestParseJSON_Valid(t *testing.T) {
	h, err := ParseJSON([]byte(validHeader))
	require.NoError(t, err)
	require.Equal(t, sampleEncoding(), h.Encode())
	require.Equal(t, sampleHeader().Hash(), h.Hash())
}

func TestParseJSON_LenientFallback(t *testing.T) {
	h, err := ParseJSON([]byte(demoHeader))
	require.NoError(t, err)
	require.Equal(t, uint32(0x1234567), h.Number)
	require.Equal(t, byte(0x12), h.ParentHash[0])
	require.Equal(t, byte(0xba), h.ExtrinsicsRoot[31])

	require.Len(t, h.Digest.Logs, 2)
	require.Equal(t, Other([]byte{0x06, 0x42, 0x41, 0x42, 0x45, 0xb5, 0x01, 0x01, 0x00, 0x00, 0x00, 0x00}), h.Digest.Logs[0])
	require.Equal(t, Other([]byte{0x05, 0x42, 0x41, 0x42, 0x45, 0x01, 0x01}), h.Digest.Logs[1])

	// the header still encodes and hashes deterministically
	require.Equal(t, h.Hash(), h.Hash())
}

func TestParseJSON_StrictLogs(t *testing.T) {
	c, err := NewCodec(WithLenientLogs(false))
	require.NoError(t, err)

	_, err = c.ParseJSON([]byte(demoHeader))
	require.ErrorIs(t, err, errs.ErrUnexpectedEOF)
	require.ErrorContains(t, err, "digest log 0")

	_, err = c.ParseJSON([]byte(validHeader))
	require.NoError(t, err)
}

func TestParseJSON_Invalid(t *testing.T) {
	valid := map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(validHeader), &valid))

	mutate := func(key string, value any) []byte {
		m := map[string]any{}
		for k, v := range valid {
			m[k] = v
		}
		if value == nil {
			delete(m, key)
		} else {
			m[key] = value
		}
		b, err := json.Marshal(m)
		require.NoError(t, err)

		return b
	}

	tests := []struct {
		name string
		in   []byte
		msg  string
	}{
		{"not json", []byte("{"), "invalid JSON header"},
		{"missing parent", mutate("parentHash", nil), "missing parentHash"},
		{"short state root", mutate("stateRoot", "0x1234"), "stateRoot has 2 bytes, want 32"},
		{"bad hex", mutate("extrinsicsRoot", "0xzz"), "extrinsicsRoot"},
		{"missing number", mutate("number", nil), "missing number"},
		{"number overflow", mutate("number", "0x100000000"), "number"},
		{"missing digest", mutate("digest", nil), "missing digest"},
		{"bad log hex", mutate("digest", map[string]any{"logs": []string{"0x0"}}), "digest log 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON(tt.in)
			require.ErrorIs(t, err, ErrInvalidJSON)
			require.ErrorContains(t, err, tt.msg)
		})
	}
}

func TestHeader_MarshalJSON(t *testing.T) {
	h := sampleHeader()
	h.Digest.Logs = append(h.Digest.Logs, RuntimeEnvironmentUpdated(), Other([]byte{0x01}))

	raw, err := json.Marshal(h)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	require.Equal(t, "0x5", fields["number"])
	require.Equal(t, map[string]any{"logs": []any{
		"0x06424142451001000000",
		"0x054241424508aabb",
		"0x08",
		"0x000401",
	}}, fields["digest"])

	parsed, err := ParseJSON(raw)
	require.NoError(t, err)
	require.Equal(t, h.Encode(), parsed.Encode())
}

func TestParseNotification(t *testing.T) {
	raw := `{"jsonrpc":"2.0","method":"chain_newHead","params":{"subscription":"abc123","result":` + validHeader + `}}`

	sub, h, err := ParseNotification([]byte(raw))
	require.NoError(t, err)
	require.Equal(t, "abc123", sub)
	require.Equal(t, uint32(5), h.Number)

	numeric := `{"jsonrpc":"2.0","params":{"subscription":42,"result":` + validHeader + `}}`
	sub, _, err = ParseNotification([]byte(numeric))
	require.NoError(t, err)
	require.Equal(t, "42", sub)

	_, _, err = ParseNotification([]byte(`{"jsonrpc":"2.0","id":1,"result":"abc123"}`))
	require.ErrorIs(t, err, ErrInvalidJSON)
}

func TestSubscribeRequest(t *testing.T) {
	require.JSONEq(t,
		`{"jsonrpc":"2.0","id":1,"method":"chain_subscribeNewHeads","params":[]}`,
		string(SubscribeRequest(1)))
}
