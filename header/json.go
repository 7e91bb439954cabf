package header

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidJSON indicates a JSON header payload with a missing or malformed field.
var ErrInvalidJSON = errors.New("header: invalid JSON header")

// SubscribeMethod is the JSON-RPC method that streams new block headers.
const SubscribeMethod = "chain_subscribeNewHeads"

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

// SubscribeRequest returns the JSON-RPC request body that subscribes to new
// block headers.
func SubscribeRequest(id int) []byte {
	b, _ := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      id,
		Method:  SubscribeMethod,
		Params:  []any{},
	})

	return b
}

type rpcDigest struct {
	Logs []string `json:"logs"`
}

type rpcHeader struct {
	ParentHash     string     `json:"parentHash"`
	Number         string     `json:"number"`
	StateRoot      string     `json:"stateRoot"`
	ExtrinsicsRoot string     `json:"extrinsicsRoot"`
	Digest         *rpcDigest `json:"digest"`
}

type rpcNotification struct {
	Method string `json:"method"`
	Params struct {
		Subscription json.RawMessage `json:"subscription"`
		Result       json.RawMessage `json:"result"`
	} `json:"params"`
}

// ParseJSON parses a header in JSON-RPC form with the default lenient codec.
func ParseJSON(raw []byte) (Header, error) {
	return defaultCodec.ParseJSON(raw)
}

// ParseNotification parses a chain_subscribeNewHeads notification and returns
// the subscription id with the header it carries.
func ParseNotification(raw []byte) (string, Header, error) {
	return defaultCodec.ParseNotification(raw)
}

// ParseJSON parses a header in the JSON form used by JSON-RPC:
//
//	{
//	  "parentHash": "0x..", "number": "0x1b4",
//	  "stateRoot": "0x..", "extrinsicsRoot": "0x..",
//	  "digest": {"logs": ["0x0642414245..", ...]}
//	}
//
// Empty logs are skipped. Under LayoutSubstrate each log is decoded as a SCALE
// DigestItem, and a log that does not decode is kept as Other(raw) when the
// codec is lenient. Under LayoutExample logs are classified by their first
// byte: 0x06 becomes a BABE NextEpochData, 0x05 an Aura PreDigest of the
// remaining bytes, 0x04 a GRANDPA ScheduledChange, and anything else Other.
func (c *Codec) ParseJSON(raw []byte) (Header, error) {
	var rh rpcHeader
	if err := json.Unmarshal(raw, &rh); err != nil {
		return Header{}, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}

	var (
		h   Header
		err error
	)
	if h.ParentHash, err = parseHash("parentHash", rh.ParentHash); err != nil {
		return Header{}, err
	}
	if h.Number, err = parseNumber(rh.Number); err != nil {
		return Header{}, err
	}
	if h.StateRoot, err = parseHash("stateRoot", rh.StateRoot); err != nil {
		return Header{}, err
	}
	if h.ExtrinsicsRoot, err = parseHash("extrinsicsRoot", rh.ExtrinsicsRoot); err != nil {
		return Header{}, err
	}
	if rh.Digest == nil {
		return Header{}, fmt.Errorf("%w: missing digest", ErrInvalidJSON)
	}

	for i, s := range rh.Digest.Logs {
		log, err := decodeHex(s)
		if err != nil {
			return Header{}, fmt.Errorf("%w: digest log %d: %w", ErrInvalidJSON, i, err)
		}
		if len(log) == 0 {
			continue
		}
		if c.cfg.layout == LayoutExample {
			h.Digest.Logs = append(h.Digest.Logs, classifyLog(log))
			continue
		}

		item, err := c.DecodeDigestItem(log)
		if err != nil {
			if !c.cfg.lenientLogs {
				return Header{}, fmt.Errorf("digest log %d: %w", i, err)
			}
			item = Other(log)
		}
		h.Digest.Logs = append(h.Digest.Logs, item)
	}

	return h, nil
}

// ParseNotification parses a chain_subscribeNewHeads notification.
func (c *Codec) ParseNotification(raw []byte) (string, Header, error) {
	var n rpcNotification
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", Header{}, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	if len(n.Params.Result) == 0 {
		return "", Header{}, fmt.Errorf("%w: notification without params.result", ErrInvalidJSON)
	}

	h, err := c.ParseJSON(n.Params.Result)
	if err != nil {
		return "", Header{}, err
	}

	// Nodes send the subscription id as either a string or a number.
	sub := strings.Trim(string(n.Params.Subscription), `"`)

	return sub, h, nil
}

// MarshalJSON renders h in JSON-RPC form with LayoutSubstrate digest logs.
func (h Header) MarshalJSON() ([]byte, error) {
	return defaultCodec.FormatJSON(h)
}

// FormatJSON renders h in JSON-RPC form. Digest logs are written as the hex
// of their SCALE encoding under the codec's layout, so a LayoutSubstrate
// ParseJSON reverses it.
func (c *Codec) FormatJSON(h Header) ([]byte, error) {
	logs := make([]string, len(h.Digest.Logs))
	for i, item := range h.Digest.Logs {
		logs[i] = "0x" + hex.EncodeToString(c.EncodeDigestItem(item))
	}

	return json.Marshal(rpcHeader{
		ParentHash:     h.ParentHash.String(),
		Number:         "0x" + strconv.FormatUint(uint64(h.Number), 16),
		StateRoot:      h.StateRoot.String(),
		ExtrinsicsRoot: h.ExtrinsicsRoot.String(),
		Digest:         &rpcDigest{Logs: logs},
	})
}

func decodeHex(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(s, "0x"))
}

func parseHash(field, s string) (Hash, error) {
	if s == "" {
		return Hash{}, fmt.Errorf("%w: missing %s", ErrInvalidJSON, field)
	}

	b, err := decodeHex(s)
	if err != nil {
		return Hash{}, fmt.Errorf("%w: %s: %w", ErrInvalidJSON, field, err)
	}
	if len(b) != HashSize {
		return Hash{}, fmt.Errorf("%w: %s has %d bytes, want %d", ErrInvalidJSON, field, len(b), HashSize)
	}

	return Hash(b), nil
}

func parseNumber(s string) (uint32, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: missing number", ErrInvalidJSON)
	}

	n, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: number: %w", ErrInvalidJSON, err)
	}

	return uint32(n), nil
}
