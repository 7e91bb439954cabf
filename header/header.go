// Package header models a Substrate-style block header and its SCALE encoding.
//
// The wire layout is
//
//	parent_hash      [32]byte
//	number           compact (LayoutSubstrate) or u32 (LayoutExample)
//	state_root       [32]byte
//	extrinsics_root  [32]byte
//	digest           Vec<DigestItem>
//
// where DigestItem is a tagged union. LayoutSubstrate, the default, uses the
// sparse engine-tagged discriminants of Substrate nodes. LayoutExample numbers
// the items 0 to 4 and decodes Consensus payloads into the nested ConsensusLog
// enums. The block hash is the Blake2b-256 digest of the encoding.
//
// The package also reads the JSON form pushed by a node's
// chain_subscribeNewHeads subscription, so a header received over JSON-RPC can
// be re-encoded and hashed.
package header

import (
	"encoding/hex"
	"fmt"
)

// HashSize is the length of block hashes and trie roots.
const HashSize = 32

// Hash is a 32-byte Blake2b-256 digest.
type Hash [HashSize]byte

// String returns the 0x-prefixed hex form used by JSON-RPC.
func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

// EngineID names the consensus engine a digest item belongs to.
type EngineID [4]byte

var (
	EngineBABE    = EngineID{'B', 'A', 'B', 'E'}
	EngineGRANDPA = EngineID{'F', 'R', 'N', 'K'}
	EngineAura    = EngineID{'a', 'u', 'r', 'a'}
)

// String returns the engine tag as text when it is printable ASCII, and as
// 0x-prefixed hex otherwise.
func (e EngineID) String() string {
	for _, c := range e {
		if c < 0x20 || c > 0x7e {
			return "0x" + hex.EncodeToString(e[:])
		}
	}

	return string(e[:])
}

// DigestItemKind is the kind of a DigestItem. Its values are the
// LayoutSubstrate discriminants.
type DigestItemKind byte

const (
	KindOther                     DigestItemKind = 0
	KindConsensus                 DigestItemKind = 4
	KindSeal                      DigestItemKind = 5
	KindPreRuntime                DigestItemKind = 6
	KindRuntimeEnvironmentUpdated DigestItemKind = 8
)

func (k DigestItemKind) String() string {
	switch k {
	case KindOther:
		return "Other"
	case KindConsensus:
		return "Consensus"
	case KindSeal:
		return "Seal"
	case KindPreRuntime:
		return "PreRuntime"
	case KindRuntimeEnvironmentUpdated:
		return "RuntimeEnvironmentUpdated"
	default:
		return fmt.Sprintf("DigestItemKind(%d)", byte(k))
	}
}

// HasEngine reports whether items of this kind carry an EngineID.
func (k DigestItemKind) HasEngine() bool {
	return k == KindConsensus || k == KindSeal || k == KindPreRuntime
}

// DigestItem is one header digest log.
//
// Engine is set for Consensus, Seal and PreRuntime items. Data is the opaque
// engine payload, or the raw bytes of an Other item. Log holds the typed
// payload of a LayoutExample Consensus item and is nil otherwise.
type DigestItem struct {
	Kind   DigestItemKind
	Engine EngineID
	Data   []byte
	Log    *ConsensusLog
}

func Other(data []byte) DigestItem {
	return DigestItem{Kind: KindOther, Data: data}
}

func Consensus(engine EngineID, data []byte) DigestItem {
	return DigestItem{Kind: KindConsensus, Engine: engine, Data: data}
}

func Seal(engine EngineID, data []byte) DigestItem {
	return DigestItem{Kind: KindSeal, Engine: engine, Data: data}
}

func PreRuntime(engine EngineID, data []byte) DigestItem {
	return DigestItem{Kind: KindPreRuntime, Engine: engine, Data: data}
}

func RuntimeEnvironmentUpdated() DigestItem {
	return DigestItem{Kind: KindRuntimeEnvironmentUpdated}
}

// String renders the item for logs and CLI output.
func (d DigestItem) String() string {
	switch {
	case d.Kind == KindRuntimeEnvironmentUpdated:
		return d.Kind.String()
	case d.Log != nil:
		return fmt.Sprintf("%s(%s)", d.Kind, d.Log)
	case d.Kind.HasEngine() && d.Engine != (EngineID{}):
		return fmt.Sprintf("%s(%s, 0x%x)", d.Kind, d.Engine, d.Data)
	default:
		return fmt.Sprintf("%s(0x%x)", d.Kind, d.Data)
	}
}

// Digest is the ordered list of header logs.
type Digest struct {
	Logs []DigestItem
}

// Header is a block header.
type Header struct {
	ParentHash     Hash
	Number         uint32
	StateRoot      Hash
	ExtrinsicsRoot Hash
	Digest         Digest
}

// Encode returns the LayoutSubstrate encoding of h.
func (h Header) Encode() []byte {
	return defaultCodec.Encode(h)
}

// Hash returns the Blake2b-256 digest of the LayoutSubstrate encoding of h.
func (h Header) Hash() Hash {
	return defaultCodec.Hash(h)
}

// DecodeHeader decodes a complete header with the default lenient codec.
func DecodeHeader(b []byte) (Header, error) {
	return defaultCodec.DecodeAll(b)
}
