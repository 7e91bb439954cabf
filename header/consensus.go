package header

import (
	"fmt"
	"strings"
)

// Layout selects the wire layout of a header.
type Layout uint8

const (
	// LayoutSubstrate carries the block number as a compact integer and
	// digest items with the engine-tagged discriminants 0, 4, 5, 6 and 8.
	LayoutSubstrate Layout = iota
	// LayoutExample carries the block number as a fixed little-endian u32 and
	// digest items with discriminants 0 to 4, where Consensus holds a typed
	// ConsensusLog instead of opaque bytes.
	LayoutExample
)

func (l Layout) String() string {
	switch l {
	case LayoutSubstrate:
		return "substrate"
	case LayoutExample:
		return "example"
	default:
		return fmt.Sprintf("Layout(%d)", uint8(l))
	}
}

// Valid reports whether l is a known layout.
func (l Layout) Valid() bool {
	return l == LayoutSubstrate || l == LayoutExample
}

// ParseLayout maps a layout name to a Layout. Matching is case-insensitive.
func ParseLayout(s string) (Layout, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "substrate":
		return LayoutSubstrate, true
	case "example":
		return LayoutExample, true
	default:
		return 0, false
	}
}

// Authority is a weighted authority entry, (Vec<u8>, u64) on the wire.
type Authority struct {
	ID     []byte
	Weight uint64
}

// ConsensusEngine is the discriminant of a ConsensusLog.
type ConsensusEngine byte

const (
	ConsensusGrandpa ConsensusEngine = 0
	ConsensusBabe    ConsensusEngine = 1
	ConsensusAura    ConsensusEngine = 2
)

func (e ConsensusEngine) String() string {
	switch e {
	case ConsensusGrandpa:
		return "Grandpa"
	case ConsensusBabe:
		return "Babe"
	case ConsensusAura:
		return "Aura"
	default:
		return fmt.Sprintf("ConsensusEngine(%d)", byte(e))
	}
}

// EngineID returns the four-byte engine tag of e.
func (e ConsensusEngine) EngineID() EngineID {
	switch e {
	case ConsensusGrandpa:
		return EngineGRANDPA
	case ConsensusBabe:
		return EngineBABE
	case ConsensusAura:
		return EngineAura
	default:
		return EngineID{}
	}
}

// ConsensusLog is the payload of a Consensus digest item in LayoutExample.
// Only the field selected by Engine is encoded.
type ConsensusLog struct {
	Engine  ConsensusEngine
	Grandpa GrandpaLog
	Babe    BabeLog
	Aura    AuraLog
}

func (l ConsensusLog) String() string {
	switch l.Engine {
	case ConsensusGrandpa:
		return "Grandpa." + l.Grandpa.Kind.String()
	case ConsensusBabe:
		return "Babe." + l.Babe.Kind.String()
	case ConsensusAura:
		return fmt.Sprintf("Aura.PreDigest(0x%x)", l.Aura.PreDigest)
	default:
		return l.Engine.String()
	}
}

// GrandpaLogKind is the discriminant of a GrandpaLog.
type GrandpaLogKind byte

const (
	GrandpaScheduledChange GrandpaLogKind = 0
	GrandpaForcedChange    GrandpaLogKind = 1
	GrandpaOnDisabled      GrandpaLogKind = 2
	GrandpaPause           GrandpaLogKind = 3
	GrandpaResume          GrandpaLogKind = 4
)

func (k GrandpaLogKind) String() string {
	switch k {
	case GrandpaScheduledChange:
		return "ScheduledChange"
	case GrandpaForcedChange:
		return "ForcedChange"
	case GrandpaOnDisabled:
		return "OnDisabled"
	case GrandpaPause:
		return "Pause"
	case GrandpaResume:
		return "Resume"
	default:
		return fmt.Sprintf("GrandpaLogKind(%d)", byte(k))
	}
}

// ScheduledChange announces the next authority set after Delay blocks.
type ScheduledChange struct {
	NextAuthorities []Authority
	Delay           uint32
}

// ForcedChange announces an authority set change that ignores finality.
type ForcedChange struct {
	Delay              uint32
	BestFinalizedBlock uint32
}

// GrandpaLog is a GRANDPA consensus log.
//
// ScheduledChange and ForcedChange are used by their kinds, AuthorityIndex by
// OnDisabled, and Delay by Pause and Resume.
type GrandpaLog struct {
	Kind            GrandpaLogKind
	ScheduledChange ScheduledChange
	ForcedChange    ForcedChange
	AuthorityIndex  uint64
	Delay           uint32
}

// BabeLogKind is the discriminant of a BabeLog.
type BabeLogKind byte

const (
	BabeNextEpochData  BabeLogKind = 0
	BabeNextConfigData BabeLogKind = 1
	BabeOnDisabled     BabeLogKind = 2
)

func (k BabeLogKind) String() string {
	switch k {
	case BabeNextEpochData:
		return "NextEpochData"
	case BabeNextConfigData:
		return "NextConfigData"
	case BabeOnDisabled:
		return "OnDisabled"
	default:
		return fmt.Sprintf("BabeLogKind(%d)", byte(k))
	}
}

// NextEpoch announces the authorities and randomness of the next BABE epoch.
type NextEpoch struct {
	Authorities []Authority
	Randomness  [32]byte
}

// AllowedSlots selects which BABE slot kinds may author blocks.
type AllowedSlots byte

const (
	PrimarySlots                  AllowedSlots = 0
	PrimaryAndSecondaryPlainSlots AllowedSlots = 1
	PrimaryAndSecondaryVRFSlots   AllowedSlots = 2
)

// NextConfig announces the BABE configuration of the next epoch. C is the
// slot probability as a (numerator, denominator) pair.
type NextConfig struct {
	C            [2]uint64
	AllowedSlots AllowedSlots
}

// BabeLog is a BABE consensus log.
type BabeLog struct {
	Kind           BabeLogKind
	NextEpoch      NextEpoch
	NextConfig     NextConfig
	AuthorityIndex uint32
}

// AuraLog is an Aura consensus log. PreDigest is its only variant.
type AuraLog struct {
	PreDigest []byte
}

// ConsensusItem returns a LayoutExample Consensus digest item carrying log.
func ConsensusItem(log ConsensusLog) DigestItem {
	return DigestItem{Kind: KindConsensus, Engine: log.Engine.EngineID(), Log: &log}
}

// classifyLog maps a raw JSON-RPC log to a LayoutExample digest item by its
// first byte: 0x06 starts a BABE epoch announcement, 0x05 an Aura pre-digest
// carrying the remaining bytes, and 0x04 a GRANDPA scheduled change. Anything
// else is kept as Other. Authority lists and randomness are not recovered.
func classifyLog(log []byte) DigestItem {
	switch log[0] {
	case 0x06:
		return ConsensusItem(ConsensusLog{Engine: ConsensusBabe, Babe: BabeLog{Kind: BabeNextEpochData}})
	case 0x05:
		return ConsensusItem(ConsensusLog{Engine: ConsensusAura, Aura: AuraLog{PreDigest: log[1:]}})
	case 0x04:
		return ConsensusItem(ConsensusLog{Engine: ConsensusGrandpa, Grandpa: GrandpaLog{Kind: GrandpaScheduledChange}})
	default:
		return Other(log)
	}
}
