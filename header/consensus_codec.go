package header

import (
	"fmt"

	"github.com/arloliu/scale/codec"
)

// newExampleDigestItemCodec maps DigestItem onto the LayoutExample enum
//
//	0 Other(Vec<u8>)
//	1 Consensus(ConsensusLog)
//	2 Seal(Vec<u8>)
//	3 PreRuntime(Vec<u8>)
//	4 RuntimeEnvironmentUpdated
//
// Seal and PreRuntime carry no engine tag in this layout.
func newExampleDigestItemCodec(payload codec.Codec[[]byte], authorities codec.Codec[[]Authority]) (codec.Codec[DigestItem], error) {
	enum, err := codec.NewEnum(
		codec.NewVariant(0, "Other", payload),
		codec.NewVariant(1, "Consensus", newConsensusLogCodec(payload, authorities)),
		codec.NewVariant(2, "Seal", payload),
		codec.NewVariant(3, "PreRuntime", payload),
		codec.UnitVariant(4, "RuntimeEnvironmentUpdated"),
	)
	if err != nil {
		return nil, err
	}

	return codec.Map(enum, exampleItemToEnum, exampleItemFromEnum), nil
}

var exampleIndex = map[DigestItemKind]byte{
	KindOther:                     0,
	KindConsensus:                 1,
	KindSeal:                      2,
	KindPreRuntime:                3,
	KindRuntimeEnvironmentUpdated: 4,
}

var exampleKind = [...]DigestItemKind{KindOther, KindConsensus, KindSeal, KindPreRuntime, KindRuntimeEnvironmentUpdated}

func exampleItemToEnum(d DigestItem) codec.EnumValue {
	index, ok := exampleIndex[d.Kind]
	if !ok {
		panic(fmt.Sprintf("header: digest kind %s has no example layout discriminant", d.Kind))
	}

	switch d.Kind {
	case KindRuntimeEnvironmentUpdated:
		return codec.EnumValue{Index: index}
	case KindConsensus:
		if d.Log == nil {
			panic("header: example layout Consensus item without ConsensusLog")
		}
		return codec.EnumValue{Index: index, Payload: *d.Log}
	default:
		return codec.EnumValue{Index: index, Payload: d.Data}
	}
}

func exampleItemFromEnum(v codec.EnumValue) (DigestItem, error) {
	kind := exampleKind[v.Index]
	switch p := v.Payload.(type) {
	case nil:
		return DigestItem{Kind: kind}, nil
	case []byte:
		return DigestItem{Kind: kind, Data: p}, nil
	case ConsensusLog:
		return ConsensusItem(p), nil
	default:
		return DigestItem{}, fmt.Errorf("unexpected digest payload %T", p)
	}
}

// newAuthorityCodec encodes an Authority as the tuple (Vec<u8>, u64).
func newAuthorityCodec(payload codec.Codec[[]byte]) codec.Codec[Authority] {
	return codec.Map(codec.Pair(payload, codec.U64),
		func(a Authority) codec.Tuple2[[]byte, uint64] {
			return codec.Tuple2[[]byte, uint64]{First: a.ID, Second: a.Weight}
		},
		func(t codec.Tuple2[[]byte, uint64]) (Authority, error) {
			return Authority{ID: t.First, Weight: t.Second}, nil
		})
}

// newConsensusLogCodec builds the nested enum family
//
//	ConsensusLog = Grandpa(GrandpaLog) | Babe(BabeLog) | Aura(AuraLog)
func newConsensusLogCodec(payload codec.Codec[[]byte], authorities codec.Codec[[]Authority]) codec.Codec[ConsensusLog] {
	enum := codec.Ordered(
		codec.Any(newGrandpaLogCodec(authorities)),
		codec.Any(newBabeLogCodec(authorities)),
		codec.Any(newAuraLogCodec(payload)),
	)

	return codec.Map(enum,
		func(l ConsensusLog) codec.EnumValue {
			switch l.Engine {
			case ConsensusGrandpa:
				return codec.EnumValue{Index: byte(l.Engine), Payload: l.Grandpa}
			case ConsensusBabe:
				return codec.EnumValue{Index: byte(l.Engine), Payload: l.Babe}
			case ConsensusAura:
				return codec.EnumValue{Index: byte(l.Engine), Payload: l.Aura}
			default:
				return codec.EnumValue{Index: byte(l.Engine)}
			}
		},
		func(v codec.EnumValue) (ConsensusLog, error) {
			switch p := v.Payload.(type) {
			case GrandpaLog:
				return ConsensusLog{Engine: ConsensusGrandpa, Grandpa: p}, nil
			case BabeLog:
				return ConsensusLog{Engine: ConsensusBabe, Babe: p}, nil
			case AuraLog:
				return ConsensusLog{Engine: ConsensusAura, Aura: p}, nil
			default:
				return ConsensusLog{}, fmt.Errorf("unexpected consensus payload %T", p)
			}
		})
}

func newGrandpaLogCodec(authorities codec.Codec[[]Authority]) codec.Codec[GrandpaLog] {
	scheduled := codec.Map(codec.Pair(authorities, codec.U32),
		func(s ScheduledChange) codec.Tuple2[[]Authority, uint32] {
			return codec.Tuple2[[]Authority, uint32]{First: s.NextAuthorities, Second: s.Delay}
		},
		func(t codec.Tuple2[[]Authority, uint32]) (ScheduledChange, error) {
			return ScheduledChange{NextAuthorities: t.First, Delay: t.Second}, nil
		})

	forced := codec.Map(codec.Pair(codec.U32, codec.U32),
		func(f ForcedChange) codec.Tuple2[uint32, uint32] {
			return codec.Tuple2[uint32, uint32]{First: f.Delay, Second: f.BestFinalizedBlock}
		},
		func(t codec.Tuple2[uint32, uint32]) (ForcedChange, error) {
			return ForcedChange{Delay: t.First, BestFinalizedBlock: t.Second}, nil
		})

	enum := codec.Ordered(
		codec.Any(scheduled),
		codec.Any(forced),
		codec.Any(codec.U64),
		codec.Any(codec.U32),
		codec.Any(codec.U32),
	)

	return codec.Map(enum,
		func(g GrandpaLog) codec.EnumValue {
			v := codec.EnumValue{Index: byte(g.Kind)}
			switch g.Kind {
			case GrandpaScheduledChange:
				v.Payload = g.ScheduledChange
			case GrandpaForcedChange:
				v.Payload = g.ForcedChange
			case GrandpaOnDisabled:
				v.Payload = g.AuthorityIndex
			default:
				v.Payload = g.Delay
			}

			return v
		},
		func(v codec.EnumValue) (GrandpaLog, error) {
			g := GrandpaLog{Kind: GrandpaLogKind(v.Index)}
			switch p := v.Payload.(type) {
			case ScheduledChange:
				g.ScheduledChange = p
			case ForcedChange:
				g.ForcedChange = p
			case uint64:
				g.AuthorityIndex = p
			case uint32:
				g.Delay = p
			default:
				return GrandpaLog{}, fmt.Errorf("unexpected grandpa payload %T", p)
			}

			return g, nil
		})
}

func newBabeLogCodec(authorities codec.Codec[[]Authority]) codec.Codec[BabeLog] {
	epoch := codec.Map(codec.Pair[[]Authority, []uint8](authorities, codec.Array(codec.U8, 32)),
		func(e NextEpoch) codec.Tuple2[[]Authority, []uint8] {
			return codec.Tuple2[[]Authority, []uint8]{First: e.Authorities, Second: e.Randomness[:]}
		},
		func(t codec.Tuple2[[]Authority, []uint8]) (NextEpoch, error) {
			return NextEpoch{Authorities: t.First, Randomness: [32]byte(t.Second)}, nil
		})

	slots := codec.Map(codec.Ordered(nil, nil, nil),
		func(s AllowedSlots) codec.EnumValue { return codec.EnumValue{Index: byte(s)} },
		func(v codec.EnumValue) (AllowedSlots, error) { return AllowedSlots(v.Index), nil })

	nextConfig := codec.Map(codec.Pair(codec.Pair(codec.U64, codec.U64), slots),
		func(c NextConfig) codec.Tuple2[codec.Tuple2[uint64, uint64], AllowedSlots] {
			return codec.Tuple2[codec.Tuple2[uint64, uint64], AllowedSlots]{
				First:  codec.Tuple2[uint64, uint64]{First: c.C[0], Second: c.C[1]},
				Second: c.AllowedSlots,
			}
		},
		func(t codec.Tuple2[codec.Tuple2[uint64, uint64], AllowedSlots]) (NextConfig, error) {
			return NextConfig{C: [2]uint64{t.First.First, t.First.Second}, AllowedSlots: t.Second}, nil
		})

	enum := codec.Ordered(
		codec.Any(epoch),
		codec.Any(nextConfig),
		codec.Any(codec.U32),
	)

	return codec.Map(enum,
		func(b BabeLog) codec.EnumValue {
			v := codec.EnumValue{Index: byte(b.Kind)}
			switch b.Kind {
			case BabeNextEpochData:
				v.Payload = b.NextEpoch
			case BabeNextConfigData:
				v.Payload = b.NextConfig
			default:
				v.Payload = b.AuthorityIndex
			}

			return v
		},
		func(v codec.EnumValue) (BabeLog, error) {
			b := BabeLog{Kind: BabeLogKind(v.Index)}
			switch p := v.Payload.(type) {
			case NextEpoch:
				b.NextEpoch = p
			case NextConfig:
				b.NextConfig = p
			case uint32:
				b.AuthorityIndex = p
			default:
				return BabeLog{}, fmt.Errorf("unexpected babe payload %T", p)
			}

			return b, nil
		})
}

func newAuraLogCodec(payload codec.Codec[[]byte]) codec.Codec[AuraLog] {
	return codec.Map(codec.Ordered(codec.Any(payload)),
		func(a AuraLog) codec.EnumValue { return codec.EnumValue{Payload: a.PreDigest} },
		func(v codec.EnumValue) (AuraLog, error) {
			p, ok := v.Payload.([]byte)
			if !ok {
				return AuraLog{}, fmt.Errorf("unexpected aura payload %T", v.Payload)
			}

			return AuraLog{PreDigest: p}, nil
		})
}
