package header

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/scale/errs"
)

func exampleCodec(t *testing.T, opts ...Option) *Codec {
	t.Helper()
	c, err := NewCodec(append([]Option{WithLayout(LayoutExample)}, opts...)...)
	require.NoError(t, err)
	require.Equal(t, LayoutExample, c.Layout())

	return c
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)

	return b
}

func TestExampleLayout_DemoHeader(t *testing.T) {
	c := exampleCodec(t)

	h, err := c.ParseJSON([]byte(demoHeader))
	require.NoError(t, err)
	require.Len(t, h.Digest.Logs, 2)
	require.Equal(t, ConsensusItem(ConsensusLog{Engine: ConsensusBabe, Babe: BabeLog{Kind: BabeNextEpochData}}), h.Digest.Logs[0])
	require.Equal(t, ConsensusItem(ConsensusLog{
		Engine: ConsensusAura,
		Aura:   AuraLog{PreDigest: []byte{0x42, 0x41, 0x42, 0x45, 0x01, 0x01}},
	}), h.Digest.Logs[1])

	encoded := c.Encode(h)
	require.Len(t, encoded, 147)
	require.Equal(t, []byte{0x67, 0x45, 0x23, 0x01}, encoded[32:36], "number is a fixed u32")
	require.Equal(t, mustHex(t,
		"08"+
			"010100"+"00"+"0000000000000000000000000000000000000000000000000000000000000000"+
			"010200"+"18"+"424142450101"),
		encoded[100:])

	require.Equal(t, "0x7c58d300bb3d5a17f1838e4d891fea7b0ab7ba5d3ddf4a499bb95b3190515c2f", c.Hash(h).String())
	require.NotEqual(t, c.Hash(h), h.Hash(), "layouts hash differently")
}

func TestExampleLayout_ClassifyLog(t *testing.T) {
	tests := []struct {
		name string
		log  []byte
		want string
	}{
		{"babe", []byte{0x06, 0x42}, "Consensus(Babe.NextEpochData)"},
		{"aura", []byte{0x05, 0xaa}, "Consensus(Aura.PreDigest(0xaa))"},
		{"grandpa", []byte{0x04}, "Consensus(Grandpa.ScheduledChange)"},
		{"other", []byte{0x09, 0x01}, "Other(0x0901)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, classifyLog(tt.log).String())
		})
	}
}

func exampleHeader() Header {
	var randomness [32]byte
	for i := range randomness {
		randomness[i] = byte(i)
	}
	authorities := []Authority{{ID: []byte{0xaa, 0xbb}, Weight: 1}, {ID: []byte{0xcc}, Weight: 2}}

	return Header{
		ParentHash:     filled(0x11),
		Number:         7,
		StateRoot:      filled(0x22),
		ExtrinsicsRoot: filled(0x33),
		Digest: Digest{Logs: []DigestItem{
			{Kind: KindPreRuntime, Data: []byte{0x01, 0x02}},
			ConsensusItem(ConsensusLog{Engine: ConsensusGrandpa, Grandpa: GrandpaLog{
				Kind:            GrandpaScheduledChange,
				ScheduledChange: ScheduledChange{NextAuthorities: authorities, Delay: 10},
			}}),
			ConsensusItem(ConsensusLog{Engine: ConsensusGrandpa, Grandpa: GrandpaLog{
				Kind:         GrandpaForcedChange,
				ForcedChange: ForcedChange{Delay: 3, BestFinalizedBlock: 99},
			}}),
			ConsensusItem(ConsensusLog{Engine: ConsensusGrandpa, Grandpa: GrandpaLog{Kind: GrandpaOnDisabled, AuthorityIndex: 5}}),
			ConsensusItem(ConsensusLog{Engine: ConsensusGrandpa, Grandpa: GrandpaLog{Kind: GrandpaPause, Delay: 8}}),
			ConsensusItem(ConsensusLog{Engine: ConsensusGrandpa, Grandpa: GrandpaLog{Kind: GrandpaResume, Delay: 9}}),
			ConsensusItem(ConsensusLog{Engine: ConsensusBabe, Babe: BabeLog{
				Kind:      BabeNextEpochData,
				NextEpoch: NextEpoch{Authorities: authorities, Randomness: randomness},
			}}),
			ConsensusItem(ConsensusLog{Engine: ConsensusBabe, Babe: BabeLog{
				Kind:       BabeNextConfigData,
				NextConfig: NextConfig{C: [2]uint64{1, 4}, AllowedSlots: PrimaryAndSecondaryVRFSlots},
			}}),
			ConsensusItem(ConsensusLog{Engine: ConsensusBabe, Babe: BabeLog{Kind: BabeOnDisabled, AuthorityIndex: 2}}),
			ConsensusItem(ConsensusLog{Engine: ConsensusAura, Aura: AuraLog{PreDigest: []byte{0xde, 0xad}}}),
			{Kind: KindSeal, Data: []byte{0xff}},
			Other([]byte{0x00}),
			RuntimeEnvironmentUpdated(),
		}},
	}
}

func TestExampleLayout_RoundTrip(t *testing.T) {
	c := exampleCodec(t)
	h := exampleHeader()

	encoded := c.Encode(h)
	decoded, err := c.DecodeAll(encoded)
	require.NoError(t, err)
	require.Equal(t, h, decoded)
	require.Equal(t, encoded, c.Encode(decoded))
}

func TestExampleLayout_KnownVectors(t *testing.T) {
	c := exampleCodec(t)

	tests := []struct {
		name string
		item DigestItem
		want string
	}{
		{
			"grandpa scheduled change",
			ConsensusItem(ConsensusLog{Engine: ConsensusGrandpa, Grandpa: GrandpaLog{
				Kind:            GrandpaScheduledChange,
				ScheduledChange: ScheduledChange{NextAuthorities: []Authority{{ID: []byte{0xaa}, Weight: 7}}, Delay: 3},
			}}),
			"010000" + "04" + "04aa" + "0700000000000000" + "03000000",
		},
		{
			"babe next config",
			ConsensusItem(ConsensusLog{Engine: ConsensusBabe, Babe: BabeLog{
				Kind:       BabeNextConfigData,
				NextConfig: NextConfig{C: [2]uint64{1, 4}, AllowedSlots: PrimaryAndSecondaryVRFSlots},
			}}),
			"010101" + "0100000000000000" + "0400000000000000" + "02",
		},
		{"seal", DigestItem{Kind: KindSeal, Data: []byte{0xff}}, "0204ff"},
		{"pre-runtime", DigestItem{Kind: KindPreRuntime, Data: []byte{0x01}}, "030401"},
		{"runtime updated", RuntimeEnvironmentUpdated(), "04"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := mustHex(t, tt.want)
			require.Equal(t, want, c.EncodeDigestItem(tt.item))

			decoded, err := c.DecodeDigestItem(want)
			require.NoError(t, err)
			require.Equal(t, tt.item, decoded)
		})
	}
}

func TestExampleLayout_DecodeErrors(t *testing.T) {
	c := exampleCodec(t)

	tests := []struct {
		name   string
		input  string
		err    error
		offset int
		op     string
	}{
		{"unknown item", "05", errs.ErrInvalidVariant, 0, "enum discriminant"},
		{"unknown engine", "0103", errs.ErrInvalidVariant, 1, "enum Consensus: enum discriminant"},
		{"unknown grandpa log", "010005", errs.ErrInvalidVariant, 2, "enum Consensus: enum variant 0"},
		{"short randomness", "01010000" + "00112233", errs.ErrUnexpectedEOF, 8, "pair second"},
		{"unknown allowed slots", "010101" + "0100000000000000" + "0400000000000000" + "03", errs.ErrInvalidVariant, 19, "pair second"},
		{"truncated authority weight", "01000004" + "04aa" + "0700", errs.ErrUnexpectedEOF, 8, "vector element 0: pair second: u64"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.DecodeDigestItem(mustHex(t, tt.input))
			require.ErrorIs(t, err, tt.err)
			require.Equal(t, tt.offset, errs.Offset(err))
			require.ErrorContains(t, err, tt.op)
		})
	}
}

func TestExampleLayout_Limits(t *testing.T) {
	c := exampleCodec(t, WithMaxLogSize(1))

	// Two authorities exceed the cap on consensus authority lists.
	item := ConsensusItem(ConsensusLog{Engine: ConsensusGrandpa, Grandpa: GrandpaLog{
		Kind: GrandpaScheduledChange,
		ScheduledChange: ScheduledChange{NextAuthorities: []Authority{
			{ID: []byte{0x01}, Weight: 1},
			{ID: []byte{0x02}, Weight: 1},
		}},
	}})

	_, err := c.DecodeDigestItem(exampleCodec(t).EncodeDigestItem(item))
	require.ErrorIs(t, err, errs.ErrLengthLimit)
}

func TestExampleLayout_EncodePanics(t *testing.T) {
	c := exampleCodec(t)

	require.Panics(t, func() {
		c.EncodeDigestItem(DigestItem{Kind: KindConsensus, Engine: EngineBABE, Data: []byte{0x01}})
	}, "Consensus needs a ConsensusLog")
	require.Panics(t, func() {
		c.EncodeDigestItem(DigestItem{Kind: 3})
	})
}

func TestExampleLayout_FormatJSON(t *testing.T) {
	c := exampleCodec(t)

	h, err := c.ParseJSON([]byte(demoHeader))
	require.NoError(t, err)

	out, err := c.FormatJSON(h)
	require.NoError(t, err)

	var rh rpcHeader
	require.NoError(t, json.Unmarshal(out, &rh))
	require.Equal(t, "0x1234567", rh.Number)
	require.Equal(t, []string{
		"0x010100000000000000000000000000000000000000000000000000000000000000000000",
		"0x01020018424142450101",
	}, rh.Digest.Logs)
}

func TestLayout(t *testing.T) {
	require.Equal(t, "substrate", LayoutSubstrate.String())
	require.Equal(t, "example", LayoutExample.String())
	require.Equal(t, "Layout(9)", Layout(9).String())

	for _, name := range []string{"substrate", "Example", " example "} {
		l, ok := ParseLayout(name)
		require.True(t, ok, name)
		require.True(t, l.Valid())
	}
	_, ok := ParseLayout("polkadot")
	require.False(t, ok)

	_, err := NewCodec(WithLayout(Layout(9)))
	require.Error(t, err)

	c, err := NewCodec()
	require.NoError(t, err)
	require.Equal(t, LayoutSubstrate, c.Layout())
}
