package header

import (
	"fmt"
	"math"

	"github.com/arloliu/scale/codec"
	"github.com/arloliu/scale/compact"
	"github.com/arloliu/scale/errs"
	"github.com/arloliu/scale/internal/hash"
	"github.com/arloliu/scale/internal/options"
)

type config struct {
	layout      Layout
	strict      bool
	maxLogs     int
	maxLogSize  int
	lenientLogs bool
}

// Option configures a Codec.
type Option = options.Option[*config]

// WithLayout selects the wire layout. The default is LayoutSubstrate.
func WithLayout(layout Layout) Option {
	return options.New(func(c *config) error {
		if !layout.Valid() {
			return fmt.Errorf("unknown header layout %s", layout)
		}
		c.layout = layout

		return nil
	})
}

// WithStrict rejects non-minimal compact integers in the block number and in
// every length prefix.
func WithStrict(strict bool) Option {
	return options.NoError(func(c *config) {
		c.strict = strict
	})
}

// WithMaxLogs caps the number of digest logs accepted when decoding. Zero means unlimited.
func WithMaxLogs(n int) Option {
	return options.New(func(c *config) error {
		if n < 0 {
			return fmt.Errorf("max logs must not be negative, got %d", n)
		}
		c.maxLogs = n

		return nil
	})
}

// WithMaxLogSize caps the byte length of a single digest payload, and in
// LayoutExample the length of consensus authority lists. Zero means unlimited.
func WithMaxLogSize(n int) Option {
	return options.New(func(c *config) error {
		if n < 0 {
			return fmt.Errorf("max log size must not be negative, got %d", n)
		}
		c.maxLogSize = n

		return nil
	})
}

// WithLenientLogs controls how ParseJSON handles a log that is not a valid
// SCALE DigestItem. When enabled, the default, the raw bytes are kept as an
// Other item; otherwise parsing fails. LayoutExample classifies logs by their
// first byte instead of decoding them, so the setting has no effect there.
func WithLenientLogs(lenient bool) Option {
	return options.NoError(func(c *config) {
		c.lenientLogs = lenient
	})
}

// Codec encodes and decodes headers under a configurable decode policy.
//
// A Codec is immutable and safe for concurrent use.
type Codec struct {
	cfg    config
	root   codec.FixedBytesCodec
	number codec.Codec[uint32]
	item   codec.Codec[DigestItem]
	logs   *codec.VectorCodec[DigestItem]
}

var _ codec.Codec[Header] = (*Codec)(nil)

var defaultCodec = mustCodec()

func mustCodec(opts ...Option) *Codec {
	c, err := NewCodec(opts...)
	if err != nil {
		panic(err)
	}

	return c
}

// NewCodec builds a header codec.
func NewCodec(opts ...Option) (*Codec, error) {
	cfg := config{lenientLogs: true}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	dec := compact.PolicyDecoder(cfg.strict)

	payload, err := codec.NewBytes(codec.WithCompactDecoder(dec), codec.WithMaxLength(cfg.maxLogSize))
	if err != nil {
		return nil, err
	}

	var (
		item   codec.Codec[DigestItem]
		number codec.Codec[uint32]
	)
	switch cfg.layout {
	case LayoutExample:
		authorities, err := codec.NewVector(newAuthorityCodec(payload),
			codec.WithCompactDecoder(dec), codec.WithMaxLength(cfg.maxLogSize))
		if err != nil {
			return nil, err
		}
		if item, err = newExampleDigestItemCodec(payload, authorities); err != nil {
			return nil, err
		}
		number = codec.U32
	default:
		if item, err = newDigestItemCodec(payload); err != nil {
			return nil, err
		}
		number = numberCodec(dec)
	}

	logs, err := codec.NewVector(item, codec.WithCompactDecoder(dec), codec.WithMaxLength(cfg.maxLogs))
	if err != nil {
		return nil, err
	}

	return &Codec{
		cfg:    cfg,
		root:   codec.FixedBytes(HashSize),
		number: number,
		item:   item,
		logs:   logs,
	}, nil
}

// numberCodec encodes block numbers as compact integers and rejects decoded
// values above math.MaxUint32.
func numberCodec(dec *compact.Decoder) codec.Codec[uint32] {
	return codec.Map(codec.NewCompact(dec),
		func(n uint32) uint64 { return uint64(n) },
		func(v uint64) (uint32, error) {
			if v > math.MaxUint32 {
				return 0, fmt.Errorf("%w: block number %d exceeds u32", errs.ErrOverflow, v)
			}

			return uint32(v), nil
		})
}

// engineCodec carries a consensus engine tag as four raw bytes.
var engineCodec = codec.Map(codec.FixedBytes(4),
	func(e EngineID) []byte { return e[:] },
	func(b []byte) (EngineID, error) { return EngineID(b), nil })

// newDigestItemCodec maps DigestItem onto the enum
//
//	0 Other(Vec<u8>)
//	4 Consensus(EngineID, Vec<u8>)
//	5 Seal(EngineID, Vec<u8>)
//	6 PreRuntime(EngineID, Vec<u8>)
//	8 RuntimeEnvironmentUpdated
func newDigestItemCodec(payload codec.Codec[[]byte]) (codec.Codec[DigestItem], error) {
	engineData := codec.Pair(engineCodec, payload)

	enum, err := codec.NewEnum(
		codec.NewVariant(byte(KindOther), "Other", payload),
		codec.NewVariant(byte(KindConsensus), "Consensus", engineData),
		codec.NewVariant(byte(KindSeal), "Seal", engineData),
		codec.NewVariant(byte(KindPreRuntime), "PreRuntime", engineData),
		codec.UnitVariant(byte(KindRuntimeEnvironmentUpdated), "RuntimeEnvironmentUpdated"),
	)
	if err != nil {
		return nil, err
	}

	return codec.Map(enum, digestItemToEnum, digestItemFromEnum), nil
}

func digestItemToEnum(d DigestItem) codec.EnumValue {
	switch {
	case d.Kind == KindRuntimeEnvironmentUpdated:
		return codec.EnumValue{Index: byte(d.Kind)}
	case d.Kind.HasEngine():
		return codec.EnumValue{
			Index:   byte(d.Kind),
			Payload: codec.Tuple2[EngineID, []byte]{First: d.Engine, Second: d.Data},
		}
	default:
		// Unknown kinds reach the enum and panic there.
		return codec.EnumValue{Index: byte(d.Kind), Payload: d.Data}
	}
}

func digestItemFromEnum(v codec.EnumValue) (DigestItem, error) {
	kind := DigestItemKind(v.Index)
	switch p := v.Payload.(type) {
	case nil:
		return DigestItem{Kind: kind}, nil
	case []byte:
		return DigestItem{Kind: kind, Data: p}, nil
	case codec.Tuple2[EngineID, []byte]:
		return DigestItem{Kind: kind, Engine: p.First, Data: p.Second}, nil
	default:
		return DigestItem{}, fmt.Errorf("unexpected digest payload %T", p)
	}
}

// Strict reports whether the codec rejects non-minimal compact integers.
func (c *Codec) Strict() bool {
	return c.cfg.strict
}

// Layout reports the wire layout of the codec.
func (c *Codec) Layout() Layout {
	return c.cfg.layout
}

// Hash returns the Blake2b-256 digest of the encoding of h.
func (c *Codec) Hash(h Header) Hash {
	return Hash(hash.Blake2b256(c.Encode(h)))
}

// Encode returns the SCALE encoding of h.
func (c *Codec) Encode(h Header) []byte {
	return codec.Encode[Header](c, h)
}

// DecodeAll decodes a header that must span all of b.
func (c *Codec) DecodeAll(b []byte) (Header, error) {
	return codec.DecodeAll[Header](c, b)
}

// Append appends the SCALE encoding of h to dst.
func (c *Codec) Append(dst []byte, h Header) []byte {
	dst = append(dst, h.ParentHash[:]...)
	dst = c.number.Append(dst, h.Number)
	dst = append(dst, h.StateRoot[:]...)
	dst = append(dst, h.ExtrinsicsRoot[:]...)

	return c.logs.Append(dst, h.Digest.Logs)
}

// Decode decodes a header from the start of b and reports the bytes consumed.
func (c *Codec) Decode(b []byte) (Header, int, error) {
	var (
		h   Header
		off int
	)

	read := func(op string, dst *Hash) error {
		raw, n, err := c.root.Decode(b[off:])
		if err != nil {
			return errs.At(op, off, err)
		}
		*dst = Hash(raw)
		off += n

		return nil
	}

	if err := read("header parent hash", &h.ParentHash); err != nil {
		return Header{}, 0, err
	}

	number, n, err := c.number.Decode(b[off:])
	if err != nil {
		return Header{}, 0, errs.At("header number", off, err)
	}
	h.Number = number
	off += n

	if err := read("header state root", &h.StateRoot); err != nil {
		return Header{}, 0, err
	}
	if err := read("header extrinsics root", &h.ExtrinsicsRoot); err != nil {
		return Header{}, 0, err
	}

	logs, n, err := c.logs.Decode(b[off:])
	if err != nil {
		return Header{}, 0, errs.At("header digest", off, err)
	}
	h.Digest.Logs = logs
	off += n

	return h, off, nil
}

// DecodeDigestItem decodes a single digest log that must span all of b.
func (c *Codec) DecodeDigestItem(b []byte) (DigestItem, error) {
	return codec.DecodeAll(c.item, b)
}

// EncodeDigestItem returns the SCALE encoding of d.
func (c *Codec) EncodeDigestItem(d DigestItem) []byte {
	return codec.Encode(c.item, d)
}
