package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(64)

	require.NotNil(t, bb.B)
	assert.Empty(t, bb.B)
	assert.Equal(t, 64, cap(bb.B))
}

func TestByteBuffer_Clone(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.B = append(bb.B, 0x0c, 0x01, 0x02, 0x03)

	clone := bb.Clone()
	require.Equal(t, []byte{0x0c, 0x01, 0x02, 0x03}, clone)

	clone[0] = 0xff
	assert.Equal(t, byte(0x0c), bb.B[0], "Clone must not share memory")
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.B = append(bb.B, []byte("payload")...)
	originalCap := cap(bb.B)

	bb.Reset()

	assert.Empty(t, bb.B)
	assert.Equal(t, originalCap, cap(bb.B))
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("no-op with enough capacity", func(t *testing.T) {
		bb := NewByteBuffer(16)
		bb.Grow(16)
		assert.Equal(t, 16, cap(bb.B))
	})

	t.Run("grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(4)
		bb.B = append(bb.B, 1, 2, 3, 4)
		bb.Grow(1)
		assert.Equal(t, 4+EncodeBufferDefaultSize, cap(bb.B))
		assert.Equal(t, []byte{1, 2, 3, 4}, bb.B)
	})

	t.Run("grows by at least the required bytes", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.Grow(EncodeBufferDefaultSize * 3)
		assert.GreaterOrEqual(t, cap(bb.B), EncodeBufferDefaultSize*3)
	})
}

func TestByteBufferPool_GetPut(t *testing.T) {
	p := NewByteBufferPool(32, 128)

	bb := p.Get()
	require.NotNil(t, bb)
	assert.Empty(t, bb.B)

	bb.B = append(bb.B, 0xaa)
	p.Put(bb)

	again := p.Get()
	assert.Empty(t, again.B, "pooled buffers come back empty")
}

func TestByteBufferPool_DropsOversized(t *testing.T) {
	p := NewByteBufferPool(8, 16)

	bb := p.Get()
	bb.Grow(1024)
	bb.B = append(bb.B, 0x01)
	p.Put(bb)

	// Put(nil) is ignored.
	p.Put(nil)

	fresh := p.Get()
	assert.LessOrEqual(t, cap(fresh.B), 16)
}

func TestDefaultPools_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			bb := GetEncodeBuffer()
			bb.B = append(bb.B, byte(i))
			assert.Len(t, bb.B, 1)
			PutEncodeBuffer(bb)

			fb := GetFrameBuffer()
			assert.Empty(t, fb.B)
			PutFrameBuffer(fb)
		}(i)
	}
	wg.Wait()
}
