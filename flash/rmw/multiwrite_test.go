package rmw

import (
	"context"
	"fmt"
	"testing"

	"github.com/joshuapare/flashkit/flash"
	"github.com/joshuapare/flashkit/flash/memflash"
	"github.com/joshuapare/flashkit/flash/trace"
	"github.com/joshuapare/flashkit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMultiwrite(t *testing.T, geo flash.Geometry, capacity int) (*MultiwriteStorage, *trace.MultiwriteDevice) {
	t.Helper()
	f, err := memflash.NewMultiwrite(geo, capacity)
	require.NoError(t, err)
	dev := trace.WrapMultiwrite(f)
	s, err := NewMultiwrite(dev, make([]byte, geo.EraseSize))
	require.NoError(t, err)
	return s, dev
}

func TestNewMultiwrite_MergeBufferTooSmall(t *testing.T) {
	geo := flash.Geometry{ReadSize: 1, WriteSize: 4, EraseSize: 16}
	f, err := memflash.NewMultiwrite(geo, 64)
	require.NoError(t, err)
	dev := trace.WrapMultiwrite(f)

	_, err = NewMultiwrite(dev, make([]byte, geo.EraseSize-1))
	require.ErrorIs(t, err, ErrMergeBufferTooSmall)
	assert.Zero(t, dev.Counts(), "construction failure must precede any device I/O")
}

func TestMultiwrite_SubsetSkipsErase(t *testing.T) {
	// Erased flash is all ones, so any first write is a bitwise subset and
	// must not trigger an erase.
	ctx := context.Background()
	geo := flash.Geometry{ReadSize: 1, WriteSize: 4, EraseSize: 16}
	s, dev := newMultiwrite(t, geo, 64)

	require.NoError(t, s.Write(ctx, 6, []byte{0xAA, 0x55, 0x0F}))

	c := dev.Counts()
	assert.Zero(t, c.Erases, "writing onto erased flash needs no erase")
	assert.Equal(t, 1, c.Writes, "one padded aligned write serves the chunk")

	got := make([]byte, 3)
	require.NoError(t, s.Read(ctx, 6, got))
	assert.Equal(t, []byte{0xAA, 0x55, 0x0F}, got)

	// Neighbors inside the padded write words stay erased: padding is all
	// ones, and AND with ones is a no-op.
	edge := make([]byte, 2)
	require.NoError(t, s.Read(ctx, 4, edge))
	assert.Equal(t, testutil.Erased(2), edge)
	require.NoError(t, s.Read(ctx, 9, edge))
	assert.Equal(t, testutil.Erased(2), edge)
}

func TestMultiwrite_ClearingBitsSkipsErase(t *testing.T) {
	// new & old == new holds when the write only clears bits already 0 or
	// leaves 1s alone.
	ctx := context.Background()
	geo := flash.Geometry{ReadSize: 1, WriteSize: 4, EraseSize: 16}
	s, dev := newMultiwrite(t, geo, 64)

	require.NoError(t, s.Write(ctx, 0, []byte{0xF0, 0xFF}))
	dev.Reset()

	require.NoError(t, s.Write(ctx, 0, []byte{0xB0, 0x3C}))

	assert.Zero(t, dev.Counts().Erases, "0xB0 subset of 0xF0, 0x3C subset of 0xFF")

	got := make([]byte, 2)
	require.NoError(t, s.Read(ctx, 0, got))
	assert.Equal(t, []byte{0xB0, 0x3C}, got)
}

func TestMultiwrite_NonSubsetFallsBackToErase(t *testing.T) {
	ctx := context.Background()
	geo := flash.Geometry{ReadSize: 1, WriteSize: 4, EraseSize: 16}
	s, dev := newMultiwrite(t, geo, 64)

	require.NoError(t, s.Write(ctx, 0, []byte{0x00, 0x00}))
	dev.Reset()

	// Setting bits back to 1 is impossible without an erase.
	require.NoError(t, s.Write(ctx, 0, []byte{0x01, 0x00}))

	c := dev.Counts()
	assert.Equal(t, 1, c.Erases, "non-subset write must erase the page first")
	assert.Equal(t, []trace.Range{{From: 0, To: 16}}, dev.EraseRanges())

	got := make([]byte, 2)
	require.NoError(t, s.Read(ctx, 0, got))
	assert.Equal(t, []byte{0x01, 0x00}, got)
}

func TestMultiwrite_MixedPages(t *testing.T) {
	// A multi-page write where one page is a subset and the other is not:
	// only the non-subset page is erased.
	ctx := context.Background()
	geo := flash.Geometry{ReadSize: 1, WriteSize: 4, EraseSize: 16}
	s, dev := newMultiwrite(t, geo, 64)

	// Program page 1 with zeros; page 0 stays erased.
	require.NoError(t, s.Write(ctx, 16, testutil.Pattern(16, 0)))
	require.NoError(t, s.Write(ctx, 16, make([]byte, 16)))
	dev.Reset()

	// 12..20: page 0 part lands on erased bytes (subset), page 1 part wants
	// bits set again (not a subset).
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	require.NoError(t, s.Write(ctx, 12, data))

	assert.Equal(t, []trace.Range{{From: 16, To: 32}}, dev.EraseRanges(),
		"only the non-subset page is erased")

	got := make([]byte, 8)
	require.NoError(t, s.Read(ctx, 12, got))
	assert.Equal(t, data, got)
}

func TestMultiwrite_UnalignedDirectWrite(t *testing.T) {
	// The direct path pads to the write granularity and aligns the
	// destination down; the device still sees only aligned writes.
	ctx := context.Background()
	geo := flash.Geometry{ReadSize: 1, WriteSize: 8, EraseSize: 32}
	f, err := memflash.NewMultiwrite(geo, 64)
	require.NoError(t, err)
	dev := &scriptDevice{Device: f}
	s, err := NewMultiwrite(&scriptMultiwrite{scriptDevice: dev}, make([]byte, geo.EraseSize))
	require.NoError(t, err)

	require.NoError(t, s.Write(ctx, 5, []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE}))

	assert.Equal(t, []string{
		"read 0+32",
		"write 0+16", // 5..10 padded out to words [0,16)
	}, dev.ops)

	got := make([]byte, 5)
	require.NoError(t, s.Read(ctx, 5, got))
	assert.Equal(t, []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE}, got)
}

func TestMultiwrite_RoundTrip(t *testing.T) {
	ctx := context.Background()

	for _, geo := range testutil.Geometries() {
		capacity := geo.EraseSize * 4
		t.Run(fmt.Sprintf("r%d_w%d_e%d", geo.ReadSize, geo.WriteSize, geo.EraseSize), func(t *testing.T) {
			f, err := memflash.NewMultiwrite(geo, capacity)
			require.NoError(t, err)
			s, err := NewMultiwrite(f, make([]byte, geo.EraseSize))
			require.NoError(t, err)

			// Repeated overlapping writes force both the direct path and
			// the erase fallback.
			for round := 0; round < 3; round++ {
				data := testutil.Pattern(geo.EraseSize*2, byte(round*3+1))
				offset := uint32(geo.EraseSize/2 + round)
				require.NoError(t, s.Write(ctx, offset, data))

				got := make([]byte, len(data))
				require.NoError(t, s.Read(ctx, offset, got))
				assert.Equal(t, data, got, "round %d", round)
			}
		})
	}
}

// scriptMultiwrite adds the capability marker to scriptDevice.
type scriptMultiwrite struct {
	*scriptDevice
}

func (*scriptMultiwrite) MultiwriteCapable() {}
