package trace

import (
	"context"
	"testing"

	"github.com/joshuapare/flashkit/flash"
	"github.com/joshuapare/flashkit/flash/memflash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testGeo = flash.Geometry{ReadSize: 1, WriteSize: 4, EraseSize: 16}

func newTraced(t *testing.T) *Device {
	t.Helper()
	f, err := memflash.New(testGeo, 64)
	require.NoError(t, err)
	return Wrap(f)
}

func TestDevice_Counts(t *testing.T) {
	ctx := context.Background()
	d := newTraced(t)

	require.NoError(t, d.Write(ctx, 0, []byte{1, 2, 3, 4}))
	require.NoError(t, d.Read(ctx, 0, make([]byte, 8)))
	require.NoError(t, d.Erase(ctx, 0, 16))

	c := d.Counts()
	assert.Equal(t, 1, c.Reads)
	assert.Equal(t, 1, c.Writes)
	assert.Equal(t, 1, c.Erases)
	assert.Equal(t, int64(8), c.BytesRead)
	assert.Equal(t, int64(4), c.BytesWritten)
	assert.Equal(t, int64(16), c.BytesErased)
}

func TestDevice_FailedPrimitivesNotCounted(t *testing.T) {
	ctx := context.Background()
	d := newTraced(t)

	require.Error(t, d.Write(ctx, 2, []byte{1, 2, 3, 4}), "unaligned write fails")
	require.Error(t, d.Erase(ctx, 16, 0), "backwards erase fails")

	c := d.Counts()
	assert.Zero(t, c.Writes)
	assert.Zero(t, c.Erases)
}

func TestDevice_EraseRangesCoalesce(t *testing.T) {
	ctx := context.Background()
	d := newTraced(t)

	// Out of order, with adjacency and a gap.
	require.NoError(t, d.Erase(ctx, 32, 48))
	require.NoError(t, d.Erase(ctx, 0, 16))
	require.NoError(t, d.Erase(ctx, 16, 32))

	got := d.EraseRanges()
	require.Len(t, got, 1, "adjacent ranges merge")
	assert.Equal(t, Range{From: 0, To: 48}, got[0])

	require.NoError(t, d.Erase(ctx, 48, 64))
	d.Reset()
	assert.Empty(t, d.EraseRanges())
	assert.Zero(t, d.Counts().Erases)
}

func TestWrapMultiwrite_PreservesCapability(t *testing.T) {
	m, err := memflash.NewMultiwrite(testGeo, 64)
	require.NoError(t, err)

	var dev flash.MultiwriteDevice = WrapMultiwrite(m)
	assert.Equal(t, 64, dev.Capacity())
}
