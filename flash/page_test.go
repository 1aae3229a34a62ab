package flash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage_Bounds(t *testing.T) {
	p := NewPage(2, 256)

	assert.Equal(t, uint32(512), p.Start, "page 2 of 256 starts at 512")
	assert.Equal(t, uint32(768), p.End())

	assert.True(t, p.Contains(512), "start is inside")
	assert.True(t, p.Contains(767), "last byte is inside")
	assert.False(t, p.Contains(768), "end is exclusive")
	assert.False(t, p.Contains(511))
}

func TestGrid_Pages(t *testing.T) {
	g := Grid(4096, 1024)

	require.Equal(t, uint32(4), g.Count())
	require.Equal(t, 1024, g.PageSize())

	for i := uint32(0); i < g.Count(); i++ {
		p := g.Page(i)
		assert.Equal(t, i*1024, p.Start, "page %d start", i)
		assert.Equal(t, 1024, p.Size)
	}
}

func TestGeometry_Validate(t *testing.T) {
	tests := []struct {
		name     string
		geo      Geometry
		capacity int
		wantErr  bool
	}{
		{"uniform", Geometry{ReadSize: 4, WriteSize: 4, EraseSize: 4}, 8, false},
		{"nested", Geometry{ReadSize: 1, WriteSize: 4, EraseSize: 64}, 256, false},
		{"typical part", Geometry{ReadSize: 1, WriteSize: 256, EraseSize: 4096}, 1 << 20, false},
		{"zero granularity", Geometry{ReadSize: 0, WriteSize: 4, EraseSize: 64}, 256, true},
		{"capacity not multiple", Geometry{ReadSize: 1, WriteSize: 4, EraseSize: 64}, 100, true},
		{"erase not multiple of write", Geometry{ReadSize: 1, WriteSize: 3, EraseSize: 64}, 192, true},
		{"write not multiple of read", Geometry{ReadSize: 4, WriteSize: 6, EraseSize: 24}, 240, true},
		{"zero capacity", Geometry{ReadSize: 1, WriteSize: 1, EraseSize: 1}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.geo.Validate(tt.capacity)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
