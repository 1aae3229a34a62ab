package flash

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubDevice carries only the descriptor; Read is never called by the
// checkers.
type stubDevice struct {
	geo Geometry
	cap int
}

func (d stubDevice) Capacity() int      { return d.cap }
func (d stubDevice) Geometry() Geometry { return d.geo }
func (d stubDevice) Read(context.Context, uint32, []byte) error {
	panic("checkers must not touch the device")
}

func TestCheckReadWrite(t *testing.T) {
	dev := stubDevice{geo: Geometry{ReadSize: 4, WriteSize: 8, EraseSize: 16}, cap: 64}

	tests := []struct {
		name   string
		offset uint32
		length int
		want   error
	}{
		{"aligned in bounds", 8, 16, nil},
		{"zero length", 0, 0, nil},
		{"full device", 0, 64, nil},
		{"unaligned offset", 2, 8, ErrNotAligned},
		{"unaligned length", 8, 3, ErrNotAligned},
		{"past capacity", 56, 16, ErrOutOfBounds},
		{"length alone too large", 0, 65, ErrOutOfBounds},
		{"offset past end", 64, 8, ErrOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckWrite(dev, tt.offset, tt.length)
			assert.ErrorIs(t, err, tt.want, "CheckWrite(%d, %d)", tt.offset, tt.length)
		})
	}

	// Read granularity is 4, so offset 2 is still unaligned but length 8 at
	// offset 4 is fine.
	assert.NoError(t, CheckRead(dev, 4, 8))
	assert.ErrorIs(t, CheckRead(dev, 2, 8), ErrNotAligned)
}

func TestCheckErase(t *testing.T) {
	dev := stubDevice{geo: Geometry{ReadSize: 1, WriteSize: 4, EraseSize: 16}, cap: 64}

	tests := []struct {
		name     string
		from, to uint32
		want     error
	}{
		{"one page", 0, 16, nil},
		{"whole device", 0, 64, nil},
		{"empty range", 32, 32, nil},
		{"backwards range", 32, 16, ErrOutOfBounds},
		{"past capacity", 48, 80, ErrOutOfBounds},
		{"unaligned from", 8, 32, ErrNotAligned},
		{"unaligned to", 16, 40, ErrNotAligned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckErase(dev, tt.from, tt.to)
			assert.ErrorIs(t, err, tt.want, "CheckErase(%d, %d)", tt.from, tt.to)
		})
	}
}

func TestCheckErase_BoundsBeforeAlignment(t *testing.T) {
	// A range that is both backwards and unaligned reports out of bounds.
	dev := stubDevice{geo: Geometry{ReadSize: 1, WriteSize: 4, EraseSize: 16}, cap: 64}
	assert.ErrorIs(t, CheckErase(dev, 33, 17), ErrOutOfBounds)
}
