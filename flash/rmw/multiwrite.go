package rmw

import (
	"context"

	"github.com/joshuapare/flashkit/flash"
	"github.com/joshuapare/flashkit/internal/buf"
)

// MultiwriteStorage emulates unrestricted byte-addressed reads and writes
// over a flash.MultiwriteDevice, skipping the erase whenever the new data
// only clears bits that are still set on flash. It implements
// flash.Storage.
type MultiwriteStorage struct {
	dev flash.MultiwriteDevice
	buf []byte
}

// NewMultiwrite returns an erase-avoiding read-modify-write engine over
// dev using mergeBuf as scratch space. mergeBuf must hold at least one
// erase unit; it is borrowed for the duration of each call and never
// retained.
func NewMultiwrite(dev flash.MultiwriteDevice, mergeBuf []byte) (*MultiwriteStorage, error) {
	g := dev.Geometry()
	if err := g.Validate(dev.Capacity()); err != nil {
		return nil, err
	}
	if err := checkMergeBuffer(g, mergeBuf); err != nil {
		return nil, err
	}
	return &MultiwriteStorage{dev: dev, buf: mergeBuf}, nil
}

// Capacity returns the capacity of the underlying device.
func (s *MultiwriteStorage) Capacity() int { return s.dev.Capacity() }

// Read fills p with device contents starting at offset, at any alignment.
func (s *MultiwriteStorage) Read(ctx context.Context, offset uint32, p []byte) error {
	return stitchedRead(ctx, s.dev, s.buf, offset, p)
}

// Write stores p at offset. Pages where the new bytes are a bitwise subset
// of the stored bits (new & old == new, the exact legality condition for
// an AND-semantics write) are written directly without an erase; all
// others go through the full erase cycle.
func (s *MultiwriteStorage) Write(ctx context.Context, offset uint32, p []byte) error {
	g := s.dev.Geometry()
	it := flash.Grid(s.dev.Capacity(), g.EraseSize).Overlaps(p, offset)
	for {
		c, ok := it.Next()
		if !ok {
			return nil
		}

		page := s.buf[:c.Page.Size]
		if err := s.dev.Read(ctx, c.Page.Start, page); err != nil {
			return err
		}

		if isSubset(c.Data, page[c.Addr-c.Page.Start:]) {
			if err := s.writeDirect(ctx, c, g.WriteSize); err != nil {
				return err
			}
			continue
		}

		if err := s.dev.Erase(ctx, c.Page.Start, c.Page.End()); err != nil {
			return err
		}
		copy(page[c.Addr-c.Page.Start:], c.Data)
		if err := s.dev.Write(ctx, c.Page.Start, page); err != nil {
			return err
		}
	}
}

// writeDirect issues a single erase-free write of the chunk, padded to the
// write granularity. Padding bytes are all ones so the AND write leaves
// the neighbors unchanged. The merge buffer doubles as the padding
// allocation; the page contents staged in it are dead at this point.
func (s *MultiwriteStorage) writeDirect(ctx context.Context, c flash.Chunk, writeSize int) error {
	pad := int(c.Addr) % writeSize
	padded := s.buf[:buf.AlignUp(pad+len(c.Data), writeSize)]
	for i := range padded {
		padded[i] = 0xFF
	}
	copy(padded[pad:], c.Data)
	return s.dev.Write(ctx, c.Addr-uint32(pad), padded)
}

// isSubset reports whether every bit set in data is also set in stored,
// byte for byte over the overlapping region.
func isSubset(data, stored []byte) bool {
	for i, b := range data {
		if b&stored[i] != b {
			return false
		}
	}
	return true
}
