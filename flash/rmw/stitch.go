package rmw

import (
	"context"

	"github.com/joshuapare/flashkit/flash"
	"github.com/joshuapare/flashkit/internal/buf"
)

// stitchedRead reassembles an arbitrary (offset, len(p)) read from a
// device whose native read primitive only accepts ranges aligned to the
// read granularity. The request splits into at most three segments on the
// read grid:
//
//	header: [AlignDown(offset), next boundary)  present iff offset is unaligned
//	main:   whole blocks read directly into p   no scratch copy
//	footer: [last boundary, offset+len(p))      present iff the end is unaligned
//
// Header and footer each cost one block read into scratch plus a copy of
// the requested sub-range. When the whole request fits inside a single
// block, one read and one copy serve it.
func stitchedRead(ctx context.Context, dev flash.ReadDevice, scratch []byte, offset uint32, p []byte) error {
	if len(p) == 0 {
		return nil
	}
	size := dev.Geometry().ReadSize
	if size <= 1 {
		return dev.Read(ctx, offset, p)
	}

	end := offset + uint32(len(p))
	block := scratch[:size]

	// Whole request inside one block: header and footer coincide.
	if buf.AlignDown(offset, size) == buf.AlignDown(end-1, size) {
		start := buf.AlignDown(offset, size)
		if err := dev.Read(ctx, start, block); err != nil {
			return err
		}
		copy(p, block[offset-start:])
		return nil
	}

	rest := p
	addr := offset
	if skew := int(offset) % size; skew != 0 {
		start := buf.AlignDown(offset, size)
		if err := dev.Read(ctx, start, block); err != nil {
			return err
		}
		n := copy(rest, block[skew:])
		rest = rest[n:]
		addr += uint32(n)
	}

	// addr is block-aligned from here on.
	if main := len(rest) - len(rest)%size; main > 0 {
		if err := dev.Read(ctx, addr, rest[:main]); err != nil {
			return err
		}
		rest = rest[main:]
		addr += uint32(main)
	}

	if len(rest) > 0 {
		if err := dev.Read(ctx, addr, block); err != nil {
			return err
		}
		copy(rest, block)
	}
	return nil
}
