package rmw

import (
	"context"
	"errors"

	"github.com/joshuapare/flashkit/flash"
)

// ErrMergeBufferTooSmall indicates a merge buffer shorter than the
// device's erase unit (or its read granularity) was supplied at
// construction.
var ErrMergeBufferTooSmall = errors.New("rmw: merge buffer smaller than device erase size")

// Storage emulates unrestricted byte-addressed reads and writes over a
// word-write-once flash.Device. It implements flash.Storage.
type Storage struct {
	dev flash.Device
	buf []byte
}

// New returns a read-modify-write engine over dev using mergeBuf as
// scratch space. mergeBuf must hold at least one erase unit; it is
// borrowed for the duration of each call and never retained.
func New(dev flash.Device, mergeBuf []byte) (*Storage, error) {
	g := dev.Geometry()
	if err := g.Validate(dev.Capacity()); err != nil {
		return nil, err
	}
	if err := checkMergeBuffer(g, mergeBuf); err != nil {
		return nil, err
	}
	return &Storage{dev: dev, buf: mergeBuf}, nil
}

// Capacity returns the capacity of the underlying device.
func (s *Storage) Capacity() int { return s.dev.Capacity() }

// Read fills p with device contents starting at offset, at any alignment.
func (s *Storage) Read(ctx context.Context, offset uint32, p []byte) error {
	return stitchedRead(ctx, s.dev, s.buf, offset, p)
}

// Write stores p at offset, erasing and rewriting every overlapped page.
// A failed primitive aborts the call; pages already rewritten remain
// committed.
func (s *Storage) Write(ctx context.Context, offset uint32, p []byte) error {
	g := s.dev.Geometry()
	it := flash.Grid(s.dev.Capacity(), g.EraseSize).Overlaps(p, offset)
	for {
		c, ok := it.Next()
		if !ok {
			return nil
		}
		if err := rewritePage(ctx, s.dev, s.buf, c); err != nil {
			return err
		}
	}
}

// rewritePage replays one chunk through the full erase cycle: read the
// whole page (the erase below destroys all of it), erase, merge the new
// bytes, write back.
func rewritePage(ctx context.Context, dev flash.Device, mergeBuf []byte, c flash.Chunk) error {
	page := mergeBuf[:c.Page.Size]
	if err := dev.Read(ctx, c.Page.Start, page); err != nil {
		return err
	}
	if err := dev.Erase(ctx, c.Page.Start, c.Page.End()); err != nil {
		return err
	}
	copy(page[c.Addr-c.Page.Start:], c.Data)
	return dev.Write(ctx, c.Page.Start, page)
}

func checkMergeBuffer(g flash.Geometry, mergeBuf []byte) error {
	if len(mergeBuf) < g.EraseSize || len(mergeBuf) < g.ReadSize {
		return ErrMergeBufferTooSmall
	}
	return nil
}
