// Package blockdev models a device addressed in fixed-size blocks
// (sectors), the shape higher-level filesystems want. It is a trivial
// pass-through layer: whole blocks in, whole blocks out, no
// read-modify-write concerns.
package blockdev

import (
	"context"
	"errors"
)

// ErrNotBlockSized indicates a buffer whose length is not a whole number
// of blocks.
var ErrNotBlockSized = errors.New("blockdev: buffer not a whole number of blocks")

// Idx is the linear numeric address of a block.
type Idx uint64

// Add advances the index by n blocks.
func (i Idx) Add(n Count) Idx { return i + Idx(n) }

// Sub moves the index back by n blocks.
func (i Idx) Sub(n Count) Idx { return i - Idx(n) }

// Range iterates from i through the following n blocks.
func (i Idx) Range(n Count) *Iter {
	return NewIter(i, i.Add(n))
}

// Count is a number of blocks. Adding a Count to an Idx yields another
// Idx.
type Count uint64

// Iter walks a block range from start through an inclusive end.
type Iter struct {
	current      Idx
	inclusiveEnd Idx
}

// NewIter returns an iterator from start through (and including) end.
func NewIter(start, inclusiveEnd Idx) *Iter {
	return &Iter{current: start, inclusiveEnd: inclusiveEnd}
}

// Next returns the next block index, or ok == false when the range is
// exhausted.
func (it *Iter) Next() (Idx, bool) {
	if it.current > it.inclusiveEnd {
		return 0, false
	}
	this := it.current
	it.current++
	return this, true
}

// Device reads and writes whole numbers of blocks.
type Device interface {
	// BlockSize returns the block (sector) size in bytes.
	BlockSize() int

	// BlockCount returns the size of the device in blocks.
	BlockCount() (Count, error)

	// ReadBlocks fills p, which must be a whole number of blocks, starting
	// at block first. Requesting blocks past the device's size is an
	// error.
	ReadBlocks(ctx context.Context, first Idx, p []byte) error

	// WriteBlocks stores p, which must be a whole number of blocks,
	// starting at block first. Requesting blocks past the device's size is
	// an error.
	WriteBlocks(ctx context.Context, first Idx, p []byte) error
}
