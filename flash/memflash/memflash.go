// Package memflash simulates a NOR flash peripheral in memory.
//
// The simulator enforces the real device rules: reads, writes, and erases
// must be aligned to the configured geometry, contents start erased (all
// ones), and erase is the only way to set bits back to 1. Two variants
// exist:
//
//   - Flash is strict word-write-once: programming a word twice without an
//     intervening erase fails, as on peripherals with internal ECC.
//   - Multiwrite tolerates repeated writes; the stored result is the
//     logical AND of old and new contents.
//
// memflash backs the package tests and the examples.
package memflash

import (
	"context"
	"errors"
	"fmt"

	"github.com/joshuapare/flashkit/flash"
)

// erasedByte is the value of every byte after an erase.
const erasedByte = 0xFF

// ErrWriteBeforeErase indicates a write targeted a word already programmed
// since the last erase. It classifies as flash.KindOther.
var ErrWriteBeforeErase = errors.New("memflash: write to programmed word requires erase")

// Flash is an in-memory strict (word-write-once) NOR flash device.
// It implements flash.Device. Not safe for concurrent use.
type Flash struct {
	geo        flash.Geometry
	data       []byte
	programmed []bool // one flag per write word
	multiwrite bool
}

// New returns a strict simulator with the given geometry and capacity,
// fully erased.
func New(geo flash.Geometry, capacity int) (*Flash, error) {
	if err := geo.Validate(capacity); err != nil {
		return nil, err
	}
	f := &Flash{
		geo:        geo,
		data:       make([]byte, capacity),
		programmed: make([]bool, capacity/geo.WriteSize),
	}
	for i := range f.data {
		f.data[i] = erasedByte
	}
	return f, nil
}

// Capacity returns the addressable size in bytes.
func (f *Flash) Capacity() int { return len(f.data) }

// Geometry returns the configured granularities.
func (f *Flash) Geometry() flash.Geometry { return f.geo }

// Bytes exposes the backing array for inspection. Mutating it bypasses the
// device rules; tests and tooling read it only.
func (f *Flash) Bytes() []byte { return f.data }

// Read copies device contents at offset into p.
func (f *Flash) Read(ctx context.Context, offset uint32, p []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := flash.CheckRead(f, offset, len(p)); err != nil {
		return fmt.Errorf("memflash: read %d+%d: %w", offset, len(p), err)
	}
	copy(p, f.data[offset:])
	return nil
}

// Write programs p at offset. In strict mode every touched word must be
// unprogrammed since the last erase; in multiwrite mode the result is the
// bitwise AND of old and new contents.
func (f *Flash) Write(ctx context.Context, offset uint32, p []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := flash.CheckWrite(f, offset, len(p)); err != nil {
		return fmt.Errorf("memflash: write %d+%d: %w", offset, len(p), err)
	}
	if f.multiwrite {
		for i, b := range p {
			f.data[int(offset)+i] &= b
		}
		return nil
	}
	firstWord := int(offset) / f.geo.WriteSize
	lastWord := (int(offset) + len(p)) / f.geo.WriteSize
	for w := firstWord; w < lastWord; w++ {
		if f.programmed[w] {
			return fmt.Errorf("memflash: word %d at %d: %w", w, w*f.geo.WriteSize, ErrWriteBeforeErase)
		}
	}
	copy(f.data[offset:], p)
	for w := firstWord; w < lastWord; w++ {
		f.programmed[w] = true
	}
	return nil
}

// Erase resets [from, to) to all ones and clears the programmed marks.
func (f *Flash) Erase(ctx context.Context, from, to uint32) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := flash.CheckErase(f, from, to); err != nil {
		return fmt.Errorf("memflash: erase [%d, %d): %w", from, to, err)
	}
	for i := from; i < to; i++ {
		f.data[i] = erasedByte
	}
	for w := int(from) / f.geo.WriteSize; w < int(to)/f.geo.WriteSize; w++ {
		f.programmed[w] = false
	}
	return nil
}

// Multiwrite is an in-memory NOR flash whose write primitive ANDs into the
// stored contents. It implements flash.MultiwriteDevice.
type Multiwrite struct {
	*Flash
}

// NewMultiwrite returns an AND-semantics simulator with the given geometry
// and capacity, fully erased.
func NewMultiwrite(geo flash.Geometry, capacity int) (*Multiwrite, error) {
	f, err := New(geo, capacity)
	if err != nil {
		return nil, err
	}
	f.multiwrite = true
	return &Multiwrite{Flash: f}, nil
}

// MultiwriteCapable marks the AND-semantics write contract.
func (m *Multiwrite) MultiwriteCapable() {}
