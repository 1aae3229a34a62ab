package flash

import "context"

// ReadDevice is the capability set of a read-only NOR flash peripheral.
//
// Read starts at the given address offset and reads len(p) bytes. Both the
// offset and the length must be aligned to Geometry().ReadSize, and the
// range must lie within Capacity(); implementations may use CheckRead.
type ReadDevice interface {
	// Capacity is the total addressable size of the device in bytes.
	Capacity() int

	// Geometry returns the device's granularity constants.
	Geometry() Geometry

	// Read fills p with device contents starting at offset.
	Read(ctx context.Context, offset uint32, p []byte) error
}

// Device is the capability set of an erase-capable NOR flash peripheral.
//
// Write may only target words that have been erased since they were last
// written; writing a previously-written word without an intervening erase
// is a device error. Erase resets every bit in [from, to) to 1. If power
// is lost during an erase, the contents of the affected pages are
// undefined; that is the hardware's documented behavior.
type Device interface {
	ReadDevice

	// Write programs len(p) bytes at offset. Offset and length must be
	// aligned to Geometry().WriteSize; implementations may use CheckWrite.
	Write(ctx context.Context, offset uint32, p []byte) error

	// Erase resets [from, to) to all ones. Both bounds must be aligned to
	// Geometry().EraseSize, and from > to is out of bounds; implementations
	// may use CheckErase.
	Erase(ctx context.Context, from, to uint32) error
}

// MultiwriteDevice is a Device whose write primitive tolerates repeated
// writes to the same word. The stored result is the logical AND of the old
// and new contents: bits can only move 1 -> 0.
//
// If power is lost during a write:
//   - bits that were 1 and are written to 1 stay 1
//   - bits that were 1 and are written to 0 are undefined
//   - bits that were 0 stay 0
//   - the rest of the page is unchanged
//
// MultiwriteCapable is a declaration, not behavior: an implementation
// provides the no-op method to assert AND-semantics writes, which the
// multiwrite RMW engine depends on to skip erases.
type MultiwriteDevice interface {
	Device

	// MultiwriteCapable is a marker method carrying no behavior.
	MultiwriteCapable()
}

// ReadStorage is the transparent read-only contract exposed upward by the
// engines: no alignment constraints beyond offset + len(p) <= Capacity().
type ReadStorage interface {
	// Capacity is the total addressable size in bytes.
	Capacity() int

	// Read fills p starting at offset, at any offset and length.
	Read(ctx context.Context, offset uint32, p []byte) error
}

// Storage is the transparent read/write contract exposed upward by the
// engines. Write automatically performs whatever erase/write sequence the
// underlying device requires, and may therefore trigger read-modify-write
// cycles at a performance cost.
type Storage interface {
	ReadStorage

	// Write stores p at offset, at any offset and length.
	Write(ctx context.Context, offset uint32, p []byte) error
}
