// Package flash defines the device and storage contracts for NOR-flash-class
// peripherals and the building blocks shared by the read-modify-write engines.
//
// # Overview
//
// NOR flash natively supports three primitives: aligned reads, whole-page
// erase (resetting every bit in the page to 1), and writes that can only
// clear bits (1 -> 0). This package models those primitives as a small set of
// composable capability interfaces, plus the helpers needed to translate
// arbitrary byte ranges into legal primitive sequences:
//
//   - Geometry: per-device granularity constants (read/write/erase sizes)
//   - ReadDevice / Device / MultiwriteDevice: the capability hierarchy
//   - ReadStorage / Storage: the relaxed byte-addressed contract exposed upward
//   - Page and PageGrid: the erase-granularity address grid
//   - OverlapIterator: partitions a byte range against the page grid
//   - CheckRead / CheckWrite / CheckErase: argument validation helpers
//
// # Capability Hierarchy
//
// A device implements exactly the capabilities it supports. A read-only
// peripheral implements ReadDevice; an erase-capable part adds Write and
// Erase to satisfy Device; a part whose write primitive tolerates repeated
// writes to the same word (with logical-AND results) additionally declares
// MultiwriteDevice. The engines in flashkit/flash/rmw are generic over any
// Device, with a specialization for MultiwriteDevice that skips erases when
// the new data only clears bits.
//
// # Error Model
//
// Device-specific errors classify into three kinds: KindNotAligned,
// KindOutOfBounds, and KindOther. Implementations either wrap the sentinel
// errors ErrNotAligned / ErrOutOfBounds or provide a StorageKind method;
// KindOf recovers the kind from any error chain. See errors.go.
//
// # Related Packages
//
//   - github.com/joshuapare/flashkit/flash/rmw: read-modify-write engines
//   - github.com/joshuapare/flashkit/flash/memflash: in-memory simulator
//   - github.com/joshuapare/flashkit/flash/fileflash: file-backed device
//   - github.com/joshuapare/flashkit/flash/trace: instrumentation wrapper
//   - github.com/joshuapare/flashkit/flash/blockdev: fixed-size sector layer
package flash
