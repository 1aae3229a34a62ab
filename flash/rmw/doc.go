// Package rmw emulates ordinary byte-addressed read/write storage on top
// of NOR-flash devices by performing read-modify-write cycles.
//
// # Overview
//
// A NOR flash page can only be written after it has been erased, and
// erasing resets the whole page. To store an arbitrary byte range the
// engine decomposes it against the erase-unit grid and, for each touched
// page, reads the full page into a caller-supplied merge buffer, erases
// the page, merges the new bytes at the right spot, and writes the page
// back.
//
// Two engines share that decomposition:
//
//   - Storage drives any flash.Device and always erases before rewriting.
//   - MultiwriteStorage drives a flash.MultiwriteDevice and skips the
//     erase whenever the new data is a bitwise subset of the stored bits
//     (new & old == new), which is the exact condition under which an
//     AND-semantics write lands correctly without one. Erases are slow and
//     have finite endurance, so incremental log-style writes benefit most.
//
// # Merge Buffer
//
// The merge buffer is exclusively borrowed by the engine for the duration
// of one call and never retained; its allocation and reuse are the
// caller's responsibility. It must hold at least one erase unit;
// constructing an engine with a smaller buffer fails before any device
// I/O.
//
// # Atomicity
//
// Multi-page writes are not atomic. A primitive failure (or cancellation,
// or power loss) aborts the call immediately: pages already rewritten stay
// committed, pending pages stay untouched, and the engine offers no
// detection or rollback. That matches the underlying hardware's lack of
// transactional guarantees.
//
// # Concurrency
//
// The engines contain no internal concurrency. Primitive device calls are
// the only cancellation points, and per-page sequences are never
// reordered: they share the one merge buffer. Callers must not invoke two
// operations concurrently against the same buffer or device handle.
package rmw
