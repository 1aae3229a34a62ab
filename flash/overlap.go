package flash

// Chunk is one element of an overlap partition: the sub-slice of the
// caller's memory that falls inside Page, and the absolute address where
// the overlap begins (the larger of the memory's base address and
// Page.Start).
type Chunk struct {
	Data []byte
	Page Page
	Addr uint32
}

// OverlapIterator partitions a byte slice, placed at a base address,
// against a page grid. Every byte of the slice appears in exactly one
// chunk, chunks come out in ascending address order, and pages the slice
// does not touch are skipped. The iterator performs no allocation and
// never mutates the memory.
type OverlapIterator struct {
	memory []byte
	base   uint32
	grid   PageGrid
	idx    uint32
}

// Overlaps returns an iterator over the chunks of memory that overlap the
// grid's pages, with memory placed at base. An empty memory yields an
// empty sequence.
func (g PageGrid) Overlaps(memory []byte, base uint32) OverlapIterator {
	return OverlapIterator{memory: memory, base: base, grid: g}
}

// Next returns the next overlapping chunk, or ok == false when the
// partition is exhausted.
func (it *OverlapIterator) Next() (Chunk, bool) {
	if len(it.memory) == 0 {
		return Chunk{}, false
	}
	memEnd := it.base + uint32(len(it.memory))
	for it.idx < it.grid.Count() {
		page := it.grid.Page(it.idx)
		it.idx++
		if page.Start >= memEnd {
			break
		}
		if page.End() <= it.base {
			continue
		}
		start := max(it.base, page.Start)
		end := min(memEnd, page.End())
		return Chunk{
			Data: it.memory[start-it.base : end-it.base],
			Page: page,
			Addr: start,
		}, true
	}
	return Chunk{}, false
}
