package flash

// Page is one erase unit of the device: a contiguous address range
// [Start, Start+Size). Pages are ephemeral, generated on demand from the
// erase-granularity grid, and never persisted.
type Page struct {
	Start uint32
	Size  int
}

// NewPage returns the page at the given grid index.
func NewPage(index uint32, size int) Page {
	return Page{Start: index * uint32(size), Size: size}
}

// End returns the first address past the page.
func (p Page) End() uint32 {
	return p.Start + uint32(p.Size)
}

// Contains reports whether addr falls inside the page.
func (p Page) Contains(addr uint32) bool {
	return p.Start <= addr && addr < p.End()
}

// PageGrid is the arithmetic progression of pages covering a device:
// page i spans [i*size, (i+1)*size).
type PageGrid struct {
	size  int
	count uint32
}

// Grid returns the erase-unit grid for a device of the given capacity.
// Capacity must be a multiple of eraseSize (see Geometry.Validate).
func Grid(capacity, eraseSize int) PageGrid {
	return PageGrid{size: eraseSize, count: uint32(capacity / eraseSize)}
}

// PageSize returns the size of each page in bytes.
func (g PageGrid) PageSize() int { return g.size }

// Count returns the number of pages in the grid.
func (g PageGrid) Count() uint32 { return g.count }

// Page returns the page at index i.
func (g PageGrid) Page(i uint32) Page {
	return NewPage(i, g.size)
}
