package flash

import "fmt"

// Geometry carries the per-device granularity constants: the minimum
// number of bytes the peripheral can read, write, and erase in one
// primitive operation.
//
// In the source hardware documentation these are per-part constants; here
// they travel as a descriptor value alongside the device.
type Geometry struct {
	// ReadSize is the minimum number of bytes the peripheral can read.
	ReadSize int

	// WriteSize is the minimum number of bytes the peripheral can write.
	WriteSize int

	// EraseSize is the minimum number of bytes the peripheral can erase.
	// This is the page size of the erase grid.
	EraseSize int
}

// Validate reports whether the geometry is usable for a device of the
// given capacity. All three granularities must be positive and divide
// capacity evenly; EraseSize must be a multiple of WriteSize and WriteSize
// a multiple of ReadSize, which the RMW engines rely on when aligning
// padded writes inside a page.
func (g Geometry) Validate(capacity int) error {
	if g.ReadSize <= 0 || g.WriteSize <= 0 || g.EraseSize <= 0 {
		return fmt.Errorf("flash: non-positive granularity %+v", g)
	}
	if capacity <= 0 {
		return fmt.Errorf("flash: non-positive capacity %d", capacity)
	}
	if capacity%g.ReadSize != 0 || capacity%g.WriteSize != 0 || capacity%g.EraseSize != 0 {
		return fmt.Errorf("flash: capacity %d not a multiple of granularities %+v", capacity, g)
	}
	if g.EraseSize%g.WriteSize != 0 || g.WriteSize%g.ReadSize != 0 {
		return fmt.Errorf("flash: granularities must nest (erase %% write == 0, write %% read == 0): %+v", g)
	}
	return nil
}
