// Package buf provides overflow-safe bounds arithmetic for byte-addressed
// ranges. Offsets on flash devices are 32-bit; lengths come from Go slices.
// These helpers keep offset+length math from silently wrapping.
package buf

import "math"

// End32 returns offset + length as a uint32, with ok = false when length is
// negative or the sum would not fit in 32 bits.
func End32(offset uint32, length int) (uint32, bool) {
	if length < 0 || int64(length) > int64(math.MaxUint32)-int64(offset) {
		return 0, false
	}
	return offset + uint32(length), true
}

// AlignDown rounds v down to the previous multiple of align.
func AlignDown(v uint32, align int) uint32 {
	return v - v%uint32(align)
}

// AlignUp rounds v up to the next multiple of align.
func AlignUp(v, align int) int {
	if rem := v % align; rem != 0 {
		return v + align - rem
	}
	return v
}
