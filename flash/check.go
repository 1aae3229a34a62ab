package flash

import "github.com/joshuapare/flashkit/internal/buf"

// Validation helpers for device implementations. These are advisory: a
// device may call them from its own read/write/erase to produce uniform
// ErrNotAligned / ErrOutOfBounds errors. The RMW engines do not re-invoke
// them and rely on device-enforced error returns instead.

// CheckRead reports whether a read of length bytes at offset is aligned
// and within bounds for the device.
func CheckRead(d ReadDevice, offset uint32, length int) error {
	return checkSlice(d.Geometry().ReadSize, d.Capacity(), offset, length)
}

// CheckWrite reports whether a write of length bytes at offset is aligned
// and within bounds for the device.
func CheckWrite(d ReadDevice, offset uint32, length int) error {
	return checkSlice(d.Geometry().WriteSize, d.Capacity(), offset, length)
}

// CheckErase reports whether erasing [from, to) is aligned and within
// bounds for the device. A backwards range (from > to) is out of bounds,
// never a no-op; from == to is a valid empty range.
func CheckErase(d ReadDevice, from, to uint32) error {
	size := uint32(d.Geometry().EraseSize)
	if from > to || int(to) > d.Capacity() {
		return ErrOutOfBounds
	}
	if from%size != 0 || to%size != 0 {
		return ErrNotAligned
	}
	return nil
}

func checkSlice(granularity, capacity int, offset uint32, length int) error {
	end, ok := buf.End32(offset, length)
	if !ok || int64(end) > int64(capacity) {
		return ErrOutOfBounds
	}
	if int(offset)%granularity != 0 || length%granularity != 0 {
		return ErrNotAligned
	}
	return nil
}
