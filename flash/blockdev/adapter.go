package blockdev

import (
	"context"
	"fmt"

	"github.com/joshuapare/flashkit/flash"
)

// StorageDevice presents a flash.Storage as a block device. The RMW
// engine underneath already hides erase constraints, so this layer only
// enforces the whole-blocks contract.
type StorageDevice struct {
	storage   flash.Storage
	blockSize int
}

// FromStorage wraps storage as a block device with the given block size,
// which must be positive and divide the storage capacity evenly.
func FromStorage(storage flash.Storage, blockSize int) (*StorageDevice, error) {
	if blockSize <= 0 || storage.Capacity()%blockSize != 0 {
		return nil, fmt.Errorf("blockdev: block size %d does not divide capacity %d", blockSize, storage.Capacity())
	}
	return &StorageDevice{storage: storage, blockSize: blockSize}, nil
}

// BlockSize returns the block size in bytes.
func (d *StorageDevice) BlockSize() int { return d.blockSize }

// BlockCount returns the device size in blocks.
func (d *StorageDevice) BlockCount() (Count, error) {
	return Count(d.storage.Capacity() / d.blockSize), nil
}

// ReadBlocks fills p with whole blocks starting at first.
func (d *StorageDevice) ReadBlocks(ctx context.Context, first Idx, p []byte) error {
	offset, err := d.checkRange(first, len(p))
	if err != nil {
		return err
	}
	return d.storage.Read(ctx, offset, p)
}

// WriteBlocks stores whole blocks starting at first.
func (d *StorageDevice) WriteBlocks(ctx context.Context, first Idx, p []byte) error {
	offset, err := d.checkRange(first, len(p))
	if err != nil {
		return err
	}
	return d.storage.Write(ctx, offset, p)
}

func (d *StorageDevice) checkRange(first Idx, length int) (uint32, error) {
	if length%d.blockSize != 0 {
		return 0, fmt.Errorf("%w: %d %% %d != 0", ErrNotBlockSized, length, d.blockSize)
	}
	start := uint64(first) * uint64(d.blockSize)
	if start+uint64(length) > uint64(d.storage.Capacity()) {
		return 0, fmt.Errorf("blockdev: blocks [%d, +%d bytes): %w", first, length, flash.ErrOutOfBounds)
	}
	return uint32(start), nil
}
