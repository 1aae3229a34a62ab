// Package fileflash backs a NOR flash device with a regular file, for
// tooling and host-side testing against realistic image sizes.
//
// An image is a file of exactly the device capacity, accompanied by a
// YAML sidecar ("<image>.yaml") recording the geometry it was created
// with. The file is memory-mapped read-write where the platform allows
// and buffered otherwise; Flush pushes dirty contents to disk either way.
//
// The device models AND-semantics (multiwrite) NOR: writes clear bits,
// erases fill 0xFF. Word-write-once parts are modeled by driving it with
// the single-write RMW engine, which never rewrites a word without an
// intervening erase.
package fileflash

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joshuapare/flashkit/flash"
	"github.com/joshuapare/flashkit/flash/profile"
	"github.com/joshuapare/flashkit/internal/mmfile"
)

const erasedByte = 0xFF

// fillChunk is the write unit used when initializing fresh images.
const fillChunk = 64 * 1024

// SidecarPath returns the path of the geometry sidecar for an image.
func SidecarPath(imagePath string) string {
	return imagePath + ".yaml"
}

// Create writes a fresh, fully-erased image for the given profile, plus
// its sidecar. It refuses to overwrite an existing image.
func Create(path string, p profile.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	chunk := make([]byte, fillChunk)
	for i := range chunk {
		chunk[i] = erasedByte
	}
	for written := 0; written < p.Capacity; {
		n := min(len(chunk), p.Capacity-written)
		if _, err := f.Write(chunk[:n]); err != nil {
			return fmt.Errorf("fileflash: fill %s: %w", path, err)
		}
		written += n
	}
	if err := f.Sync(); err != nil {
		return err
	}
	return profile.WriteFile(SidecarPath(path), p)
}

// Flash is a file-backed NOR flash device. It implements
// flash.MultiwriteDevice. Not safe for concurrent use.
type Flash struct {
	f        *os.File
	data     []byte
	unmap    func() error
	prof     profile.Profile
	buffered bool
}

// Open maps an image created by Create. The sidecar supplies the
// geometry; the image size must match its capacity exactly.
func Open(path string) (*Flash, error) {
	p, err := profile.ReadFile(SidecarPath(path))
	if err != nil {
		return nil, fmt.Errorf("fileflash: sidecar for %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.Size() != int64(p.Capacity) {
		f.Close()
		return nil, fmt.Errorf("fileflash: image %s is %d bytes, profile %q says %d",
			path, info.Size(), p.Name, p.Capacity)
	}

	dev := &Flash{f: f, prof: p}
	data, unmap, err := mmfile.MapRW(f)
	switch {
	case err == nil:
		dev.data, dev.unmap = data, unmap
	case errors.Is(err, mmfile.ErrUnsupported):
		dev.buffered = true
		dev.data = make([]byte, p.Capacity)
		if _, err := f.ReadAt(dev.data, 0); err != nil {
			f.Close()
			return nil, err
		}
	default:
		f.Close()
		return nil, err
	}
	return dev, nil
}

// Profile returns the sidecar profile the image was opened with.
func (d *Flash) Profile() profile.Profile { return d.prof }

// Capacity returns the addressable size in bytes.
func (d *Flash) Capacity() int { return len(d.data) }

// Geometry returns the image's granularities.
func (d *Flash) Geometry() flash.Geometry { return d.prof.Geometry() }

// MultiwriteCapable marks the AND-semantics write contract.
func (d *Flash) MultiwriteCapable() {}

// Read copies image contents at offset into p.
func (d *Flash) Read(ctx context.Context, offset uint32, p []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := flash.CheckRead(d, offset, len(p)); err != nil {
		return fmt.Errorf("fileflash: read %d+%d: %w", offset, len(p), err)
	}
	copy(p, d.data[offset:])
	return nil
}

// Write ANDs p into the image at offset.
func (d *Flash) Write(ctx context.Context, offset uint32, p []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := flash.CheckWrite(d, offset, len(p)); err != nil {
		return fmt.Errorf("fileflash: write %d+%d: %w", offset, len(p), err)
	}
	for i, b := range p {
		d.data[int(offset)+i] &= b
	}
	return nil
}

// Erase resets [from, to) to all ones.
func (d *Flash) Erase(ctx context.Context, from, to uint32) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := flash.CheckErase(d, from, to); err != nil {
		return fmt.Errorf("fileflash: erase [%d, %d): %w", from, to, err)
	}
	for i := from; i < to; i++ {
		d.data[i] = erasedByte
	}
	return nil
}

// Flush pushes dirty contents to durable storage.
func (d *Flash) Flush(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.buffered {
		if _, err := d.f.WriteAt(d.data, 0); err != nil {
			return err
		}
		return d.f.Sync()
	}
	return d.flushMapped()
}

// Close flushes and releases the image.
func (d *Flash) Close() error {
	flushErr := d.Flush(context.Background())
	if d.unmap != nil {
		if err := d.unmap(); err != nil && flushErr == nil {
			flushErr = err
		}
	}
	if err := d.f.Close(); err != nil && flushErr == nil {
		flushErr = err
	}
	return flushErr
}
