// Package trace wraps a flash device with primitive-level instrumentation.
//
// The engine reports errors verbatim and does not say which page it was
// processing when one occurred; callers wanting per-primitive diagnosis or
// wear accounting wrap the device instead. The wrapper is a thin
// forwarding adapter: it counts each primitive, tallies the bytes moved,
// and records erased ranges so that erase traffic can be inspected after
// the fact.
//
// Trackers are not safe for concurrent use, matching the engines they sit
// under.
package trace

import (
	"context"
	"sort"

	"github.com/joshuapare/flashkit/flash"
)

// rangeCapacity is the pre-allocated erase-range capacity; typical
// operations touch far fewer pages.
const rangeCapacity = 16

// Counts is a snapshot of primitive activity since the last Reset.
type Counts struct {
	Reads  int
	Writes int
	Erases int

	BytesRead    int64
	BytesWritten int64
	BytesErased  int64
}

// Range is an erased address range [From, To).
type Range struct {
	From uint32
	To   uint32
}

// Device forwards to a flash.Device while recording activity.
type Device struct {
	dev    flash.Device
	counts Counts
	erased []Range
}

// Wrap instruments dev.
func Wrap(dev flash.Device) *Device {
	return &Device{dev: dev, erased: make([]Range, 0, rangeCapacity)}
}

// Capacity forwards to the wrapped device.
func (d *Device) Capacity() int { return d.dev.Capacity() }

// Geometry forwards to the wrapped device.
func (d *Device) Geometry() flash.Geometry { return d.dev.Geometry() }

// Read forwards and, on success, counts the primitive.
func (d *Device) Read(ctx context.Context, offset uint32, p []byte) error {
	if err := d.dev.Read(ctx, offset, p); err != nil {
		return err
	}
	d.counts.Reads++
	d.counts.BytesRead += int64(len(p))
	return nil
}

// Write forwards and, on success, counts the primitive.
func (d *Device) Write(ctx context.Context, offset uint32, p []byte) error {
	if err := d.dev.Write(ctx, offset, p); err != nil {
		return err
	}
	d.counts.Writes++
	d.counts.BytesWritten += int64(len(p))
	return nil
}

// Erase forwards and, on success, counts the primitive and records the
// range.
func (d *Device) Erase(ctx context.Context, from, to uint32) error {
	if err := d.dev.Erase(ctx, from, to); err != nil {
		return err
	}
	d.counts.Erases++
	d.counts.BytesErased += int64(to - from)
	d.erased = append(d.erased, Range{From: from, To: to})
	return nil
}

// Counts returns the activity snapshot.
func (d *Device) Counts() Counts { return d.counts }

// EraseRanges returns the erased ranges, sorted and coalesced: adjacent
// and overlapping ranges merge into one.
func (d *Device) EraseRanges() []Range {
	if len(d.erased) == 0 {
		return nil
	}
	sorted := make([]Range, len(d.erased))
	copy(sorted, d.erased)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].From < sorted[j].From })

	out := sorted[:1]
	for _, r := range sorted[1:] {
		last := &out[len(out)-1]
		if r.From <= last.To {
			if r.To > last.To {
				last.To = r.To
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

// Reset clears counters and recorded ranges.
func (d *Device) Reset() {
	d.counts = Counts{}
	d.erased = d.erased[:0]
}

// MultiwriteDevice instruments a flash.MultiwriteDevice, preserving the
// multiwrite capability through the wrapper.
type MultiwriteDevice struct {
	*Device
}

// WrapMultiwrite instruments dev.
func WrapMultiwrite(dev flash.MultiwriteDevice) *MultiwriteDevice {
	return &MultiwriteDevice{Device: Wrap(dev)}
}

// MultiwriteCapable forwards the capability declaration.
func (d *MultiwriteDevice) MultiwriteCapable() {}
