//go:build unix && !darwin

package fileflash

import "golang.org/x/sys/unix"

// flushMapped syncs the mapped image: msync the pages, then fdatasync the
// descriptor.
func (d *Flash) flushMapped() error {
	if len(d.data) == 0 {
		return nil
	}
	if err := unix.Msync(d.data, unix.MS_SYNC); err != nil {
		return err
	}
	return unix.Fdatasync(int(d.f.Fd()))
}
