//go:build darwin

package fileflash

import "golang.org/x/sys/unix"

// flushMapped syncs the mapped image. macOS has no fdatasync; F_FULLFSYNC
// pushes data past the drive cache for power-loss durability.
func (d *Flash) flushMapped() error {
	if len(d.data) == 0 {
		return nil
	}
	if err := unix.Msync(d.data, unix.MS_SYNC); err != nil {
		return err
	}
	_, err := unix.FcntlInt(d.f.Fd(), unix.F_FULLFSYNC, 0)
	return err
}
