//go:build !unix

package fileflash

// flushMapped is unreachable off unix: Open falls back to buffered mode
// there, and Flush handles that path directly.
func (d *Flash) flushMapped() error {
	return d.f.Sync()
}
