//go:build !unix

// Package mmfile provides platform-specific helpers for memory-mapping
// flash image files read-write.
package mmfile

import "os"

// MapRW reports ErrUnsupported where no mmap implementation exists;
// callers fall back to buffered file I/O.
func MapRW(_ *os.File) ([]byte, func() error, error) {
	return nil, nil, ErrUnsupported
}
