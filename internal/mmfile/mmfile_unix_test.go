//go:build unix

package mmfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapRW_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image")
	require.NoError(t, os.WriteFile(path, make([]byte, 4096), 0o644))

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	require.NoError(t, err)
	defer f.Close()

	data, cleanup, err := MapRW(f)
	require.NoError(t, err)
	require.Len(t, data, 4096)

	// Writes through the mapping land in the file.
	data[10] = 0xAB
	require.NoError(t, cleanup())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, byte(0xAB), raw[10])
}

func TestMapRW_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	data, cleanup, err := MapRW(f)
	require.NoError(t, err)
	assert.Empty(t, data)
	assert.NoError(t, cleanup())
}
