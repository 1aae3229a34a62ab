// Package testutil provides shared helpers for flashkit tests.
package testutil

import "github.com/joshuapare/flashkit/flash"

// Pattern returns n deterministic, non-repeating-looking bytes derived
// from seed. The same (n, seed) always produces the same bytes.
func Pattern(n int, seed byte) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = (byte(i)*7 + seed) ^ 0x5A
	}
	return p
}

// Erased returns n bytes of erased flash (all ones).
func Erased(n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = 0xFF
	}
	return p
}

// Geometries is a spread of device shapes exercised by cross-geometry
// property tests: byte-granular, word-granular, uniform, and a realistic
// serial-NOR shape.
func Geometries() []flash.Geometry {
	return []flash.Geometry{
		{ReadSize: 1, WriteSize: 1, EraseSize: 16},
		{ReadSize: 1, WriteSize: 4, EraseSize: 16},
		{ReadSize: 4, WriteSize: 4, EraseSize: 4},
		{ReadSize: 4, WriteSize: 4, EraseSize: 64},
		{ReadSize: 1, WriteSize: 256, EraseSize: 4096},
	}
}
