// Package profile describes flash device geometries by name.
//
// A profile bundles the granularity constants and capacity of a part so
// that tooling can construct devices without hardcoding numbers. Profiles
// ship as YAML, either one per document (image sidecars) or as a list
// (profile catalogs), and a small catalog of common serial-NOR parts is
// built in.
package profile

import (
	"fmt"
	"io"
	"os"

	"github.com/joshuapare/flashkit/flash"
	"gopkg.in/yaml.v3"
)

// Profile names a device geometry.
type Profile struct {
	Name       string `yaml:"name"`
	ReadSize   int    `yaml:"read_size"`
	WriteSize  int    `yaml:"write_size"`
	EraseSize  int    `yaml:"erase_size"`
	Capacity   int    `yaml:"capacity"`
	Multiwrite bool   `yaml:"multiwrite,omitempty"`
}

// Geometry returns the granularity constants of the profile.
func (p Profile) Geometry() flash.Geometry {
	return flash.Geometry{ReadSize: p.ReadSize, WriteSize: p.WriteSize, EraseSize: p.EraseSize}
}

// Validate reports whether the profile describes a usable device.
func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile: missing name")
	}
	if err := p.Geometry().Validate(p.Capacity); err != nil {
		return fmt.Errorf("profile %q: %w", p.Name, err)
	}
	return nil
}

// Builtins returns the built-in catalog of common serial-NOR parts.
func Builtins() []Profile {
	return []Profile{
		{Name: "w25q64", ReadSize: 1, WriteSize: 256, EraseSize: 4096, Capacity: 8 << 20, Multiwrite: true},
		{Name: "w25q128", ReadSize: 1, WriteSize: 256, EraseSize: 4096, Capacity: 16 << 20, Multiwrite: true},
		{Name: "mx25l64", ReadSize: 1, WriteSize: 256, EraseSize: 4096, Capacity: 8 << 20, Multiwrite: true},
		{Name: "gd25q32", ReadSize: 1, WriteSize: 256, EraseSize: 4096, Capacity: 4 << 20, Multiwrite: true},
		// Word-granular internal flash, strict write-once because of ECC.
		{Name: "stm32-internal", ReadSize: 4, WriteSize: 8, EraseSize: 2048, Capacity: 1 << 20},
	}
}

// Lookup finds a built-in profile by name.
func Lookup(name string) (Profile, bool) {
	for _, p := range Builtins() {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}

// Load decodes a YAML catalog: a sequence of profiles. Every entry must
// validate.
func Load(r io.Reader) ([]Profile, error) {
	var out []Profile
	if err := yaml.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("profile: decode catalog: %w", err)
	}
	for _, p := range out {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// LoadFile reads a YAML catalog from disk.
func LoadFile(path string) ([]Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// ReadFile reads a single-profile YAML document, as written next to
// image files.
func ReadFile(path string) (Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, err
	}
	var p Profile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Profile{}, fmt.Errorf("profile: decode %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// WriteFile writes a single-profile YAML document.
func WriteFile(path string, p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	raw, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
