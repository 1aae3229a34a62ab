package main

import (
	"fmt"

	"github.com/joshuapare/flashkit/flash"
	"github.com/joshuapare/flashkit/flash/fileflash"
	"github.com/joshuapare/flashkit/flash/profile"
	"github.com/joshuapare/flashkit/flash/rmw"
	"github.com/joshuapare/flashkit/flash/trace"
)

// openedImage bundles an image with an RMW engine and the traced device
// underneath it.
type openedImage struct {
	dev     *fileflash.Flash
	traced  *trace.MultiwriteDevice
	storage flash.Storage
}

// openImage opens an image and builds the engine its profile calls for:
// the erase-avoiding engine for multiwrite parts, the always-erase engine
// for strict ones.
func openImage(path string) (*openedImage, error) {
	dev, err := fileflash.Open(path)
	if err != nil {
		return nil, err
	}
	traced := trace.WrapMultiwrite(dev)
	mergeBuf := make([]byte, dev.Geometry().EraseSize)

	var storage flash.Storage
	if dev.Profile().Multiwrite {
		storage, err = rmw.NewMultiwrite(traced, mergeBuf)
	} else {
		storage, err = rmw.New(traced, mergeBuf)
	}
	if err != nil {
		dev.Close()
		return nil, err
	}
	return &openedImage{dev: dev, traced: traced, storage: storage}, nil
}

// Close flushes and releases the image.
func (img *openedImage) Close() error {
	return img.dev.Close()
}

// printCounts reports primitive traffic in verbose mode.
func (img *openedImage) printCounts() {
	c := img.traced.Counts()
	printVerbose("primitives: %d reads (%d B), %d writes (%d B), %d erases (%d B)\n",
		c.Reads, c.BytesRead, c.Writes, c.BytesWritten, c.Erases, c.BytesErased)
}

// resolveProfile finds a profile by name in the catalog file if one is
// given, else among the builtins.
func resolveProfile(name, catalogPath string) (profile.Profile, error) {
	if catalogPath != "" {
		catalog, err := profile.LoadFile(catalogPath)
		if err != nil {
			return profile.Profile{}, err
		}
		for _, p := range catalog {
			if p.Name == name {
				return p, nil
			}
		}
		return profile.Profile{}, fmt.Errorf("profile %q not in catalog %s", name, catalogPath)
	}
	p, ok := profile.Lookup(name)
	if !ok {
		return profile.Profile{}, fmt.Errorf("unknown profile %q (see 'flashctl profiles')", name)
	}
	return p, nil
}
