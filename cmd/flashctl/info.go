package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <image>",
		Short: "Report an image's geometry and fill statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args[0])
		},
	}
	return cmd
}

type imageInfo struct {
	Profile    string `json:"profile"`
	Capacity   int    `json:"capacity"`
	ReadSize   int    `json:"read_size"`
	WriteSize  int    `json:"write_size"`
	EraseSize  int    `json:"erase_size"`
	Pages      int    `json:"pages"`
	Multiwrite bool   `json:"multiwrite"`

	ErasedBytes int `json:"erased_bytes"`
	ErasedPages int `json:"erased_pages"`
}

func runInfo(path string) error {
	img, err := openImage(path)
	if err != nil {
		return err
	}
	defer img.Close()

	p := img.dev.Profile()
	info := imageInfo{
		Profile:    p.Name,
		Capacity:   p.Capacity,
		ReadSize:   p.ReadSize,
		WriteSize:  p.WriteSize,
		EraseSize:  p.EraseSize,
		Pages:      p.Capacity / p.EraseSize,
		Multiwrite: p.Multiwrite,
	}

	// Fill statistics straight off the image: a page counts as erased when
	// every byte is still 0xFF.
	buf := make([]byte, p.EraseSize)
	ctx := context.Background()
	for page := 0; page < info.Pages; page++ {
		if err := img.dev.Read(ctx, uint32(page*p.EraseSize), buf); err != nil {
			return err
		}
		erased := true
		for _, b := range buf {
			if b == 0xFF {
				info.ErasedBytes++
			} else {
				erased = false
			}
		}
		if erased {
			info.ErasedPages++
		}
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(info)
	}
	printInfo("Profile:     %s\n", info.Profile)
	printInfo("Capacity:    %d bytes\n", info.Capacity)
	printInfo("Granularity: read %d / write %d / erase %d\n", info.ReadSize, info.WriteSize, info.EraseSize)
	printInfo("Pages:       %d (%d fully erased)\n", info.Pages, info.ErasedPages)
	printInfo("Erased:      %d bytes\n", info.ErasedBytes)
	printInfo("Multiwrite:  %v\n", info.Multiwrite)
	return nil
}
