package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newDumpCmd())
}

func newDumpCmd() *cobra.Command {
	var (
		offset uint32
		length int
	)
	cmd := &cobra.Command{
		Use:   "dump <image>",
		Short: "Hex-dump a byte range of an image",
		Long: `The dump command reads an arbitrary byte range through the engine's
stitched read path and prints it as a hex dump. Offset and length need no
alignment.

Example:
  flashctl dump dev.flash --offset 4093 --length 64`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args[0], offset, length)
		},
	}
	cmd.Flags().Uint32Var(&offset, "offset", 0, "Start offset in bytes")
	cmd.Flags().IntVar(&length, "length", 256, "Number of bytes to dump")
	return cmd
}

func runDump(path string, offset uint32, length int) error {
	img, err := openImage(path)
	if err != nil {
		return err
	}
	defer img.Close()

	if length < 0 || int(offset)+length > img.storage.Capacity() {
		return fmt.Errorf("range %d+%d exceeds capacity %d", offset, length, img.storage.Capacity())
	}

	data := make([]byte, length)
	if err := img.storage.Read(context.Background(), offset, data); err != nil {
		return err
	}
	img.printCounts()

	dumper := hex.Dumper(os.Stdout)
	defer dumper.Close()
	_, err = dumper.Write(data)
	return err
}
