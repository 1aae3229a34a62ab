package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newReadCmd())
}

func newReadCmd() *cobra.Command {
	var (
		offset  uint32
		length  int
		outPath string
	)
	cmd := &cobra.Command{
		Use:   "read <image>",
		Short: "Read an arbitrary byte range into a file",
		Long: `The read command extracts a byte range at any offset and length and
writes it to a file (or stdout with --out -).

Example:
  flashctl read dev.flash --offset 4093 --length 300 --out part.bin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(args[0], offset, length, outPath)
		},
	}
	cmd.Flags().Uint32Var(&offset, "offset", 0, "Start offset in bytes")
	cmd.Flags().IntVar(&length, "length", 0, "Number of bytes to read (required)")
	cmd.Flags().StringVar(&outPath, "out", "-", "Destination file, - for stdout")
	_ = cmd.MarkFlagRequired("length")
	return cmd
}

func runRead(path string, offset uint32, length int, outPath string) error {
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

	if outPath == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return err
	}
	printInfo("Read %d bytes at %d into %s\n", length, offset, outPath)
	return nil
}
