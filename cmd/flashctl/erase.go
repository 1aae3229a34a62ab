package main

import (
	"context"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newEraseCmd())
}

func newEraseCmd() *cobra.Command {
	var (
		from uint32
		to   uint32
		all  bool
	)
	cmd := &cobra.Command{
		Use:   "erase <image>",
		Short: "Erase a page-aligned range (or the whole image)",
		Long: `The erase command resets a range to all ones. Unlike write, erase is a
raw primitive: the bounds must be aligned to the erase granularity.

Example:
  flashctl erase dev.flash --from 4096 --to 8192
  flashctl erase dev.flash --all`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runErase(args[0], from, to, all)
		},
	}
	cmd.Flags().Uint32Var(&from, "from", 0, "Range start (erase-aligned)")
	cmd.Flags().Uint32Var(&to, "to", 0, "Range end, exclusive (erase-aligned)")
	cmd.Flags().BoolVar(&all, "all", false, "Erase the entire image")
	return cmd
}

func runErase(path string, from, to uint32, all bool) error {
	img, err := openImage(path)
	if err != nil {
		return err
	}
	defer img.Close()

	if all {
		from, to = 0, uint32(img.dev.Capacity())
	}
	if err := img.traced.Erase(context.Background(), from, to); err != nil {
		return err
	}
	printInfo("Erased [%d, %d)\n", from, to)
	return nil
}
