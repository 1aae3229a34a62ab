package main

import (
	"github.com/joshuapare/flashkit/flash/fileflash"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newCreateCmd())
}

func newCreateCmd() *cobra.Command {
	var (
		profileName string
		catalogPath string
	)
	cmd := &cobra.Command{
		Use:   "create <image>",
		Short: "Create a fresh, fully-erased flash image",
		Long: `The create command writes a new image file of all ones (erased flash)
sized for the chosen device profile, along with a YAML sidecar recording
the geometry.

Example:
  flashctl create dev.flash --profile w25q64
  flashctl create dev.flash --profile custom --catalog parts.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProfile(profileName, catalogPath)
			if err != nil {
				return err
			}
			printVerbose("Creating %s: %d bytes, erase %d, write %d, read %d\n",
				args[0], p.Capacity, p.EraseSize, p.WriteSize, p.ReadSize)
			if err := fileflash.Create(args[0], p); err != nil {
				return err
			}
			printInfo("Created %s (%s, %d bytes)\n", args[0], p.Name, p.Capacity)
			return nil
		},
	}
	cmd.Flags().StringVar(&profileName, "profile", "", "Device profile name (required)")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "YAML profile catalog to search")
	_ = cmd.MarkFlagRequired("profile")
	return cmd
}
