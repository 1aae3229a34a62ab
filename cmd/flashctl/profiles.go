package main

import (
	"encoding/json"
	"os"

	"github.com/joshuapare/flashkit/flash/profile"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newProfilesCmd())
}

func newProfilesCmd() *cobra.Command {
	var catalogPath string
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List known device profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfiles(catalogPath)
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Additional YAML profile catalog")
	return cmd
}

func runProfiles(catalogPath string) error {
	profiles := profile.Builtins()
	if catalogPath != "" {
		extra, err := profile.LoadFile(catalogPath)
		if err != nil {
			return err
		}
		profiles = append(profiles, extra...)
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(profiles)
	}
	printInfo("%-16s %10s %6s %6s %6s  %s\n", "NAME", "CAPACITY", "READ", "WRITE", "ERASE", "MULTIWRITE")
	for _, p := range profiles {
		printInfo("%-16s %10d %6d %6d %6d  %v\n",
			p.Name, p.Capacity, p.ReadSize, p.WriteSize, p.EraseSize, p.Multiwrite)
	}
	return nil
}
