package commands

import (
	"github.com/spf13/cobra"

	"github.com/cardioml/heartops/cmd/heartops/handlers"
)

// Init returns the command for interactively creating a deployment
// configuration.
//
// Flags:
//
//	--output, -o: Path to output file (default "heartops.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a deployment configuration",
		Long: `Interactively create a deployment configuration file.

This command guides you through configuring the deployment step by step.
It will ask about:

  - Project identity (name and subscription)
  - Placement (resource group and region)
  - Container registry and cluster names
  - Optional public identity (DNS label and zone)

Without a terminal a commented default configuration is written instead.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "heartops.yaml", "Output file path")

	return cmd
}
