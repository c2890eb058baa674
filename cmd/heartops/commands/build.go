package commands

import (
	"github.com/spf13/cobra"

	"github.com/cardioml/heartops/cmd/heartops/handlers"
)

// Build returns the command for running the remote image build on its own.
//
// Optional flags:
//
//	--config, -c: Path to deployment configuration YAML (default: heartops.yaml)
func Build() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the container image in the registry",
		Long: `Build the heart-disease API container image.

The build runs remotely in the container registry from the configured git
source, no local Docker daemon is involved. The registry is created when it
does not exist yet; the cluster is left untouched.

Examples:
  # Build using heartops.yaml in current directory
  heartops build

  # Build using a specific config file
  heartops build -c production.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Build(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: heartops.yaml)")

	return cmd
}
