package commands

import (
	"github.com/spf13/cobra"

	"github.com/cardioml/heartops/cmd/heartops/handlers"
)

// Smoke returns the command for probing a deployed API end to end.
//
// Optional flags:
//
//	--config, -c: Path to deployment configuration YAML (default: heartops.yaml)
//	--address: Probe this address directly instead of discovering it
func Smoke() *cobra.Command {
	var (
		configPath string
		address    string
	)

	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Probe the deployed API with a sample prediction",
		Long: `Probe the deployed heart-disease API.

Checks the health endpoint, then requests a prediction for a known patient
record and prints the result. Without --address the service address is
discovered through the cluster.

Examples:
  # Discover the service address and probe it
  heartops smoke

  # Probe a known address
  heartops smoke --address 20.50.60.70`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Smoke(cmd.Context(), configPath, address)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: heartops.yaml)")
	cmd.Flags().StringVar(&address, "address", "", "Service address to probe (skips discovery)")

	return cmd
}
