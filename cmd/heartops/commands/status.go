package commands

import (
	"github.com/spf13/cobra"

	"github.com/cardioml/heartops/cmd/heartops/handlers"
)

// Status returns the command for inspecting the deployed workload.
//
// Optional flags:
//
//	--config, -c: Path to deployment configuration YAML (default: heartops.yaml)
//	--json: Output machine-readable JSON instead of the styled report
func Status() *cobra.Command {
	var (
		configPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the state of the deployed workload",
		Long: `Show deployments, pods and services in the workload namespace.

Cluster credentials are fetched fresh from the managed cluster, so this works
from any machine with Azure access, no local kubeconfig required.

Examples:
  # Styled status report
  heartops status

  # Machine-readable output
  heartops status --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Status(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: heartops.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output status as JSON")

	return cmd
}
