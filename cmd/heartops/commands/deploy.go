package commands

import (
	"github.com/spf13/cobra"

	"github.com/cardioml/heartops/cmd/heartops/handlers"
)

// Deploy returns the command for provisioning and deploying the API.
//
// This command runs the complete deployment pass: resource group, container
// registry and managed cluster provisioning, the remote image build, the
// workload manifests and the network identity reconciliation. Every step is
// idempotent, so re-running converges the deployment instead of duplicating
// resources.
//
// Optional flags:
//
//	--config, -c: Path to deployment configuration YAML (default: heartops.yaml)
//	--skip-build: Reuse the previously built image instead of rebuilding
//
// Environment variables:
//
//	AZURE_SUBSCRIPTION_ID: Subscription to deploy into when the config omits it
func Deploy() *cobra.Command {
	var (
		configPath string
		skipBuild  bool
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Create or update the full deployment",
		Long: `Create or update the heart-disease API deployment.

This command provisions all Azure resources, builds the container image
remotely in the registry, applies the Kubernetes manifests and points the
configured DNS record at the service.

If no config file is specified, it looks for heartops.yaml in the current
directory. Use 'heartops init' to create a configuration file.

Examples:
  # Deploy using heartops.yaml in current directory
  heartops deploy

  # Deploy using a specific config file
  heartops deploy -c production.yaml

  # Re-deploy without rebuilding the image
  heartops deploy --skip-build`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), configPath, skipBuild)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: heartops.yaml)")
	cmd.Flags().BoolVar(&skipBuild, "skip-build", false, "Reuse the existing image instead of rebuilding")

	return cmd
}
