package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/cardioml/heartops/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// runWizard runs the interactive configuration wizard.
	runWizard = config.RunWizard

	// writeConfigYAML writes the config to a file.
	writeConfigYAML = config.WriteYAML

	// isInteractive reports whether stdout is attached to a terminal.
	isInteractive = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
)

// defaultConfigYAML is written when init runs without a terminal, for example
// in CI. The placeholders match the wizard's defaults.
const defaultConfigYAML = `# heartops deployment configuration
project_name: heart-disease-api
subscription_id: ""          # empty falls back to AZURE_SUBSCRIPTION_ID
resource_group: heartops-rg
location: westeurope

registry:
  name: heartopsacr          # globally unique, alphanumeric
  sku: Basic

cluster:
  name: heartops-aks
  node_count: 1

image:
  source_repo: https://github.com/cardioml/heart-disease-api.git
  source_ref: main

workload:
  namespace: heart-disease
  replicas: 2

# Optional public identity. Leave both empty to keep the dynamic address.
network:
  dns_label: ""
  dns:
    zone: ""
`

// Init creates a deployment configuration, interactively when a terminal is
// attached and from commented defaults otherwise.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	if !isInteractive() {
		fmt.Printf("No terminal detected, writing default configuration to %s\n", outputPath)
		if err := writeFile(outputPath, []byte(defaultConfigYAML), 0600); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Printf("Edit the file, then run 'heartops deploy'.\n")
		return nil
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return err
	}

	cfg := result.ToConfig()
	if err := writeConfigYAML(cfg, outputPath); err != nil {
		return err
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("heartops - Heart Disease API on Azure")
	fmt.Println("=====================================")
	fmt.Println()
	fmt.Println("This wizard creates a deployment configuration with sensible defaults.")
	fmt.Println("Everything can be edited in the generated YAML afterwards.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	// Summary
	fmt.Println("Deployment Summary")
	fmt.Println("------------------")
	fmt.Printf("  Project:        %s\n", cfg.ProjectName)
	fmt.Printf("  Resource group: %s (%s)\n", cfg.ResourceGroup, cfg.Location)
	fmt.Printf("  Registry:       %s\n", cfg.LoginServer())
	fmt.Printf("  Cluster:        %s (%d nodes)\n", cfg.Cluster.Name, cfg.Cluster.NodeCount)
	if cfg.StaticBindEnabled() {
		fmt.Printf("  DNS label:      %s\n", cfg.Network.DNSLabel)
	}
	if cfg.DNSEnabled() {
		fmt.Printf("  DNS record:     %s\n", cfg.RecordFQDN())
	}
	fmt.Println()

	// Next steps
	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Println("  1. Sign in to Azure:")
	fmt.Println("     az login")
	fmt.Println()
	fmt.Printf("  2. Review %s if needed\n", outputPath)
	fmt.Println()
	fmt.Println("  3. Deploy the API:")
	fmt.Printf("     heartops deploy\n")
	fmt.Println()
}
