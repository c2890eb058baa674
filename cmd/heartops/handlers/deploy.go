// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/cardioml/heartops/internal/config"
	"github.com/cardioml/heartops/internal/orchestration"
	"github.com/cardioml/heartops/internal/platform/azure"
	"github.com/cardioml/heartops/internal/platform/kube"
	"github.com/cardioml/heartops/internal/provisioning"
)

// Reconciler interface for testing - matches orchestration.Reconciler.
type Reconciler interface {
	Reconcile(ctx context.Context) (*provisioning.State, error)
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newInfraClient creates an ARM-backed infrastructure client.
	newInfraClient = func(subscriptionID string) (azure.InfrastructureManager, error) {
		return azure.NewRealClient(subscriptionID)
	}

	// newReconciler creates the full deployment reconciler.
	newReconciler = func(infra azure.InfrastructureManager, cfg *config.Config) Reconciler {
		return orchestration.NewReconciler(infra, cfg)
	}

	// newKubeClient builds a cluster client from kubeconfig bytes.
	newKubeClient = kube.NewFromKubeconfig

	// loadConfigFile loads config from file (for testing injection).
	loadConfigFile = config.LoadFile

	// writeFile writes data to a file (for testing injection).
	writeFile = os.WriteFile

	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}
)

// Deploy provisions the Azure infrastructure and rolls out the inference API.
//
// This function runs the complete deployment workflow:
//  1. Loads and validates the deployment configuration
//  2. Initializes the Azure client for the configured subscription
//  3. Reconciles infrastructure (resource group, registry, managed cluster)
//  4. Builds the container image remotely unless skipped
//  5. Applies the workload manifests to the cluster
//  6. Reconciles the service's public address and DNS record
//
// Authentication goes through the Azure default credential chain, so a
// logged-in CLI session, environment credentials or a managed identity all
// work without further flags.
func Deploy(ctx context.Context, configPath string, skipBuild bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if skipBuild {
		cfg.Image.SkipBuild = true
	}

	log.Printf("Deploying %s to resource group %s (%s)", cfg.ProjectName, cfg.ResourceGroup, cfg.Location)

	infra, err := newInfraClient(cfg.SubscriptionID)
	if err != nil {
		return fmt.Errorf("failed to initialize Azure client: %w", err)
	}

	state, err := newReconciler(infra, cfg).Reconcile(ctx)
	if err != nil {
		return fmt.Errorf("deployment failed: %w", err)
	}

	printDeploySuccess(cfg, state)
	return nil
}

// loadConfig loads and validates the deployment configuration.
// If configPath is empty, it looks for heartops.yaml in the current directory.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		if !fileExists(config.DefaultConfigFile) {
			return nil, fmt.Errorf("no config file found (%s)\nRun 'heartops init' to create one", config.DefaultConfigFile)
		}
		configPath = config.DefaultConfigFile
	}

	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// printDeploySuccess outputs the deployment result and next steps for the user.
func printDeploySuccess(cfg *config.Config, state *provisioning.State) {
	fmt.Printf("\nDeployment complete!\n\n")
	fmt.Printf("  Registry: %s\n", cfg.LoginServer())
	fmt.Printf("  Cluster:  %s\n", cfg.Cluster.Name)
	fmt.Printf("  Image:    %s\n", state.ImageRef)

	if state.AddressState == provisioning.AddressResolved {
		fmt.Printf("  Address:  http://%s\n", state.ExternalAddress)
	} else {
		fmt.Printf("  Address:  pending, check later with 'heartops status'\n")
	}
	if state.RecordFQDN != "" {
		fmt.Printf("  DNS:      http://%s\n", state.RecordFQDN)
	}

	fmt.Printf("\nNext steps:\n")
	fmt.Printf("  heartops status   # inspect the workload\n")
	fmt.Printf("  heartops smoke    # probe the prediction endpoint\n")
}
