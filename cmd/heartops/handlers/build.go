package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/cardioml/heartops/internal/provisioning"
	"github.com/cardioml/heartops/internal/provisioning/image"
)

// Build runs the remote container image build without touching the cluster.
//
// The registry is ensured first so a fresh subscription only needs the
// resource group to exist; everything else about the build is identical to
// the image step of 'heartops deploy'.
func Build(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	// An explicit build is never skipped, whatever the config says.
	cfg.Image.SkipBuild = false

	infra, err := newInfraClient(cfg.SubscriptionID)
	if err != nil {
		return fmt.Errorf("failed to initialize Azure client: %w", err)
	}

	pctx := provisioning.NewContext(ctx, cfg, infra)

	registry, created, err := infra.EnsureRegistry(pctx, cfg.ResourceGroup, cfg.Registry.Name, cfg.Location, cfg.Registry.SKU)
	if err != nil {
		return fmt.Errorf("failed to ensure registry %q: %w", cfg.Registry.Name, err)
	}
	if created {
		log.Printf("Created registry %s", registry.LoginServer)
	}
	pctx.State.Registry = registry

	if err := provisioning.NewPipeline(image.NewProvisioner()).Run(pctx); err != nil {
		return err
	}

	printBuildSuccess(pctx.State)
	return nil
}

// printBuildSuccess outputs the built image reference.
func printBuildSuccess(state *provisioning.State) {
	fmt.Printf("\nImage ready: %s\n", state.ImageRef)
	if state.BuildRunID != "" {
		fmt.Printf("  Build run: %s\n", state.BuildRunID)
	}
	fmt.Printf("\nDeploy it with 'heartops deploy --skip-build'.\n")
}
