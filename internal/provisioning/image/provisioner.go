// Package image produces the workload's container image with the registry's
// remote build tasks, so no local container runtime is required.
package image

import (
	"fmt"

	"github.com/cardioml/heartops/internal/platform/azure"
	"github.com/cardioml/heartops/internal/provisioning"
)

const phase = "image"

// Provisioner schedules a remote image build and waits for it to finish.
type Provisioner struct{}

// NewProvisioner creates an image provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name returns the phase name.
func (p *Provisioner) Name() string {
	return phase
}

// Provision resolves the image reference the workload will run and, unless
// the build is skipped, builds it remotely. The reference is recorded in
// state either way so later phases never depend on whether a build happened.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if ctx.State.Registry == nil {
		return fmt.Errorf("no registry in state, infrastructure provisioning must run first")
	}

	cfg := ctx.Config
	ctx.State.ImageRef = cfg.ImageRef(ctx.State.Registry.LoginServer)

	if cfg.Image.SkipBuild {
		ctx.Observer.Printf("[%s] Skipping build, reusing image %s", phase, ctx.State.ImageRef)
		return nil
	}

	provisioning.LogResourceCreating(ctx.Observer, phase, "image", ctx.State.ImageRef)

	runID, err := ctx.Infra.BuildImage(ctx, cfg.ResourceGroup, cfg.Registry.Name, azure.BuildRequest{
		SourceLocation: cfg.SourceLocation(),
		DockerfilePath: cfg.Image.Dockerfile,
		ImageName:      cfg.ImageName(),
	})
	if err != nil {
		return err
	}

	ctx.State.BuildRunID = runID
	provisioning.LogResourceCreated(ctx.Observer, phase, "image", ctx.State.ImageRef, runID)
	return nil
}
