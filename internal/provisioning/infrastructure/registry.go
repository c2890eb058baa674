package infrastructure

import (
	"github.com/cardioml/heartops/internal/provisioning"
)

// ProvisionRegistry ensures the container registry and records its identity
// in state for the image and cluster steps.
func (p *Provisioner) ProvisionRegistry(ctx *provisioning.Context) error {
	name := ctx.Config.Registry.Name

	registry, created, err := ctx.Infra.EnsureRegistry(ctx, ctx.Config.ResourceGroup, name, ctx.Config.Location, ctx.Config.Registry.SKU)
	if err != nil {
		return err
	}
	ctx.State.Registry = registry

	if created {
		provisioning.LogResourceCreated(ctx.Observer, phase, "container registry", name, registry.ID)
	} else {
		provisioning.LogResourceExists(ctx.Observer, phase, "container registry", name, registry.ID)
	}
	return nil
}
