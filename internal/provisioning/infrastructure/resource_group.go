package infrastructure

import (
	"github.com/cardioml/heartops/internal/provisioning"
)

// ProvisionResourceGroup ensures the resource group exists in the target
// location.
func (p *Provisioner) ProvisionResourceGroup(ctx *provisioning.Context) error {
	name := ctx.Config.ResourceGroup

	created, err := ctx.Infra.EnsureResourceGroup(ctx, name, ctx.Config.Location)
	if err != nil {
		return err
	}

	if created {
		provisioning.LogResourceCreated(ctx.Observer, phase, "resource group", name, name)
	} else {
		provisioning.LogResourceExists(ctx.Observer, phase, "resource group", name, name)
	}
	return nil
}
