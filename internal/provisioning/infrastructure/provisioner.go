// Package infrastructure reconciles the cloud resources the deployment
// runs on: resource group, container registry and managed cluster.
package infrastructure

import (
	"github.com/cardioml/heartops/internal/provisioning"
)

const phase = "infrastructure"

// Provisioner handles infrastructure provisioning.
type Provisioner struct{}

// NewProvisioner creates a new infrastructure provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if err := p.ProvisionResourceGroup(ctx); err != nil {
		return err
	}
	if err := p.ProvisionRegistry(ctx); err != nil {
		return err
	}
	return p.ProvisionCluster(ctx)
}
