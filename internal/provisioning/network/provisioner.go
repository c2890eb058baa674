// Package network reconciles the public identity of the deployed service:
// an optional reserved address bound to the load balancer, the externally
// visible service address, and an optional DNS record pointing at it.
package network

import (
	"github.com/cardioml/heartops/internal/provisioning"
)

const phase = "network"

// Provisioner resolves how the service is reached from outside the cluster.
type Provisioner struct{}

// NewProvisioner creates a network provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name returns the phase name.
func (p *Provisioner) Name() string {
	return phase
}

// Provision binds the optional reserved address, waits for the service to
// expose an external address, and reconciles the DNS record against it.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if err := p.BindStaticAddress(ctx); err != nil {
		return err
	}
	if err := p.ResolveAddress(ctx); err != nil {
		return err
	}
	return p.ReconcileDNS(ctx)
}
