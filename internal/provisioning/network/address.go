package network

import (
	"fmt"

	"github.com/cardioml/heartops/internal/provisioning"
	"github.com/cardioml/heartops/internal/util/retry"
)

// BindStaticAddress reserves a public IP carrying the configured DNS label
// and binds it to the service. The binding is best effort: any failure past
// the preconditions downgrades to the dynamic address the load balancer
// assigns on its own, and the run keeps going.
func (p *Provisioner) BindStaticAddress(ctx *provisioning.Context) error {
	cfg := ctx.Config
	if !cfg.StaticBindEnabled() {
		ctx.Observer.Printf("[%s] No DNS label configured, keeping the dynamic service address", phase)
		return nil
	}
	if ctx.State.Cluster == nil {
		return fmt.Errorf("no cluster in state, infrastructure provisioning must run first")
	}

	// Reserved IPs for cluster load balancers live in the node resource
	// group, where the cluster identity already has network permissions.
	publicIP, created, err := ctx.Infra.EnsurePublicIP(ctx, ctx.State.Cluster.NodeResourceGroup, cfg.StaticIPName(), cfg.Location, cfg.Network.DNSLabel)
	if err != nil {
		provisioning.LogValidationWarning(ctx.Observer, phase,
			fmt.Sprintf("could not reserve static address %s: %v, continuing with a dynamic address", cfg.StaticIPName(), err))
		return nil
	}
	if created {
		provisioning.LogResourceCreated(ctx.Observer, phase, "public-ip", publicIP.Name, publicIP.Address)
	} else {
		provisioning.LogResourceExists(ctx.Observer, phase, "public-ip", publicIP.Name, publicIP.Address)
	}

	if publicIP.Address == "" {
		provisioning.LogValidationWarning(ctx.Observer, phase,
			fmt.Sprintf("reserved address %s has no allocation yet, continuing with a dynamic address", publicIP.Name))
		return nil
	}

	kubeClient, err := ctx.KubeClient()
	if err != nil {
		return err
	}
	if err := kubeClient.BindServiceAddress(ctx, cfg.Workload.Namespace, cfg.ProjectName, publicIP.Address, cfg.Network.DNSLabel); err != nil {
		provisioning.LogValidationWarning(ctx.Observer, phase,
			fmt.Sprintf("could not bind %s to service %s: %v, continuing with a dynamic address", publicIP.Address, cfg.ProjectName, err))
		return nil
	}

	provisioning.LogResourceUpdated(ctx.Observer, phase, "service", cfg.ProjectName)
	return nil
}

// ResolveAddress polls the service until the load balancer reports an
// external address. Running out of attempts is not an error: the address
// state is marked unresolved and the steps that depend on it skip.
func (p *Provisioner) ResolveAddress(ctx *provisioning.Context) error {
	kubeClient, err := ctx.KubeClient()
	if err != nil {
		return err
	}

	cfg := ctx.Config
	ctx.State.AddressState = provisioning.AddressPending

	attempts := ctx.Timeouts.AddressAttempts
	attempt := 0
	var address string

	pollErr := retry.WithConstantBackoff(ctx, attempts, ctx.Timeouts.AddressDelay, func() (bool, error) {
		attempt++
		ctx.Observer.Progress(phase, attempt, attempts)

		current, err := kubeClient.ServiceExternalAddress(ctx, cfg.Workload.Namespace, cfg.ProjectName)
		if err != nil {
			return false, err
		}
		if current == "" {
			return false, nil
		}
		address = current
		return true, nil
	})
	if pollErr != nil {
		if ctx.Err() != nil {
			return pollErr
		}
		ctx.State.AddressState = provisioning.AddressUnresolved
		provisioning.LogValidationWarning(ctx.Observer, phase,
			fmt.Sprintf("service has no external address after %d attempts: %v", attempts, pollErr))
		return nil
	}

	ctx.State.ExternalAddress = address
	ctx.State.AddressState = provisioning.AddressResolved
	ctx.Observer.Printf("[%s] Service reachable at %s", phase, address)
	return nil
}
