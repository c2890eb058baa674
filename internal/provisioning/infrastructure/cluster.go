package infrastructure

import (
	"fmt"

	"github.com/cardioml/heartops/internal/platform/azure"
	"github.com/cardioml/heartops/internal/provisioning"
)

// ProvisionCluster ensures the managed cluster, grants its kubelet identity
// pull access on the registry and stores the admin credentials in state.
//
// Node size selection only happens when the cluster does not exist yet: a
// missing preferred size must fail the run before anything is created, and
// must not fail a rerun against a cluster that is already there.
func (p *Provisioner) ProvisionCluster(ctx *provisioning.Context) error {
	name := ctx.Config.Cluster.Name
	resourceGroup := ctx.Config.ResourceGroup

	cluster, err := ctx.Infra.GetCluster(ctx, resourceGroup, name)
	if err != nil {
		return err
	}

	if cluster != nil {
		ctx.State.Cluster = cluster
		provisioning.LogResourceExists(ctx.Observer, phase, "managed cluster", name, cluster.FQDN)
	} else {
		if err := p.selectNodeSize(ctx); err != nil {
			return err
		}

		spec := azure.ClusterSpec{
			Location:   ctx.Config.Location,
			DNSPrefix:  ctx.Config.Cluster.DNSPrefix,
			NodeCount:  ctx.Config.Cluster.NodeCount,
			NodeVMSize: ctx.State.NodeVMSize,
		}
		provisioning.LogResourceCreating(ctx.Observer, phase, "managed cluster", name)
		cluster, _, err = ctx.Infra.EnsureCluster(ctx, resourceGroup, name, spec)
		if err != nil {
			return err
		}
		ctx.State.Cluster = cluster
		provisioning.LogResourceCreated(ctx.Observer, phase, "managed cluster", name, cluster.FQDN)
	}

	if ctx.State.Registry == nil {
		return fmt.Errorf("no registry in state, registry provisioning must run before the cluster")
	}
	if err := ctx.Infra.AttachRegistry(ctx, ctx.State.Registry.ID, ctx.State.Cluster.KubeletPrincipalID); err != nil {
		return err
	}

	kubeconfig, err := ctx.Infra.AdminCredentials(ctx, resourceGroup, name)
	if err != nil {
		return err
	}
	ctx.State.Kubeconfig = kubeconfig
	return nil
}
