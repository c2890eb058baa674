package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/authorization/armauthorization/v2"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice/v6"
	"github.com/google/uuid"
)

// acrPullRoleID is the built-in AcrPull role definition, identical in every
// Azure subscription.
const acrPullRoleID = "7f951dda-4ed3-4680-a7ca-43fe172d538d"

const systemPoolName = "nodepool1"

// GetCluster returns the managed cluster, or nil when it does not exist.
func (c *RealClient) GetCluster(ctx context.Context, resourceGroup, name string) (*Cluster, error) {
	resp, err := c.managedClusters.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get managed cluster %q: %w", name, err)
	}
	return clusterFromManaged(resp.ManagedCluster), nil
}

// EnsureCluster creates the managed cluster when absent and returns its
// identity either way. Creation blocks until the cluster is provisioned.
func (c *RealClient) EnsureCluster(ctx context.Context, resourceGroup, name string, spec ClusterSpec) (*Cluster, bool, error) {
	op := &EnsureOperation[armcontainerservice.ManagedCluster]{
		ResourceType: "managed cluster",
		Name:         name,

		Get: func(ctx context.Context) (armcontainerservice.ManagedCluster, error) {
			resp, err := c.managedClusters.Get(ctx, resourceGroup, name, nil)
			return resp.ManagedCluster, err
		},
		Create: func(ctx context.Context) (armcontainerservice.ManagedCluster, error) {
			ctx, cancel := c.provisionCtx(ctx)
			defer cancel()

			poller, err := c.managedClusters.BeginCreateOrUpdate(ctx, resourceGroup, name, armcontainerservice.ManagedCluster{
				Location: to.Ptr(spec.Location),
				Identity: &armcontainerservice.ManagedClusterIdentity{
					Type: to.Ptr(armcontainerservice.ResourceIdentityTypeSystemAssigned),
				},
				Properties: &armcontainerservice.ManagedClusterProperties{
					DNSPrefix: to.Ptr(spec.DNSPrefix),
					AgentPoolProfiles: []*armcontainerservice.ManagedClusterAgentPoolProfile{
						{
							Name:   to.Ptr(systemPoolName),
							Mode:   to.Ptr(armcontainerservice.AgentPoolModeSystem),
							Count:  to.Ptr(spec.NodeCount),
							VMSize: to.Ptr(spec.NodeVMSize),
							OSType: to.Ptr(armcontainerservice.OSTypeLinux),
						},
					},
				},
			}, nil)
			if err != nil {
				return armcontainerservice.ManagedCluster{}, err
			}
			resp, err := poller.PollUntilDone(ctx, c.pollOptions())
			return resp.ManagedCluster, err
		},
	}

	managed, created, err := op.Execute(ctx)
	if err != nil {
		return nil, false, err
	}
	return clusterFromManaged(managed), created, nil
}

func clusterFromManaged(managed armcontainerservice.ManagedCluster) *Cluster {
	cluster := &Cluster{Name: deref(managed.Name)}
	if managed.Properties == nil {
		return cluster
	}
	cluster.NodeResourceGroup = deref(managed.Properties.NodeResourceGroup)
	cluster.FQDN = deref(managed.Properties.Fqdn)
	if kubelet, ok := managed.Properties.IdentityProfile["kubeletidentity"]; ok && kubelet != nil {
		cluster.KubeletPrincipalID = deref(kubelet.ObjectID)
	}
	return cluster
}

// AttachRegistry grants the kubelet identity AcrPull on the registry scope.
// The assignment name is derived from scope and principal so repeated calls
// converge on the same assignment.
func (c *RealClient) AttachRegistry(ctx context.Context, registryID, principalID string) error {
	if principalID == "" {
		return fmt.Errorf("cluster exposes no kubelet identity to grant registry access to")
	}

	assignmentName := uuid.NewSHA1(uuid.NameSpaceURL, []byte(registryID+"/"+principalID)).String()
	roleDefinitionID := fmt.Sprintf("/subscriptions/%s/providers/Microsoft.Authorization/roleDefinitions/%s",
		c.subscriptionID, acrPullRoleID)

	_, err := c.roleAssignments.Create(ctx, registryID, assignmentName, armauthorization.RoleAssignmentCreateParameters{
		Properties: &armauthorization.RoleAssignmentProperties{
			PrincipalID:      to.Ptr(principalID),
			PrincipalType:    to.Ptr(armauthorization.PrincipalTypeServicePrincipal),
			RoleDefinitionID: to.Ptr(roleDefinitionID),
		},
	}, nil)
	if err != nil {
		if IsConflict(err) {
			// Assignment already exists, the grant is in place.
			return nil
		}
		return fmt.Errorf("failed to grant registry pull access: %w", err)
	}
	return nil
}

// AdminCredentials fetches the admin kubeconfig for the cluster.
func (c *RealClient) AdminCredentials(ctx context.Context, resourceGroup, name string) ([]byte, error) {
	resp, err := c.managedClusters.ListClusterAdminCredentials(ctx, resourceGroup, name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch credentials for cluster %q: %w", name, err)
	}
	for _, kubeconfig := range resp.Kubeconfigs {
		if kubeconfig != nil && len(kubeconfig.Value) > 0 {
			return kubeconfig.Value, nil
		}
	}
	return nil, fmt.Errorf("cluster %q returned no kubeconfig", name)
}
