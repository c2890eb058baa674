package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	azruntime "github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/authorization/armauthorization/v2"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v6"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerregistry/armcontainerregistry"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice/v6"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/dns/armdns"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v6"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"

	"github.com/cardioml/heartops/internal/config"
)

// RealClient implements InfrastructureManager against the Azure Resource
// Manager API.
type RealClient struct {
	subscriptionID string
	credential     azcore.TokenCredential
	timeouts       *config.Timeouts

	resourceGroups  *armresources.ResourceGroupsClient
	registries      *armcontainerregistry.RegistriesClient
	runs            *armcontainerregistry.RunsClient
	managedClusters *armcontainerservice.ManagedClustersClient
	publicIPs       *armnetwork.PublicIPAddressesClient
	zones           *armdns.ZonesClient
	recordSets      *armdns.RecordSetsClient
	resourceSKUs    *armcompute.ResourceSKUsClient
	roleAssignments *armauthorization.RoleAssignmentsClient
}

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithTimeouts overrides the environment-derived operation timeouts.
func WithTimeouts(timeouts *config.Timeouts) ClientOption {
	return func(c *RealClient) {
		c.timeouts = timeouts
	}
}

// WithCredential overrides the default credential chain.
func WithCredential(credential azcore.TokenCredential) ClientOption {
	return func(c *RealClient) {
		c.credential = credential
	}
}

// NewRealClient creates an ARM-backed client for the given subscription.
// Without WithCredential it authenticates through the default chain
// (environment, workload identity, managed identity, CLI).
func NewRealClient(subscriptionID string, opts ...ClientOption) (*RealClient, error) {
	if subscriptionID == "" {
		return nil, fmt.Errorf("subscription ID is required")
	}

	c := &RealClient{
		subscriptionID: subscriptionID,
		timeouts:       config.LoadTimeouts(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.credential == nil {
		credential, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build Azure credential: %w", err)
		}
		c.credential = credential
	}

	var err error
	if c.resourceGroups, err = armresources.NewResourceGroupsClient(subscriptionID, c.credential, nil); err != nil {
		return nil, fmt.Errorf("failed to create resource groups client: %w", err)
	}
	if c.registries, err = armcontainerregistry.NewRegistriesClient(subscriptionID, c.credential, nil); err != nil {
		return nil, fmt.Errorf("failed to create registries client: %w", err)
	}
	if c.runs, err = armcontainerregistry.NewRunsClient(subscriptionID, c.credential, nil); err != nil {
		return nil, fmt.Errorf("failed to create registry runs client: %w", err)
	}
	if c.managedClusters, err = armcontainerservice.NewManagedClustersClient(subscriptionID, c.credential, nil); err != nil {
		return nil, fmt.Errorf("failed to create managed clusters client: %w", err)
	}
	if c.publicIPs, err = armnetwork.NewPublicIPAddressesClient(subscriptionID, c.credential, nil); err != nil {
		return nil, fmt.Errorf("failed to create public IP client: %w", err)
	}
	if c.zones, err = armdns.NewZonesClient(subscriptionID, c.credential, nil); err != nil {
		return nil, fmt.Errorf("failed to create DNS zones client: %w", err)
	}
	if c.recordSets, err = armdns.NewRecordSetsClient(subscriptionID, c.credential, nil); err != nil {
		return nil, fmt.Errorf("failed to create DNS record sets client: %w", err)
	}
	if c.resourceSKUs, err = armcompute.NewResourceSKUsClient(subscriptionID, c.credential, nil); err != nil {
		return nil, fmt.Errorf("failed to create resource SKUs client: %w", err)
	}
	if c.roleAssignments, err = armauthorization.NewRoleAssignmentsClient(subscriptionID, c.credential, nil); err != nil {
		return nil, fmt.Errorf("failed to create role assignments client: %w", err)
	}

	return c, nil
}

// provisionCtx bounds a long-running create to the provision timeout.
func (c *RealClient) provisionCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeouts.Provision)
}

func (c *RealClient) pollOptions() *azruntime.PollUntilDoneOptions {
	return &azruntime.PollUntilDoneOptions{Frequency: c.timeouts.PollFrequency}
}
