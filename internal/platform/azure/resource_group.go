package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
)

// ResourceGroupExists checks for the group without mutating anything.
func (c *RealClient) ResourceGroupExists(ctx context.Context, name string) (bool, error) {
	resp, err := c.resourceGroups.CheckExistence(ctx, name, nil)
	if err != nil {
		return false, fmt.Errorf("failed to check resource group %q: %w", name, err)
	}
	return resp.Success, nil
}

// EnsureResourceGroup creates the group in the given location when absent.
func (c *RealClient) EnsureResourceGroup(ctx context.Context, name, location string) (bool, error) {
	exists, err := c.ResourceGroupExists(ctx, name)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	_, err = c.resourceGroups.CreateOrUpdate(ctx, name, armresources.ResourceGroup{
		Location: to.Ptr(location),
	}, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create resource group %q: %w", name, err)
	}
	return true, nil
}
