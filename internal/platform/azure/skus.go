package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v6"
)

// ListAvailableVMSizes returns the VM size names offered in the location.
// SKUs carrying any restriction (capacity, zone, subscription) are dropped,
// only sizes a node pool can actually be built from are reported.
func (c *RealClient) ListAvailableVMSizes(ctx context.Context, location string) ([]string, error) {
	filter := fmt.Sprintf("location eq '%s'", location)
	pager := c.resourceSKUs.NewListPager(&armcompute.ResourceSKUsClientListOptions{
		Filter: &filter,
	})

	var sizes []string
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list VM sizes in %s: %w", location, err)
		}
		for _, sku := range page.Value {
			if sku == nil || sku.Name == nil {
				continue
			}
			if deref(sku.ResourceType) != "virtualMachines" {
				continue
			}
			if len(sku.Restrictions) > 0 {
				continue
			}
			sizes = append(sizes, *sku.Name)
		}
	}
	return sizes, nil
}
