package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v6"
)

// EnsurePublicIP reserves a standard static IPv4 address when absent. The
// address lives in the cluster's node resource group so the cloud load
// balancer may bind it. dnsLabel is optional and yields an Azure-managed
// FQDN when set.
func (c *RealClient) EnsurePublicIP(ctx context.Context, resourceGroup, name, location, dnsLabel string) (*PublicIP, bool, error) {
	op := &EnsureOperation[armnetwork.PublicIPAddress]{
		ResourceType: "public IP",
		Name:         name,

		Get: func(ctx context.Context) (armnetwork.PublicIPAddress, error) {
			resp, err := c.publicIPs.Get(ctx, resourceGroup, name, nil)
			return resp.PublicIPAddress, err
		},
		Create: func(ctx context.Context) (armnetwork.PublicIPAddress, error) {
			ctx, cancel := c.provisionCtx(ctx)
			defer cancel()

			properties := &armnetwork.PublicIPAddressPropertiesFormat{
				PublicIPAllocationMethod: to.Ptr(armnetwork.IPAllocationMethodStatic),
				PublicIPAddressVersion:   to.Ptr(armnetwork.IPVersionIPv4),
			}
			if dnsLabel != "" {
				properties.DNSSettings = &armnetwork.PublicIPAddressDNSSettings{
					DomainNameLabel: to.Ptr(dnsLabel),
				}
			}

			poller, err := c.publicIPs.BeginCreateOrUpdate(ctx, resourceGroup, name, armnetwork.PublicIPAddress{
				Location: to.Ptr(location),
				SKU: &armnetwork.PublicIPAddressSKU{
					Name: to.Ptr(armnetwork.PublicIPAddressSKUNameStandard),
				},
				Properties: properties,
			}, nil)
			if err != nil {
				return armnetwork.PublicIPAddress{}, err
			}
			resp, err := poller.PollUntilDone(ctx, c.pollOptions())
			return resp.PublicIPAddress, err
		},
	}

	address, created, err := op.Execute(ctx)
	if err != nil {
		return nil, false, err
	}

	result := &PublicIP{Name: deref(address.Name)}
	if address.Properties != nil {
		result.Address = deref(address.Properties.IPAddress)
		if address.Properties.DNSSettings != nil {
			result.FQDN = deref(address.Properties.DNSSettings.Fqdn)
		}
	}
	return result, created, nil
}
