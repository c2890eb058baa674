package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/dns/armdns"
)

// EnsureZone creates the DNS zone when absent.
func (c *RealClient) EnsureZone(ctx context.Context, resourceGroup, zone string) (bool, error) {
	op := &EnsureOperation[armdns.Zone]{
		ResourceType: "DNS zone",
		Name:         zone,

		Get: func(ctx context.Context) (armdns.Zone, error) {
			resp, err := c.zones.Get(ctx, resourceGroup, zone, nil)
			return resp.Zone, err
		},
		Create: func(ctx context.Context) (armdns.Zone, error) {
			resp, err := c.zones.CreateOrUpdate(ctx, resourceGroup, zone, armdns.Zone{
				Location: to.Ptr("global"),
			}, nil)
			return resp.Zone, err
		},
	}

	_, created, err := op.Execute(ctx)
	return created, err
}

// UpsertARecord points record.zone at address. The first path is a
// conditional create that only wins when the record set is absent, the
// second overwrites whatever the conditional create lost against.
func (c *RealClient) UpsertARecord(ctx context.Context, resourceGroup, zone, record, address string, ttl int64) (UpsertOutcome, error) {
	recordSet := armdns.RecordSet{
		Properties: &armdns.RecordSetProperties{
			TTL: to.Ptr(ttl),
			ARecords: []*armdns.ARecord{
				{IPv4Address: to.Ptr(address)},
			},
		},
	}

	upsert := &RecordUpsert{
		Name: "A record " + record + "." + zone,

		CreateIfAbsent: func(ctx context.Context) error {
			_, err := c.recordSets.CreateOrUpdate(ctx, resourceGroup, zone, record, armdns.RecordTypeA, recordSet,
				&armdns.RecordSetsClientCreateOrUpdateOptions{IfNoneMatch: to.Ptr("*")})
			return err
		},
		Replace: func(ctx context.Context) error {
			_, err := c.recordSets.CreateOrUpdate(ctx, resourceGroup, zone, record, armdns.RecordTypeA, recordSet, nil)
			return err
		},
	}

	return upsert.Execute(ctx)
}
