package azure

import "context"

// MockClient is a function-field implementation of InfrastructureManager
// for tests. Calls to a nil field panic, which keeps tests explicit about
// the operations they expect.
type MockClient struct {
	ResourceGroupExistsFunc  func(ctx context.Context, name string) (bool, error)
	EnsureResourceGroupFunc  func(ctx context.Context, name, location string) (bool, error)
	EnsureRegistryFunc       func(ctx context.Context, resourceGroup, name, location, sku string) (*Registry, bool, error)
	BuildImageFunc           func(ctx context.Context, resourceGroup, registryName string, req BuildRequest) (string, error)
	GetClusterFunc           func(ctx context.Context, resourceGroup, name string) (*Cluster, error)
	EnsureClusterFunc        func(ctx context.Context, resourceGroup, name string, spec ClusterSpec) (*Cluster, bool, error)
	AttachRegistryFunc       func(ctx context.Context, registryID, principalID string) error
	AdminCredentialsFunc     func(ctx context.Context, resourceGroup, name string) ([]byte, error)
	EnsurePublicIPFunc       func(ctx context.Context, resourceGroup, name, location, dnsLabel string) (*PublicIP, bool, error)
	EnsureZoneFunc           func(ctx context.Context, resourceGroup, zone string) (bool, error)
	UpsertARecordFunc        func(ctx context.Context, resourceGroup, zone, record, address string, ttl int64) (UpsertOutcome, error)
	ListAvailableVMSizesFunc func(ctx context.Context, location string) ([]string, error)
}

var _ InfrastructureManager = (*MockClient)(nil)

func (m *MockClient) ResourceGroupExists(ctx context.Context, name string) (bool, error) {
	return m.ResourceGroupExistsFunc(ctx, name)
}

func (m *MockClient) EnsureResourceGroup(ctx context.Context, name, location string) (bool, error) {
	return m.EnsureResourceGroupFunc(ctx, name, location)
}

func (m *MockClient) EnsureRegistry(ctx context.Context, resourceGroup, name, location, sku string) (*Registry, bool, error) {
	return m.EnsureRegistryFunc(ctx, resourceGroup, name, location, sku)
}

func (m *MockClient) BuildImage(ctx context.Context, resourceGroup, registryName string, req BuildRequest) (string, error) {
	return m.BuildImageFunc(ctx, resourceGroup, registryName, req)
}

func (m *MockClient) GetCluster(ctx context.Context, resourceGroup, name string) (*Cluster, error) {
	return m.GetClusterFunc(ctx, resourceGroup, name)
}

func (m *MockClient) EnsureCluster(ctx context.Context, resourceGroup, name string, spec ClusterSpec) (*Cluster, bool, error) {
	return m.EnsureClusterFunc(ctx, resourceGroup, name, spec)
}

func (m *MockClient) AttachRegistry(ctx context.Context, registryID, principalID string) error {
	return m.AttachRegistryFunc(ctx, registryID, principalID)
}

func (m *MockClient) AdminCredentials(ctx context.Context, resourceGroup, name string) ([]byte, error) {
	return m.AdminCredentialsFunc(ctx, resourceGroup, name)
}

func (m *MockClient) EnsurePublicIP(ctx context.Context, resourceGroup, name, location, dnsLabel string) (*PublicIP, bool, error) {
	return m.EnsurePublicIPFunc(ctx, resourceGroup, name, location, dnsLabel)
}

func (m *MockClient) EnsureZone(ctx context.Context, resourceGroup, zone string) (bool, error) {
	return m.EnsureZoneFunc(ctx, resourceGroup, zone)
}

func (m *MockClient) UpsertARecord(ctx context.Context, resourceGroup, zone, record, address string, ttl int64) (UpsertOutcome, error) {
	return m.UpsertARecordFunc(ctx, resourceGroup, zone, record, address, ttl)
}

func (m *MockClient) ListAvailableVMSizes(ctx context.Context, location string) ([]string, error) {
	return m.ListAvailableVMSizesFunc(ctx, location)
}
