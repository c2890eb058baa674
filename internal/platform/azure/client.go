package azure

import "context"

// Registry describes a container registry after reconciliation.
type Registry struct {
	// ID is the fully qualified ARM resource ID, used as role assignment scope.
	ID string
	// LoginServer is the registry endpoint image references are prefixed with.
	LoginServer string
}

// Cluster describes a managed Kubernetes cluster after reconciliation.
type Cluster struct {
	Name string
	// NodeResourceGroup is the managed resource group holding node-level
	// resources such as public IP addresses.
	NodeResourceGroup string
	// KubeletPrincipalID is the object ID of the kubelet managed identity,
	// the principal that pulls images from the registry.
	KubeletPrincipalID string
	FQDN               string
}

// ClusterSpec carries the desired shape of a managed cluster.
type ClusterSpec struct {
	Location   string
	DNSPrefix  string
	NodeCount  int32
	NodeVMSize string
}

// PublicIP describes a reserved public address.
type PublicIP struct {
	Name    string
	Address string
	FQDN    string
}

// BuildRequest describes a remote container image build.
type BuildRequest struct {
	// SourceLocation is the build context, either a SAS-accessible tarball
	// URL or a git URL in the form https://host/repo.git#ref:path.
	SourceLocation string
	// DockerfilePath is relative to the source location root.
	DockerfilePath string
	// ImageName is the repository:tag to push, relative to the registry
	// login server.
	ImageName string
}

// ResourceGroupManager reconciles resource groups.
type ResourceGroupManager interface {
	ResourceGroupExists(ctx context.Context, name string) (bool, error)
	// EnsureResourceGroup creates the group when absent. The returned bool
	// reports whether a create happened on this call.
	EnsureResourceGroup(ctx context.Context, name, location string) (bool, error)
}

// RegistryManager reconciles container registries and runs image builds.
type RegistryManager interface {
	EnsureRegistry(ctx context.Context, resourceGroup, name, location, sku string) (*Registry, bool, error)
	// BuildImage schedules a remote docker build and waits for the run to
	// reach a terminal state. It returns the run ID for log correlation.
	BuildImage(ctx context.Context, resourceGroup, registryName string, req BuildRequest) (string, error)
}

// ClusterManager reconciles managed clusters and their registry access.
type ClusterManager interface {
	// GetCluster returns the cluster, or nil without error when it does
	// not exist.
	GetCluster(ctx context.Context, resourceGroup, name string) (*Cluster, error)
	EnsureCluster(ctx context.Context, resourceGroup, name string, spec ClusterSpec) (*Cluster, bool, error)
	// AttachRegistry grants the kubelet identity pull access on the registry.
	// Attaching an already attached registry is not an error.
	AttachRegistry(ctx context.Context, registryID, principalID string) error
	// AdminCredentials returns the admin kubeconfig for the cluster.
	AdminCredentials(ctx context.Context, resourceGroup, name string) ([]byte, error)
}

// AddressManager reconciles reserved public addresses.
type AddressManager interface {
	EnsurePublicIP(ctx context.Context, resourceGroup, name, location, dnsLabel string) (*PublicIP, bool, error)
}

// DNSManager reconciles DNS zones and records.
type DNSManager interface {
	EnsureZone(ctx context.Context, resourceGroup, zone string) (bool, error)
	// UpsertARecord points record.zone at the given address, creating the
	// record set when absent and replacing it when present.
	UpsertARecord(ctx context.Context, resourceGroup, zone, record, address string, ttl int64) (UpsertOutcome, error)
}

// SKUManager inspects compute capacity.
type SKUManager interface {
	// ListAvailableVMSizes returns the VM size names purchasable in the
	// given location, with restricted SKUs filtered out.
	ListAvailableVMSizes(ctx context.Context, location string) ([]string, error)
}

// InfrastructureManager combines all infrastructure management interfaces.
type InfrastructureManager interface {
	ResourceGroupManager
	RegistryManager
	ClusterManager
	AddressManager
	DNSManager
	SKUManager
}

func deref[T any](p *T) T {
	var v T
	if p != nil {
		v = *p
	}
	return v
}
