// Package config defines the configuration structure and methods for the application.
package config

import "fmt"

// DefaultConfigFile is the config file name looked up in the working directory
// when no --config flag is given.
const DefaultConfigFile = "heartops.yaml"

// Config holds the deployment configuration.
type Config struct {
	// ProjectName names the deployed application. It is used as the app label
	// on workload objects and as the default base name for derived resources.
	ProjectName string `mapstructure:"project_name" yaml:"project_name"`

	// SubscriptionID is the Azure subscription. Falls back to the
	// AZURE_SUBSCRIPTION_ID environment variable when empty.
	SubscriptionID string `mapstructure:"subscription_id" yaml:"subscription_id"`

	ResourceGroup string `mapstructure:"resource_group" yaml:"resource_group"`
	Location      string `mapstructure:"location" yaml:"location"` // e.g. westeurope, eastus2

	Registry RegistryConfig `mapstructure:"registry" yaml:"registry"`
	Cluster  ClusterConfig  `mapstructure:"cluster" yaml:"cluster"`
	Image    ImageConfig    `mapstructure:"image" yaml:"image"`
	Workload WorkloadConfig `mapstructure:"workload" yaml:"workload"`
	Network  NetworkConfig  `mapstructure:"network" yaml:"network"`
}

// RegistryConfig describes the container registry.
type RegistryConfig struct {
	// Name is the registry resource name (globally unique, alphanumeric).
	// The login server is derived as <name>.azurecr.io.
	Name string `mapstructure:"name" yaml:"name"`
	SKU  string `mapstructure:"sku" yaml:"sku"` // Basic, Standard, Premium
}

// ClusterConfig describes the managed Kubernetes cluster.
type ClusterConfig struct {
	Name      string `mapstructure:"name" yaml:"name"`
	DNSPrefix string `mapstructure:"dns_prefix" yaml:"dns_prefix"`
	NodeCount int32  `mapstructure:"node_count" yaml:"node_count"`

	// VMSizePreferences is the ordered list of node VM sizes to try.
	// The first size actually available in the target region wins.
	VMSizePreferences []string `mapstructure:"vm_size_preferences" yaml:"vm_size_preferences"`
}

// ImageConfig describes the remote container build.
type ImageConfig struct {
	Repository string `mapstructure:"repository" yaml:"repository"`
	Tag        string `mapstructure:"tag" yaml:"tag"`

	// SourceRepo is the Git URL cloned by the registry build task.
	SourceRepo string `mapstructure:"source_repo" yaml:"source_repo"`
	SourceRef  string `mapstructure:"source_ref" yaml:"source_ref"`
	SourcePath string `mapstructure:"source_path" yaml:"source_path"`
	Dockerfile string `mapstructure:"dockerfile" yaml:"dockerfile"`

	// SkipBuild reuses the image reference without building.
	SkipBuild bool `mapstructure:"skip_build" yaml:"skip_build"`
}

// WorkloadConfig describes the deployed inference workload.
type WorkloadConfig struct {
	Namespace string `mapstructure:"namespace" yaml:"namespace"`
	Replicas  int32  `mapstructure:"replicas" yaml:"replicas"`
}

// NetworkConfig describes the optional public identity of the service.
type NetworkConfig struct {
	// DNSLabel enables static address binding. When set, a reserved public IP
	// carrying this label is created in the cluster's node resource group and
	// bound to the service.
	DNSLabel string `mapstructure:"dns_label" yaml:"dns_label"`

	// StaticIPName overrides the reserved IP resource name.
	// Defaults to <project_name>-ip.
	StaticIPName string `mapstructure:"static_ip_name" yaml:"static_ip_name"`

	DNS DNSConfig `mapstructure:"dns" yaml:"dns"`
}

// DNSConfig describes the optional DNS record for the service address.
type DNSConfig struct {
	// Zone enables record management. Empty means the DNS step is skipped.
	Zone string `mapstructure:"zone" yaml:"zone"`

	// ResourceGroup holds the zone. Defaults to the top-level resource group.
	ResourceGroup string `mapstructure:"resource_group" yaml:"resource_group"`

	Record string `mapstructure:"record" yaml:"record"`
	TTL    int64  `mapstructure:"ttl" yaml:"ttl"`
}

// LoginServer returns the registry login server for the configured registry name.
func (c *Config) LoginServer() string {
	return c.Registry.Name + ".azurecr.io"
}

// ImageRef composes the full image reference pushed by the build and consumed
// by the workload manifests. Identical for built and reused images.
func (c *Config) ImageRef(loginServer string) string {
	return fmt.Sprintf("%s/%s:%s", loginServer, c.Image.Repository, c.Image.Tag)
}

// SourceLocation returns the build context in the form the registry build
// task consumes: <git URL>#<ref>:<path>.
func (c *Config) SourceLocation() string {
	return fmt.Sprintf("%s#%s:%s", c.Image.SourceRepo, c.Image.SourceRef, c.Image.SourcePath)
}

// ImageName returns the repository:tag reference relative to the registry,
// the form remote builds tag their pushes with.
func (c *Config) ImageName() string {
	return fmt.Sprintf("%s:%s", c.Image.Repository, c.Image.Tag)
}

// StaticBindEnabled reports whether the reserved-IP binding step runs.
func (c *Config) StaticBindEnabled() bool {
	return c.Network.DNSLabel != ""
}

// DNSEnabled reports whether the DNS record step runs.
func (c *Config) DNSEnabled() bool {
	return c.Network.DNS.Zone != ""
}

// StaticIPName returns the reserved IP resource name, applying the default.
func (c *Config) StaticIPName() string {
	if c.Network.StaticIPName != "" {
		return c.Network.StaticIPName
	}
	return c.ProjectName + "-ip"
}

// RecordFQDN returns the fully qualified name the DNS step manages.
func (c *Config) RecordFQDN() string {
	return c.Network.DNS.Record + "." + c.Network.DNS.Zone
}
