package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// LoadFile reads and parses the configuration from a YAML file.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	var cfg Config
	if err := mapstructure.Decode(rawConfig, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// ApplyDefaults fills unset fields with their defaults. Called by LoadFile;
// exported for callers that build a Config programmatically.
func (c *Config) ApplyDefaults() {
	if c.ProjectName == "" {
		c.ProjectName = "heart-disease-api"
	}
	if c.SubscriptionID == "" {
		c.SubscriptionID = os.Getenv("AZURE_SUBSCRIPTION_ID")
	}

	if c.Registry.SKU == "" {
		c.Registry.SKU = "Basic"
	}

	if c.Cluster.DNSPrefix == "" {
		c.Cluster.DNSPrefix = c.Cluster.Name
	}
	if c.Cluster.NodeCount == 0 {
		c.Cluster.NodeCount = 1
	}
	if len(c.Cluster.VMSizePreferences) == 0 {
		c.Cluster.VMSizePreferences = []string{
			"Standard_D2_v5",
			"Standard_D2s_v5",
			"Standard_DS2_v2",
		}
	}

	if c.Image.Repository == "" {
		c.Image.Repository = c.ProjectName
	}
	if c.Image.Tag == "" {
		c.Image.Tag = "1.0"
	}
	if c.Image.SourceRepo == "" {
		c.Image.SourceRepo = "https://github.com/cardioml/heart-disease-api.git"
	}
	if c.Image.SourceRef == "" {
		c.Image.SourceRef = "main"
	}
	if c.Image.SourcePath == "" {
		c.Image.SourcePath = "."
	}
	if c.Image.Dockerfile == "" {
		c.Image.Dockerfile = "Dockerfile"
	}

	if c.Workload.Namespace == "" {
		c.Workload.Namespace = "heart-disease"
	}
	if c.Workload.Replicas == 0 {
		c.Workload.Replicas = 2
	}

	if c.Network.DNS.ResourceGroup == "" {
		c.Network.DNS.ResourceGroup = c.ResourceGroup
	}
	if c.Network.DNS.Record == "" {
		c.Network.DNS.Record = "api"
	}
	if c.Network.DNS.TTL == 0 {
		c.Network.DNS.TTL = 300
	}
}
