package config

import (
	"fmt"
	"strings"
)

// Validate checks the configuration for common errors and returns a detailed
// error if validation fails.
func (c *Config) Validate() error {
	if c.ProjectName == "" {
		return fmt.Errorf("project_name is required")
	}
	if c.SubscriptionID == "" {
		return fmt.Errorf("subscription_id is required (set it in the config or via AZURE_SUBSCRIPTION_ID)")
	}
	if c.ResourceGroup == "" {
		return fmt.Errorf("resource_group is required")
	}
	if c.Location == "" {
		return fmt.Errorf("location is required")
	}

	if err := c.validateRegistry(); err != nil {
		return fmt.Errorf("registry validation failed: %w", err)
	}
	if err := c.validateCluster(); err != nil {
		return fmt.Errorf("cluster validation failed: %w", err)
	}
	if err := c.validateImage(); err != nil {
		return fmt.Errorf("image validation failed: %w", err)
	}
	if err := c.validateWorkload(); err != nil {
		return fmt.Errorf("workload validation failed: %w", err)
	}
	if err := c.validateNetwork(); err != nil {
		return fmt.Errorf("network validation failed: %w", err)
	}

	return nil
}

// validateRegistry enforces the registry naming rules: 5-50 characters,
// alphanumeric only, globally unique within the .azurecr.io namespace.
func (c *Config) validateRegistry() error {
	name := c.Registry.Name
	if name == "" {
		return fmt.Errorf("registry.name is required")
	}
	if len(name) < 5 || len(name) > 50 {
		return fmt.Errorf("registry name %q must be 5-50 characters", name)
	}
	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return fmt.Errorf("registry name %q may only contain alphanumeric characters", name)
		}
	}

	switch c.Registry.SKU {
	case "Basic", "Standard", "Premium":
	default:
		return fmt.Errorf("invalid registry SKU %q: must be Basic, Standard, or Premium", c.Registry.SKU)
	}

	return nil
}

func (c *Config) validateCluster() error {
	if c.Cluster.Name == "" {
		return fmt.Errorf("cluster.name is required")
	}
	if c.Cluster.NodeCount < 1 {
		return fmt.Errorf("cluster.node_count must be at least 1, got %d", c.Cluster.NodeCount)
	}
	return nil
}

func (c *Config) validateImage() error {
	if !c.Image.SkipBuild && c.Image.SourceRepo == "" {
		return fmt.Errorf("image.source_repo is required unless skip_build is set")
	}
	return nil
}

func (c *Config) validateWorkload() error {
	if c.Workload.Replicas < 1 {
		return fmt.Errorf("workload.replicas must be at least 1, got %d", c.Workload.Replicas)
	}
	if strings.ContainsAny(c.Workload.Namespace, " /") {
		return fmt.Errorf("invalid namespace %q", c.Workload.Namespace)
	}
	return nil
}

func (c *Config) validateNetwork() error {
	if c.Network.DNS.Zone != "" {
		if c.Network.DNS.Record == "" {
			return fmt.Errorf("network.dns.record is required when a zone is set")
		}
		if c.Network.DNS.TTL < 1 {
			return fmt.Errorf("network.dns.ttl must be positive, got %d", c.Network.DNS.TTL)
		}
		if !strings.Contains(c.Network.DNS.Zone, ".") {
			return fmt.Errorf("invalid zone %q (expected example.com)", c.Network.DNS.Zone)
		}
	}
	return nil
}
