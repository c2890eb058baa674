package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"gopkg.in/yaml.v3"
)

// WizardResult holds the user's choices from the wizard.
type WizardResult struct {
	ProjectName    string
	SubscriptionID string
	ResourceGroup  string
	Location       string
	RegistryName   string
	ClusterName    string
	NodeCount      int32
	DNSLabel       string
	DNSZone        string
}

// RunWizard runs the interactive configuration wizard.
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{
		ProjectName:    "heart-disease-api",
		SubscriptionID: os.Getenv("AZURE_SUBSCRIPTION_ID"),
		Location:       "westeurope",
		NodeCount:      1,
	}

	form := huh.NewForm(
		// Project identity
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Description("Names the deployed application (DNS-safe, lowercase)").
				Placeholder("heart-disease-api").
				Value(&result.ProjectName).
				Validate(validateResourceName),

			huh.NewInput().
				Title("Subscription ID").
				Description("Azure subscription to deploy into (defaults to AZURE_SUBSCRIPTION_ID)").
				Value(&result.SubscriptionID).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("subscription ID is required")
					}
					return nil
				}),
		),

		// Placement
		huh.NewGroup(
			huh.NewInput().
				Title("Resource group").
				Description("Created if it does not exist").
				Placeholder("heartops-rg").
				Value(&result.ResourceGroup).
				Validate(validateResourceName),

			huh.NewSelect[string]().
				Title("Region").
				Description("Azure region for all resources").
				Options(
					huh.NewOption("West Europe (westeurope)", "westeurope"),
					huh.NewOption("North Europe (northeurope)", "northeurope"),
					huh.NewOption("East US (eastus)", "eastus"),
					huh.NewOption("East US 2 (eastus2)", "eastus2"),
					huh.NewOption("West US 3 (westus3)", "westus3"),
					huh.NewOption("Southeast Asia (southeastasia)", "southeastasia"),
				).
				Value(&result.Location),
		),

		// Registry and cluster
		huh.NewGroup(
			huh.NewInput().
				Title("Registry name").
				Description("Globally unique, alphanumeric (becomes <name>.azurecr.io)").
				Placeholder("heartopsacr").
				Value(&result.RegistryName).
				Validate(validateRegistryName),

			huh.NewInput().
				Title("Cluster name").
				Placeholder("heartops-aks").
				Value(&result.ClusterName).
				Validate(validateResourceName),

			huh.NewSelect[int32]().
				Title("Node count").
				Description("Agent pool size for the inference workload").
				Options(
					huh.NewOption("1 node (dev)", int32(1)),
					huh.NewOption("2 nodes", int32(2)),
					huh.NewOption("3 nodes", int32(3)),
				).
				Value(&result.NodeCount),
		),

		// Optional public identity
		huh.NewGroup(
			huh.NewInput().
				Title("DNS label (optional)").
				Description("Reserves a static IP with this label. Leave empty to use the dynamic address.").
				Value(&result.DNSLabel),

			huh.NewInput().
				Title("DNS zone (optional)").
				Description("Managed zone for an A record (e.g. example.com). Leave empty to skip DNS.").
				Value(&result.DNSZone).
				Validate(validateZone),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	return result, nil
}

// ToConfig converts the wizard result to a fully defaulted Config.
func (r *WizardResult) ToConfig() *Config {
	cfg := &Config{
		ProjectName:    r.ProjectName,
		SubscriptionID: r.SubscriptionID,
		ResourceGroup:  r.ResourceGroup,
		Location:       r.Location,
		Registry: RegistryConfig{
			Name: r.RegistryName,
		},
		Cluster: ClusterConfig{
			Name:      r.ClusterName,
			NodeCount: r.NodeCount,
		},
		Network: NetworkConfig{
			DNSLabel: r.DNSLabel,
			DNS: DNSConfig{
				Zone: r.DNSZone,
			},
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

// WriteYAML writes the config to a YAML file.
func WriteYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// validateResourceName validates names used for Azure resources and labels.
func validateResourceName(s string) error {
	if s == "" {
		return fmt.Errorf("name is required")
	}
	if len(s) > 63 {
		return fmt.Errorf("name must be 63 characters or less")
	}
	for _, c := range s {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '-' {
			return fmt.Errorf("name can only contain lowercase letters, numbers, and hyphens")
		}
	}
	if s[0] == '-' || s[len(s)-1] == '-' {
		return fmt.Errorf("name cannot start or end with a hyphen")
	}
	return nil
}

// validateRegistryName validates the registry resource name.
func validateRegistryName(s string) error {
	if len(s) < 5 || len(s) > 50 {
		return fmt.Errorf("registry name must be 5-50 characters")
	}
	for _, c := range s {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return fmt.Errorf("registry name may only contain alphanumeric characters")
		}
	}
	return nil
}

// validateZone validates the optional DNS zone.
func validateZone(s string) error {
	if s == "" {
		return nil // Optional
	}
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return fmt.Errorf("invalid zone format (expected example.com)")
	}
	return nil
}
