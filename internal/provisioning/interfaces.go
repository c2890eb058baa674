// Package provisioning provides shared types and interfaces for deployment
// phases.
//
// The provisioning domain is organized into focused subpackages:
//   - infrastructure/ — resource group, container registry, managed cluster
//   - image/ — remote container image builds
//   - workload/ — namespace and workload manifests
//   - network/ — address binding, address resolution, DNS records
//
// This root package contains the shared context, pipeline and observability
// types used across subpackages.
package provisioning

// Phase defines the interface for a provisioning phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the provisioning logic for this phase.
	Provision(ctx *Context) error
}
