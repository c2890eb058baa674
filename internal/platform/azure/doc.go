// Package azure provides a wrapper around the Azure Resource Manager API.
//
// The package exposes narrow per-service manager interfaces (resource groups,
// container registry, managed cluster, public addresses, DNS, VM sizes) and a
// composite [InfrastructureManager] implemented by [RealClient] over the
// official SDK clients. All mutating operations follow the same reconcile
// shape: observe the resource, create it only when absent, and poll
// long-running operations to completion.
package azure
