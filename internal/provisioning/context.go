package provisioning

import (
	"context"
	"fmt"

	"github.com/cardioml/heartops/internal/config"
	"github.com/cardioml/heartops/internal/platform/azure"
	"github.com/cardioml/heartops/internal/platform/kube"
)

// AddressState tracks how far external address resolution got.
type AddressState string

const (
	// AddressUnknown means resolution has not been attempted.
	AddressUnknown AddressState = "unknown"
	// AddressPending means the service exists but exposed no address yet.
	AddressPending AddressState = "pending"
	// AddressResolved means an external address was observed.
	AddressResolved AddressState = "resolved"
	// AddressUnresolved means polling finished without observing an address.
	AddressUnresolved AddressState = "unresolved"
)

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results. Each run starts from an
// empty state, nothing persists between runs.
type State struct {
	// Infrastructure results
	NodeVMSize string // VM size selected for the node pool
	Registry   *azure.Registry
	Cluster    *azure.Cluster
	Kubeconfig []byte

	// Image results
	ImageRef   string // fully qualified reference the workload runs
	BuildRunID string

	// Workload and network results
	ExternalAddress string
	AddressState    AddressState
	RecordFQDN      string // DNS name the record upsert settled on
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{AddressState: AddressUnknown}
}

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Infra    azure.InfrastructureManager
	Observer Observer
	Timeouts *config.Timeouts

	// NewKube builds a cluster client from kubeconfig bytes. Tests swap in
	// a fake-backed constructor.
	NewKube func(kubeconfig []byte) (kube.Client, error)

	kubeClient kube.Client
}

// NewContext creates a new provisioning context.
func NewContext(ctx context.Context, cfg *config.Config, infra azure.InfrastructureManager) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		Infra:    infra,
		Observer: NewConsoleObserver(),
		Timeouts: config.LoadTimeouts(),
		NewKube:  kube.NewFromKubeconfig,
	}
}

// KubeClient returns the workload cluster client, built lazily from the
// credentials the infrastructure phase stored in state.
func (c *Context) KubeClient() (kube.Client, error) {
	if c.kubeClient != nil {
		return c.kubeClient, nil
	}
	if len(c.State.Kubeconfig) == 0 {
		return nil, fmt.Errorf("no cluster credentials in state, the infrastructure phase must run first")
	}

	client, err := c.NewKube(c.State.Kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to build cluster client: %w", err)
	}
	c.kubeClient = client
	return client, nil
}
