// Package orchestration provides high-level workflow coordination for the
// deployment. It defines phase order and wiring but delegates the actual
// work to the per-phase provisioners.
package orchestration

import (
	"context"

	"github.com/cardioml/heartops/internal/config"
	"github.com/cardioml/heartops/internal/platform/azure"
	"github.com/cardioml/heartops/internal/platform/kube"
	"github.com/cardioml/heartops/internal/provisioning"
	"github.com/cardioml/heartops/internal/provisioning/image"
	"github.com/cardioml/heartops/internal/provisioning/infrastructure"
	"github.com/cardioml/heartops/internal/provisioning/network"
	"github.com/cardioml/heartops/internal/provisioning/workload"
)

// Reconciler drives the full deployment workflow: cloud resources, container
// image, cluster workload, and the service's public identity. Every run
// converges on the configured state, so it is safe to run repeatedly.
type Reconciler struct {
	infra    azure.InfrastructureManager
	config   *config.Config
	observer provisioning.Observer
	timeouts *config.Timeouts
	newKube  func(kubeconfig []byte) (kube.Client, error)
}

// Option customizes a Reconciler.
type Option func(*Reconciler)

// WithObserver routes run events to the given observer.
func WithObserver(observer provisioning.Observer) Option {
	return func(r *Reconciler) {
		r.observer = observer
	}
}

// WithTimeouts overrides the environment-derived timeouts.
func WithTimeouts(timeouts *config.Timeouts) Option {
	return func(r *Reconciler) {
		r.timeouts = timeouts
	}
}

// WithKubeFactory overrides how the cluster client is built from credentials.
func WithKubeFactory(factory func(kubeconfig []byte) (kube.Client, error)) Option {
	return func(r *Reconciler) {
		r.newKube = factory
	}
}

// NewReconciler creates a reconciler over the given infrastructure manager.
func NewReconciler(infra azure.InfrastructureManager, cfg *config.Config, opts ...Option) *Reconciler {
	r := &Reconciler{
		infra:  infra,
		config: cfg,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile runs all deployment phases in order. The returned state carries
// what the run established, including partial progress when a phase failed.
func (r *Reconciler) Reconcile(ctx context.Context) (*provisioning.State, error) {
	pCtx := provisioning.NewContext(ctx, r.config, r.infra)
	if r.observer != nil {
		pCtx.Observer = r.observer
	}
	if r.timeouts != nil {
		pCtx.Timeouts = r.timeouts
	}
	if r.newKube != nil {
		pCtx.NewKube = r.newKube
	}

	pipeline := provisioning.NewPipeline(
		infrastructure.NewProvisioner(),
		image.NewProvisioner(),
		workload.NewProvisioner(),
		network.NewProvisioner(),
	)

	if err := pipeline.Run(pCtx); err != nil {
		return pCtx.State, err
	}
	return pCtx.State, nil
}
