// Package workload applies the inference API's deployment and service
// manifests to the cluster through server-side apply.
package workload

import (
	"fmt"

	"github.com/cardioml/heartops/internal/config"
	"github.com/cardioml/heartops/internal/provisioning"
)

const phase = "workload"

// fieldManager identifies this tool's field ownership on applied objects.
const fieldManager = "heartops"

// Provisioner renders the embedded manifests and applies them declaratively.
// Repeated runs converge on the same object state.
type Provisioner struct{}

// NewProvisioner creates a workload provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name returns the phase name.
func (p *Provisioner) Name() string {
	return phase
}

// Provision ensures the target namespace exists and applies the rendered
// deployment and service manifests.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if ctx.State.ImageRef == "" {
		return fmt.Errorf("no image reference in state, image provisioning must run first")
	}

	kubeClient, err := ctx.KubeClient()
	if err != nil {
		return err
	}

	cfg := ctx.Config
	namespace := cfg.Workload.Namespace

	created, err := kubeClient.EnsureNamespace(ctx, namespace)
	if err != nil {
		return fmt.Errorf("failed to ensure namespace %q: %w", namespace, err)
	}
	if created {
		provisioning.LogResourceCreated(ctx.Observer, phase, "namespace", namespace, namespace)
	} else {
		provisioning.LogResourceExists(ctx.Observer, phase, "namespace", namespace, namespace)
	}

	manifests, err := Render(TemplateData{
		Name:          cfg.ProjectName,
		Namespace:     namespace,
		Image:         ctx.State.ImageRef,
		Replicas:      cfg.Workload.Replicas,
		ContainerPort: config.ContainerPort,
		ServicePort:   config.ServicePort,
	})
	if err != nil {
		return err
	}

	ctx.Observer.Printf("[%s] Applying manifests for %s in namespace %s", phase, cfg.ProjectName, namespace)
	if err := kubeClient.ApplyManifests(ctx, manifests, fieldManager); err != nil {
		return err
	}

	provisioning.LogResourceUpdated(ctx.Observer, phase, "workload", cfg.ProjectName)
	return nil
}
