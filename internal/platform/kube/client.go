// Package kube wraps the Kubernetes clients used to apply workload
// manifests and observe the resulting objects. Clients are built from the
// kubeconfig bytes returned by the managed cluster, never from local files.
package kube

import (
	"context"
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/restmapper"
	"k8s.io/client-go/tools/clientcmd"
)

// Client talks to one cluster through both the typed and dynamic API
// surfaces.
type Client interface {
	// ApplyManifests server-side applies a multi-document YAML stream.
	// Apply is a no-op for objects already in the desired shape, so
	// repeated calls converge.
	ApplyManifests(ctx context.Context, manifests []byte, fieldManager string) error

	// EnsureNamespace creates the namespace when absent. The returned bool
	// reports whether a create happened on this call.
	EnsureNamespace(ctx context.Context, name string) (bool, error)

	// BindServiceAddress patches a LoadBalancer service to request a
	// specific frontend IP and, when dnsLabel is non-empty, the managed
	// DNS label annotation.
	BindServiceAddress(ctx context.Context, namespace, name, address, dnsLabel string) error

	// ServiceExternalAddress returns the service's external IP or
	// hostname, or "" while the load balancer is still pending. A single
	// observation, callers own the polling.
	ServiceExternalAddress(ctx context.Context, namespace, name string) (string, error)

	Deployments(ctx context.Context, namespace string) ([]appsv1.Deployment, error)
	Pods(ctx context.Context, namespace string) ([]corev1.Pod, error)
	Services(ctx context.Context, namespace string) ([]corev1.Service, error)
}

type client struct {
	clientset     kubernetes.Interface
	dynamicClient dynamic.Interface
	mapper        meta.RESTMapper
}

// NewFromKubeconfig builds a Client from raw kubeconfig bytes.
func NewFromKubeconfig(kubeconfig []byte) (Client, error) {
	restConfig, err := clientcmd.RESTConfigFromKubeConfig(kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create REST config: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create clientset: %w", err)
	}
	dynamicClient, err := dynamic.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic client: %w", err)
	}

	groupResources, err := restmapper.GetAPIGroupResources(clientset.Discovery())
	if err != nil {
		return nil, fmt.Errorf("failed to discover API resources: %w", err)
	}

	return NewFromClients(clientset, dynamicClient, restmapper.NewDiscoveryRESTMapper(groupResources)), nil
}

// NewFromClients builds a Client from preconstructed clients, used by tests
// to inject fakes.
func NewFromClients(clientset kubernetes.Interface, dynamicClient dynamic.Interface, mapper meta.RESTMapper) Client {
	return &client{
		clientset:     clientset,
		dynamicClient: dynamicClient,
		mapper:        mapper,
	}
}
