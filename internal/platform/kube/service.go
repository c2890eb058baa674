package kube

import (
	"context"
	"encoding/json"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
)

// dnsLabelAnnotation asks the cloud controller to register an Azure-managed
// DNS name for the service's public address.
const dnsLabelAnnotation = "service.beta.kubernetes.io/azure-dns-label-name"

func (c *client) BindServiceAddress(ctx context.Context, namespace, name, address, dnsLabel string) error {
	patch := map[string]any{
		"spec": map[string]any{
			"loadBalancerIP": address,
		},
	}
	if dnsLabel != "" {
		patch["metadata"] = map[string]any{
			"annotations": map[string]string{
				dnsLabelAnnotation: dnsLabel,
			},
		}
	}

	data, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("failed to marshal service patch: %w", err)
	}

	_, err = c.clientset.CoreV1().Services(namespace).Patch(ctx, name, types.StrategicMergePatchType, data, metav1.PatchOptions{})
	if err != nil {
		return fmt.Errorf("failed to bind address to service %s/%s: %w", namespace, name, err)
	}
	return nil
}

func (c *client) ServiceExternalAddress(ctx context.Context, namespace, name string) (string, error) {
	service, err := c.clientset.CoreV1().Services(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to get service %s/%s: %w", namespace, name, err)
	}

	for _, ingress := range service.Status.LoadBalancer.Ingress {
		if ingress.IP != "" {
			return ingress.IP, nil
		}
		if ingress.Hostname != "" {
			return ingress.Hostname, nil
		}
	}
	return "", nil
}
