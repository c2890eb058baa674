package kube

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"
)

func newServiceClient(objects ...runtime.Object) (Client, *fake.Clientset) {
	clientset := fake.NewClientset(objects...)
	return NewFromClients(clientset, nil, nil), clientset
}

func TestBindServiceAddress_SetsIPAndLabel(t *testing.T) {
	t.Parallel()

	client, clientset := newServiceClient(&corev1.Service{
		ObjectMeta: metav1.ObjectMeta{Name: "api", Namespace: "heart-disease"},
		Spec:       corev1.ServiceSpec{Type: corev1.ServiceTypeLoadBalancer},
	})

	err := client.BindServiceAddress(context.Background(), "heart-disease", "api", "20.50.60.70", "heart-api")
	require.NoError(t, err)

	service, err := clientset.CoreV1().Services("heart-disease").Get(context.Background(), "api", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "20.50.60.70", service.Spec.LoadBalancerIP)
	assert.Equal(t, "heart-api", service.Annotations[dnsLabelAnnotation])
}

func TestBindServiceAddress_WithoutLabel(t *testing.T) {
	t.Parallel()

	client, clientset := newServiceClient(&corev1.Service{
		ObjectMeta: metav1.ObjectMeta{Name: "api", Namespace: "heart-disease"},
	})

	err := client.BindServiceAddress(context.Background(), "heart-disease", "api", "20.50.60.70", "")
	require.NoError(t, err)

	service, err := clientset.CoreV1().Services("heart-disease").Get(context.Background(), "api", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "20.50.60.70", service.Spec.LoadBalancerIP)
	assert.NotContains(t, service.Annotations, dnsLabelAnnotation)
}

func TestBindServiceAddress_MissingService(t *testing.T) {
	t.Parallel()

	client, _ := newServiceClient()

	err := client.BindServiceAddress(context.Background(), "heart-disease", "api", "20.50.60.70", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to bind address")
}

func TestServiceExternalAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ingress []corev1.LoadBalancerIngress
		want    string
	}{
		{name: "pending", ingress: nil, want: ""},
		{name: "ip assigned", ingress: []corev1.LoadBalancerIngress{{IP: "20.50.60.70"}}, want: "20.50.60.70"},
		{name: "hostname only", ingress: []corev1.LoadBalancerIngress{{Hostname: "api.westeurope.cloudapp.azure.com"}}, want: "api.westeurope.cloudapp.azure.com"},
		{name: "ip preferred over hostname", ingress: []corev1.LoadBalancerIngress{{IP: "20.50.60.70", Hostname: "api.example.com"}}, want: "20.50.60.70"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, _ := newServiceClient(&corev1.Service{
				ObjectMeta: metav1.ObjectMeta{Name: "api", Namespace: "heart-disease"},
				Status: corev1.ServiceStatus{
					LoadBalancer: corev1.LoadBalancerStatus{Ingress: tt.ingress},
				},
			})

			address, err := client.ServiceExternalAddress(context.Background(), "heart-disease", "api")
			require.NoError(t, err)
			assert.Equal(t, tt.want, address)
		})
	}
}

func TestServiceExternalAddress_MissingService(t *testing.T) {
	t.Parallel()

	client, _ := newServiceClient()

	_, err := client.ServiceExternalAddress(context.Background(), "heart-disease", "api")
	require.Error(t, err)
}
