package network

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/cardioml/heartops/internal/config"
	"github.com/cardioml/heartops/internal/platform/azure"
	"github.com/cardioml/heartops/internal/platform/kube"
	"github.com/cardioml/heartops/internal/provisioning"
)

func testConfig() *config.Config {
	cfg := &config.Config{
		ProjectName:   "heart-disease-api",
		ResourceGroup: "heart-rg",
		Location:      "westeurope",
	}
	cfg.ApplyDefaults()
	return cfg
}

// recordingObserver captures events while still printing them.
type recordingObserver struct {
	provisioning.Observer
	events []provisioning.Event
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{Observer: provisioning.NewConsoleObserver()}
}

func (o *recordingObserver) Event(event provisioning.Event) {
	o.events = append(o.events, event)
	o.Observer.Event(event)
}

func (o *recordingObserver) Progress(phase string, current, total int) {
	o.events = append(o.events, provisioning.Event{
		Type:    provisioning.EventProgress,
		Phase:   phase,
		Message: fmt.Sprintf("%d/%d", current, total),
	})
	o.Observer.Progress(phase, current, total)
}

func (o *recordingObserver) eventsOfType(eventType provisioning.EventType) []provisioning.Event {
	var matched []provisioning.Event
	for _, event := range o.events {
		if event.Type == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}

func serviceWithIngress(ip string) *corev1.Service {
	service := &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{Name: "heart-disease-api", Namespace: "heart-disease"},
		Spec:       corev1.ServiceSpec{Type: corev1.ServiceTypeLoadBalancer},
	}
	if ip != "" {
		service.Status.LoadBalancer.Ingress = []corev1.LoadBalancerIngress{{IP: ip}}
	}
	return service
}

func newTestContext(cfg *config.Config, infra azure.InfrastructureManager, kubeClient kube.Client) (*provisioning.Context, *recordingObserver) {
	observer := newRecordingObserver()
	ctx := &provisioning.Context{
		Context:  context.Background(),
		Config:   cfg,
		State:    provisioning.NewState(),
		Infra:    infra,
		Observer: observer,
		Timeouts: config.TestTimeouts(),
		NewKube: func([]byte) (kube.Client, error) {
			return kubeClient, nil
		},
	}
	ctx.State.Kubeconfig = []byte("test-kubeconfig")
	ctx.State.Cluster = &azure.Cluster{
		Name:              "heart-aks",
		NodeResourceGroup: "MC_heart-rg_heart-aks_westeurope",
	}
	return ctx, observer
}

func TestProvision_DynamicAddressOnly(t *testing.T) {
	t.Parallel()

	reserveCalled := false
	zoneCalled := false
	infra := &azure.MockClient{
		EnsurePublicIPFunc: func(_ context.Context, _, _, _, _ string) (*azure.PublicIP, bool, error) {
			reserveCalled = true
			return nil, false, nil
		},
		EnsureZoneFunc: func(_ context.Context, _, _ string) (bool, error) {
			zoneCalled = true
			return false, nil
		},
	}

	kubeClient := kube.NewFromClients(fake.NewClientset(serviceWithIngress("4.5.6.7")), nil, nil)
	ctx, _ := newTestContext(testConfig(), infra, kubeClient)

	err := NewProvisioner().Provision(ctx)
	require.NoError(t, err)

	assert.False(t, reserveCalled, "no reservation without a DNS label")
	assert.False(t, zoneCalled, "no DNS management without a zone")
	assert.Equal(t, provisioning.AddressResolved, ctx.State.AddressState)
	assert.Equal(t, "4.5.6.7", ctx.State.ExternalAddress)
	assert.Empty(t, ctx.State.RecordFQDN)
}

func TestProvision_FullNetworkIdentity(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Network.DNSLabel = "heart-api"
	cfg.Network.DNS.Zone = "example.com"
	cfg.ApplyDefaults()

	infra := &azure.MockClient{
		EnsurePublicIPFunc: func(_ context.Context, _, _, _, _ string) (*azure.PublicIP, bool, error) {
			return &azure.PublicIP{Name: "heart-disease-api-ip", Address: "20.50.60.70"}, true, nil
		},
		EnsureZoneFunc: func(_ context.Context, _, _ string) (bool, error) {
			return true, nil
		},
		UpsertARecordFunc: func(_ context.Context, _, _, _, address string, _ int64) (azure.UpsertOutcome, error) {
			assert.Equal(t, "20.50.60.70", address)
			return azure.UpsertCreated, nil
		},
	}

	kubeClient := kube.NewFromClients(fake.NewClientset(serviceWithIngress("20.50.60.70")), nil, nil)
	ctx, _ := newTestContext(cfg, infra, kubeClient)

	err := NewProvisioner().Provision(ctx)
	require.NoError(t, err)

	assert.Equal(t, provisioning.AddressResolved, ctx.State.AddressState)
	assert.Equal(t, "20.50.60.70", ctx.State.ExternalAddress)
	assert.Equal(t, "api.example.com", ctx.State.RecordFQDN)
}

func TestName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "network", NewProvisioner().Name())
}
