package kube

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	dynamicfake "k8s.io/client-go/dynamic/fake"
	"k8s.io/client-go/kubernetes/fake"
	"k8s.io/client-go/restmapper"
	k8stesting "k8s.io/client-go/testing"
)

// newTestMapper resolves the kinds the manifests use without a live
// discovery endpoint.
func newTestMapper() meta.RESTMapper {
	resources := []*restmapper.APIGroupResources{
		{
			Group: metav1.APIGroup{
				Name: "",
				Versions: []metav1.GroupVersionForDiscovery{
					{GroupVersion: "v1", Version: "v1"},
				},
				PreferredVersion: metav1.GroupVersionForDiscovery{GroupVersion: "v1", Version: "v1"},
			},
			VersionedResources: map[string][]metav1.APIResource{
				"v1": {
					{Name: "services", Namespaced: true, Kind: "Service"},
					{Name: "namespaces", Namespaced: false, Kind: "Namespace"},
				},
			},
		},
		{
			Group: metav1.APIGroup{
				Name: "apps",
				Versions: []metav1.GroupVersionForDiscovery{
					{GroupVersion: "apps/v1", Version: "v1"},
				},
				PreferredVersion: metav1.GroupVersionForDiscovery{GroupVersion: "apps/v1", Version: "v1"},
			},
			VersionedResources: map[string][]metav1.APIResource{
				"v1": {
					{Name: "deployments", Namespaced: true, Kind: "Deployment"},
				},
			},
		},
	}
	return restmapper.NewDiscoveryRESTMapper(resources)
}

// newRecordingClient returns a Client whose dynamic patches are captured
// instead of hitting the fake tracker.
func newRecordingClient(t *testing.T) (Client, *[]k8stesting.PatchAction) {
	t.Helper()

	scheme := runtime.NewScheme()
	require.NoError(t, corev1.AddToScheme(scheme))
	require.NoError(t, appsv1.AddToScheme(scheme))

	dynamicClient := dynamicfake.NewSimpleDynamicClient(scheme)

	patches := &[]k8stesting.PatchAction{}
	dynamicClient.PrependReactor("patch", "*", func(action k8stesting.Action) (bool, runtime.Object, error) {
		patchAction, ok := action.(k8stesting.PatchAction)
		require.True(t, ok)
		*patches = append(*patches, patchAction)

		object := map[string]any{}
		require.NoError(t, json.Unmarshal(patchAction.GetPatch(), &object))
		return true, &unstructured.Unstructured{Object: object}, nil
	})

	return NewFromClients(fake.NewClientset(), dynamicClient, newTestMapper()), patches
}

func TestApplyManifests_EmptyManifest(t *testing.T) {
	t.Parallel()

	client, patches := newRecordingClient(t)

	err := client.ApplyManifests(context.Background(), []byte(``), "test-manager")
	require.NoError(t, err)
	assert.Empty(t, *patches)
}

func TestApplyManifests_EmptyDocuments(t *testing.T) {
	t.Parallel()

	client, patches := newRecordingClient(t)

	err := client.ApplyManifests(context.Background(), []byte("---\n---\n---\n"), "test-manager")
	require.NoError(t, err)
	assert.Empty(t, *patches)
}

func TestApplyManifests_InvalidYAML(t *testing.T) {
	t.Parallel()

	client, _ := newRecordingClient(t)

	err := client.ApplyManifests(context.Background(), []byte(`{invalid yaml: [`), "test-manager")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode manifest")
}

func TestApplyManifests_UnknownKind(t *testing.T) {
	t.Parallel()

	client, _ := newRecordingClient(t)

	manifests := []byte(`apiVersion: unknown.io/v1
kind: Widget
metadata:
  name: w1
`)

	err := client.ApplyManifests(context.Background(), manifests, "test-manager")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get REST mapping")
}

func TestApplyManifests_AppliesAllDocuments(t *testing.T) {
	t.Parallel()

	client, patches := newRecordingClient(t)

	manifests := []byte(`---
apiVersion: apps/v1
kind: Deployment
metadata:
  name: api
  namespace: heart-disease
spec:
  replicas: 2
---
apiVersion: v1
kind: Service
metadata:
  name: api
  namespace: heart-disease
spec:
  type: LoadBalancer
`)

	err := client.ApplyManifests(context.Background(), manifests, "heartops")
	require.NoError(t, err)
	require.Len(t, *patches, 2)

	deployment := (*patches)[0]
	assert.Equal(t, "api", deployment.GetName())
	assert.Equal(t, "heart-disease", deployment.GetNamespace())
	assert.Equal(t, "deployments", deployment.GetResource().Resource)
	assert.Equal(t, types.ApplyPatchType, deployment.GetPatchType())

	service := (*patches)[1]
	assert.Equal(t, "services", service.GetResource().Resource)
	assert.Contains(t, string(service.GetPatch()), "LoadBalancer")
}

func TestApplyManifests_DefaultsNamespace(t *testing.T) {
	t.Parallel()

	client, patches := newRecordingClient(t)

	manifests := []byte(`apiVersion: v1
kind: Service
metadata:
  name: api
`)

	err := client.ApplyManifests(context.Background(), manifests, "test-manager")
	require.NoError(t, err)
	require.Len(t, *patches, 1)
	assert.Equal(t, "default", (*patches)[0].GetNamespace())
}

func TestApplyManifests_ClusterScopedResource(t *testing.T) {
	t.Parallel()

	client, patches := newRecordingClient(t)

	manifests := []byte(`apiVersion: v1
kind: Namespace
metadata:
  name: heart-disease
`)

	err := client.ApplyManifests(context.Background(), manifests, "test-manager")
	require.NoError(t, err)
	require.Len(t, *patches, 1)
	assert.Empty(t, (*patches)[0].GetNamespace())
	assert.Equal(t, "namespaces", (*patches)[0].GetResource().Resource)
}

func TestDecodeManifests_SkipsEmptyDocuments(t *testing.T) {
	t.Parallel()

	manifests := []byte(`---
apiVersion: v1
kind: Service
metadata:
  name: one
---

---
apiVersion: v1
kind: Service
metadata:
  name: two
`)

	objects, err := decodeManifests(manifests)
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, "one", objects[0].GetName())
	assert.Equal(t, "two", objects[1].GetName())
}

func TestNewFromKubeconfig_InvalidKubeconfig(t *testing.T) {
	t.Parallel()

	_, err := NewFromKubeconfig([]byte(`invalid kubeconfig content`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create REST config")
}

func TestNewFromKubeconfig_EmptyKubeconfig(t *testing.T) {
	t.Parallel()

	_, err := NewFromKubeconfig([]byte{})
	require.Error(t, err)
}
