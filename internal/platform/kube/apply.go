package kube

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/types"
	yamlutil "k8s.io/apimachinery/pkg/util/yaml"
	"k8s.io/client-go/dynamic"
)

// defaultNamespace receives namespaced objects whose manifest carries no
// explicit namespace.
const defaultNamespace = "default"

func (c *client) ApplyManifests(ctx context.Context, manifests []byte, fieldManager string) error {
	objects, err := decodeManifests(manifests)
	if err != nil {
		return err
	}

	for _, object := range objects {
		if err := c.applyObject(ctx, object, fieldManager); err != nil {
			return err
		}
	}
	return nil
}

// decodeManifests splits a multi-document YAML stream into unstructured
// objects, dropping empty documents.
func decodeManifests(manifests []byte) ([]*unstructured.Unstructured, error) {
	decoder := yamlutil.NewYAMLOrJSONDecoder(bufio.NewReader(bytes.NewReader(manifests)), 4096)

	var objects []*unstructured.Unstructured
	for {
		object := &unstructured.Unstructured{}
		err := decoder.Decode(object)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode manifest document %d: %w", len(objects)+1, err)
		}
		if len(object.Object) == 0 {
			continue
		}
		objects = append(objects, object)
	}
	return objects, nil
}

func (c *client) applyObject(ctx context.Context, object *unstructured.Unstructured, fieldManager string) error {
	gvk := object.GroupVersionKind()
	mapping, err := c.mapper.RESTMapping(gvk.GroupKind(), gvk.Version)
	if err != nil {
		return fmt.Errorf("failed to get REST mapping for %s %q: %w", gvk.Kind, object.GetName(), err)
	}

	var resource dynamic.ResourceInterface
	if mapping.Scope.Name() == meta.RESTScopeNameNamespace {
		namespace := object.GetNamespace()
		if namespace == "" {
			namespace = defaultNamespace
		}
		resource = c.dynamicClient.Resource(mapping.Resource).Namespace(namespace)
	} else {
		resource = c.dynamicClient.Resource(mapping.Resource)
	}

	data, err := json.Marshal(object.Object)
	if err != nil {
		return fmt.Errorf("failed to marshal %s %q: %w", gvk.Kind, object.GetName(), err)
	}

	_, err = resource.Patch(ctx, object.GetName(), types.ApplyPatchType, data, metav1.PatchOptions{
		FieldManager: fieldManager,
	})
	if err != nil {
		return fmt.Errorf("failed to apply %s %q: %w", gvk.Kind, object.GetName(), err)
	}
	return nil
}
