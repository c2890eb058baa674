package workload

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTemplateData() TemplateData {
	return TemplateData{
		Name:          "heart-disease-api",
		Namespace:     "heart-disease",
		Image:         "heartdiseaseacr.azurecr.io/heart-disease-api:v1",
		Replicas:      2,
		ContainerPort: 8000,
		ServicePort:   80,
	}
}

func TestRender_ProducesBothDocuments(t *testing.T) {
	t.Parallel()

	out, err := Render(testTemplateData())
	require.NoError(t, err)

	docs := strings.Split(string(out), "\n---\n")
	require.Len(t, docs, 2)
	assert.Contains(t, docs[0], "kind: Deployment")
	assert.Contains(t, docs[1], "kind: Service")
}

func TestRender_DeploymentContract(t *testing.T) {
	t.Parallel()

	out, err := Render(testTemplateData())
	require.NoError(t, err)

	docs := strings.Split(string(out), "\n---\n")
	require.Len(t, docs, 2)
	deployment := docs[0]

	assert.Contains(t, deployment, "name: heart-disease-api")
	assert.Contains(t, deployment, "namespace: heart-disease")
	assert.Contains(t, deployment, "app: heart-disease-api")
	assert.Contains(t, deployment, "replicas: 2")
	assert.Contains(t, deployment, "revisionHistoryLimit: 2")
	assert.Contains(t, deployment, "image: heartdiseaseacr.azurecr.io/heart-disease-api:v1")
	assert.Contains(t, deployment, "containerPort: 8000")

	assert.Contains(t, deployment, `memory: "256Mi"`)
	assert.Contains(t, deployment, `cpu: "250m"`)
	assert.Contains(t, deployment, `memory: "512Mi"`)
	assert.Contains(t, deployment, `cpu: "500m"`)

	assert.Contains(t, deployment, "livenessProbe")
	assert.Contains(t, deployment, "readinessProbe")
	assert.Contains(t, deployment, "path: /health")
	assert.Contains(t, deployment, "initialDelaySeconds: 30")
	assert.Contains(t, deployment, "initialDelaySeconds: 10")
}

func TestRender_ServiceContract(t *testing.T) {
	t.Parallel()

	out, err := Render(testTemplateData())
	require.NoError(t, err)

	docs := strings.Split(string(out), "\n---\n")
	require.Len(t, docs, 2)
	service := docs[1]

	assert.Contains(t, service, "name: heart-disease-api")
	assert.Contains(t, service, "namespace: heart-disease")
	assert.Contains(t, service, "type: LoadBalancer")
	assert.Contains(t, service, "port: 80\n")
	assert.Contains(t, service, "targetPort: 8000")
	assert.Contains(t, service, "protocol: TCP")
}

func TestRender_InjectsCustomValues(t *testing.T) {
	t.Parallel()

	data := testTemplateData()
	data.Name = "cardio"
	data.Namespace = "models"
	data.Replicas = 5

	out, err := Render(data)
	require.NoError(t, err)

	rendered := string(out)
	assert.Contains(t, rendered, "name: cardio")
	assert.Contains(t, rendered, "namespace: models")
	assert.Contains(t, rendered, "replicas: 5")
	assert.NotContains(t, rendered, "{{")
}
