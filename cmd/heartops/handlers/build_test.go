package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardioml/heartops/internal/config"
	"github.com/cardioml/heartops/internal/platform/azure"
)

func TestBuild_RunsRemoteBuild(t *testing.T) {
	saveAndRestoreFactories(t)

	loadConfigFile = func(_ string) (*config.Config, error) { return testConfig(), nil }

	var registryArgs []string
	var buildReq azure.BuildRequest
	infra := &azure.MockClient{
		EnsureRegistryFunc: func(_ context.Context, resourceGroup, name, location, sku string) (*azure.Registry, bool, error) {
			registryArgs = []string{resourceGroup, name, location, sku}
			return &azure.Registry{
				ID:          "/subscriptions/sub-123/resourceGroups/heart-rg/providers/Microsoft.ContainerRegistry/registries/heartdiseaseacr",
				LoginServer: "heartdiseaseacr.azurecr.io",
			}, false, nil
		},
		BuildImageFunc: func(_ context.Context, _, _ string, req azure.BuildRequest) (string, error) {
			buildReq = req
			return "cf1", nil
		},
	}
	newInfraClient = func(_ string) (azure.InfrastructureManager, error) { return infra, nil }

	err := Build(context.Background(), "heartops.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"heart-rg", "heartdiseaseacr", "westeurope", "Basic"}, registryArgs)
	assert.Equal(t, "heart-disease-api:1.0", buildReq.ImageName)
	assert.Equal(t, "Dockerfile", buildReq.DockerfilePath)
}

func TestBuild_OverridesSkipBuild(t *testing.T) {
	saveAndRestoreFactories(t)

	loadConfigFile = func(_ string) (*config.Config, error) {
		cfg := testConfig()
		cfg.Image.SkipBuild = true
		return cfg, nil
	}

	buildCalled := false
	infra := &azure.MockClient{
		EnsureRegistryFunc: func(_ context.Context, _, _, _, _ string) (*azure.Registry, bool, error) {
			return &azure.Registry{LoginServer: "heartdiseaseacr.azurecr.io"}, false, nil
		},
		BuildImageFunc: func(_ context.Context, _, _ string, _ azure.BuildRequest) (string, error) {
			buildCalled = true
			return "cf2", nil
		},
	}
	newInfraClient = func(_ string) (azure.InfrastructureManager, error) { return infra, nil }

	err := Build(context.Background(), "heartops.yaml")
	require.NoError(t, err)
	assert.True(t, buildCalled, "an explicit build must not honor skip_build")
}

func TestBuild_RegistryFailure(t *testing.T) {
	saveAndRestoreFactories(t)

	loadConfigFile = func(_ string) (*config.Config, error) { return testConfig(), nil }

	infra := &azure.MockClient{
		EnsureRegistryFunc: func(_ context.Context, _, _, _, _ string) (*azure.Registry, bool, error) {
			return nil, false, errors.New("resource group heart-rg not found")
		},
	}
	newInfraClient = func(_ string) (azure.InfrastructureManager, error) { return infra, nil }

	err := Build(context.Background(), "heartops.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `failed to ensure registry "heartdiseaseacr"`)
}

func TestBuild_BuildFailure(t *testing.T) {
	saveAndRestoreFactories(t)

	loadConfigFile = func(_ string) (*config.Config, error) { return testConfig(), nil }

	infra := &azure.MockClient{
		EnsureRegistryFunc: func(_ context.Context, _, _, _, _ string) (*azure.Registry, bool, error) {
			return &azure.Registry{LoginServer: "heartdiseaseacr.azurecr.io"}, false, nil
		},
		BuildImageFunc: func(_ context.Context, _, _ string, _ azure.BuildRequest) (string, error) {
			return "", errors.New("build run reached status Failed")
		},
	}
	newInfraClient = func(_ string) (azure.InfrastructureManager, error) { return infra, nil }

	err := Build(context.Background(), "heartops.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image phase failed")
}
