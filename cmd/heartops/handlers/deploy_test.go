package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardioml/heartops/internal/config"
	"github.com/cardioml/heartops/internal/platform/azure"
	"github.com/cardioml/heartops/internal/provisioning"
)

// saveAndRestoreFactories saves and restores all factory variables so tests
// can replace them freely.
func saveAndRestoreFactories(t *testing.T) {
	t.Helper()
	origNewInfraClient := newInfraClient
	origNewReconciler := newReconciler
	origNewKubeClient := newKubeClient
	origLoadConfigFile := loadConfigFile
	origWriteFile := writeFile
	origFileExists := fileExists
	origRunWizard := runWizard
	origWriteConfigYAML := writeConfigYAML
	origIsInteractive := isInteractive
	origNewSmokeClient := newSmokeClient

	t.Cleanup(func() {
		newInfraClient = origNewInfraClient
		newReconciler = origNewReconciler
		newKubeClient = origNewKubeClient
		loadConfigFile = origLoadConfigFile
		writeFile = origWriteFile
		fileExists = origFileExists
		runWizard = origRunWizard
		writeConfigYAML = origWriteConfigYAML
		isInteractive = origIsInteractive
		newSmokeClient = origNewSmokeClient
	})
}

// testConfig returns a fully defaulted deployment configuration.
func testConfig() *config.Config {
	cfg := &config.Config{
		ProjectName:    "heart-disease-api",
		SubscriptionID: "sub-123",
		ResourceGroup:  "heart-rg",
		Location:       "westeurope",
		Registry:       config.RegistryConfig{Name: "heartdiseaseacr"},
		Cluster:        config.ClusterConfig{Name: "heart-aks"},
	}
	cfg.ApplyDefaults()
	return cfg
}

// mockReconciler implements Reconciler for testing.
type mockReconciler struct {
	state *provisioning.State
	err   error
}

func (m *mockReconciler) Reconcile(_ context.Context) (*provisioning.State, error) {
	return m.state, m.err
}

func TestLoadConfig_EmptyPath_NoDefaultFile(t *testing.T) {
	saveAndRestoreFactories(t)

	fileExists = func(_ string) bool { return false }

	_, err := loadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no config file found")
	assert.Contains(t, err.Error(), "heartops init")
}

func TestLoadConfig_EmptyPath_WithDefaultFile(t *testing.T) {
	saveAndRestoreFactories(t)

	fileExists = func(path string) bool { return path == config.DefaultConfigFile }
	var loadedPath string
	loadConfigFile = func(path string) (*config.Config, error) {
		loadedPath = path
		return testConfig(), nil
	}

	cfg, err := loadConfig("")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "heartops.yaml", loadedPath)
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	saveAndRestoreFactories(t)

	var loadedPath string
	loadConfigFile = func(path string) (*config.Config, error) {
		loadedPath = path
		return testConfig(), nil
	}

	_, err := loadConfig("production.yaml")
	require.NoError(t, err)
	assert.Equal(t, "production.yaml", loadedPath)
}

func TestLoadConfig_LoadError(t *testing.T) {
	saveAndRestoreFactories(t)

	loadConfigFile = func(_ string) (*config.Config, error) {
		return nil, errors.New("yaml: line 3: mapping values are not allowed")
	}

	_, err := loadConfig("broken.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestDeploy_Success(t *testing.T) {
	saveAndRestoreFactories(t)

	loadConfigFile = func(_ string) (*config.Config, error) { return testConfig(), nil }

	var gotSubscription string
	newInfraClient = func(subscriptionID string) (azure.InfrastructureManager, error) {
		gotSubscription = subscriptionID
		return &azure.MockClient{}, nil
	}

	var gotCfg *config.Config
	state := &provisioning.State{
		ImageRef:        "heartdiseaseacr.azurecr.io/heart-disease-api:1.0",
		ExternalAddress: "4.5.6.7",
		AddressState:    provisioning.AddressResolved,
	}
	newReconciler = func(_ azure.InfrastructureManager, cfg *config.Config) Reconciler {
		gotCfg = cfg
		return &mockReconciler{state: state}
	}

	err := Deploy(context.Background(), "heartops.yaml", false)
	require.NoError(t, err)
	assert.Equal(t, "sub-123", gotSubscription)
	require.NotNil(t, gotCfg)
	assert.False(t, gotCfg.Image.SkipBuild)
}

func TestDeploy_SkipBuildOverridesConfig(t *testing.T) {
	saveAndRestoreFactories(t)

	loadConfigFile = func(_ string) (*config.Config, error) { return testConfig(), nil }
	newInfraClient = func(_ string) (azure.InfrastructureManager, error) {
		return &azure.MockClient{}, nil
	}

	var gotCfg *config.Config
	newReconciler = func(_ azure.InfrastructureManager, cfg *config.Config) Reconciler {
		gotCfg = cfg
		return &mockReconciler{state: provisioning.NewState()}
	}

	err := Deploy(context.Background(), "heartops.yaml", true)
	require.NoError(t, err)
	require.NotNil(t, gotCfg)
	assert.True(t, gotCfg.Image.SkipBuild)
}

func TestDeploy_ReconcileError(t *testing.T) {
	saveAndRestoreFactories(t)

	loadConfigFile = func(_ string) (*config.Config, error) { return testConfig(), nil }
	newInfraClient = func(_ string) (azure.InfrastructureManager, error) {
		return &azure.MockClient{}, nil
	}
	newReconciler = func(_ azure.InfrastructureManager, _ *config.Config) Reconciler {
		return &mockReconciler{err: errors.New("infrastructure phase failed: quota exceeded")}
	}

	err := Deploy(context.Background(), "heartops.yaml", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deployment failed")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestDeploy_InfraClientError(t *testing.T) {
	saveAndRestoreFactories(t)

	loadConfigFile = func(_ string) (*config.Config, error) { return testConfig(), nil }
	newInfraClient = func(_ string) (azure.InfrastructureManager, error) {
		return nil, errors.New("subscription ID is required")
	}

	err := Deploy(context.Background(), "heartops.yaml", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize Azure client")
}

func TestDeploy_ConfigError(t *testing.T) {
	saveAndRestoreFactories(t)

	fileExists = func(_ string) bool { return false }

	err := Deploy(context.Background(), "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no config file found")
}
