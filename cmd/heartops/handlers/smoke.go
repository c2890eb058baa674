package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/cardioml/heartops/internal/config"
	"github.com/cardioml/heartops/internal/smoke"
)

// smokeProber is the part of the smoke client the handler drives.
type smokeProber interface {
	Health(ctx context.Context) (*smoke.HealthResponse, error)
	Predict(ctx context.Context, record smoke.PatientRecord) (*smoke.PredictionResponse, error)
}

// newSmokeClient builds the API probe client (for testing injection).
var newSmokeClient = func(baseURL string) smokeProber {
	return smoke.NewClient(baseURL)
}

// Smoke probes a deployed inference API end to end: the health endpoint
// first, then a prediction for a known patient record.
//
// Without an explicit address the service address is discovered through the
// cluster, which requires the deployment to exist.
func Smoke(ctx context.Context, configPath, address string) error {
	if address == "" {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		address, err = discoverAddress(ctx, cfg)
		if err != nil {
			return err
		}
	}

	baseURL := address
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}

	client := newSmokeClient(baseURL)

	health, err := client.Health(ctx)
	if err != nil {
		return fmt.Errorf("health probe failed: %w", err)
	}
	fmt.Printf("Health: %s (model loaded: %t)\n", health.Status, health.ModelLoaded)

	prediction, err := client.Predict(ctx, smoke.SampleRecord())
	if err != nil {
		return fmt.Errorf("prediction failed: %w", err)
	}

	printPrediction(baseURL, prediction)
	return nil
}

// discoverAddress resolves the service's external address through the cluster.
func discoverAddress(ctx context.Context, cfg *config.Config) (string, error) {
	infra, err := newInfraClient(cfg.SubscriptionID)
	if err != nil {
		return "", fmt.Errorf("failed to initialize Azure client: %w", err)
	}

	client, err := clusterClient(ctx, infra, cfg)
	if err != nil {
		return "", err
	}

	address, err := client.ServiceExternalAddress(ctx, cfg.Workload.Namespace, cfg.ProjectName)
	if err != nil {
		return "", fmt.Errorf("failed to read service address: %w", err)
	}
	if address == "" {
		return "", fmt.Errorf("service %s has no external address yet, try again shortly", cfg.ProjectName)
	}
	return address, nil
}

// printPrediction outputs the prediction for the sample record.
func printPrediction(baseURL string, prediction *smoke.PredictionResponse) {
	fmt.Println()
	fmt.Printf("Prediction for the sample record (%s):\n", baseURL)
	fmt.Printf("  Risk level: %s\n", prediction.RiskLevel)
	fmt.Printf("  Prediction: %d\n", prediction.Prediction)
	fmt.Printf("  Confidence: %.2f\n", prediction.Confidence)
	fmt.Printf("  Model:      %s\n", prediction.ModelUsed)
}
