package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerregistry/armcontainerregistry"

	"github.com/cardioml/heartops/internal/util/retry"
)

// EnsureRegistry creates the container registry when absent and returns its
// identity either way.
func (c *RealClient) EnsureRegistry(ctx context.Context, resourceGroup, name, location, sku string) (*Registry, bool, error) {
	op := &EnsureOperation[armcontainerregistry.Registry]{
		ResourceType: "container registry",
		Name:         name,

		Get: func(ctx context.Context) (armcontainerregistry.Registry, error) {
			resp, err := c.registries.Get(ctx, resourceGroup, name, nil)
			return resp.Registry, err
		},
		Create: func(ctx context.Context) (armcontainerregistry.Registry, error) {
			ctx, cancel := c.provisionCtx(ctx)
			defer cancel()

			poller, err := c.registries.BeginCreate(ctx, resourceGroup, name, armcontainerregistry.Registry{
				Location: to.Ptr(location),
				SKU: &armcontainerregistry.SKU{
					Name: to.Ptr(armcontainerregistry.SKUName(sku)),
				},
			}, nil)
			if err != nil {
				return armcontainerregistry.Registry{}, err
			}
			resp, err := poller.PollUntilDone(ctx, c.pollOptions())
			return resp.Registry, err
		},
	}

	registry, created, err := op.Execute(ctx)
	if err != nil {
		return nil, false, err
	}
	result := &Registry{ID: deref(registry.ID)}
	if registry.Properties != nil {
		result.LoginServer = deref(registry.Properties.LoginServer)
	}
	return result, created, nil
}

// BuildImage schedules a remote docker build in the registry and waits for
// the run to reach a terminal state.
func (c *RealClient) BuildImage(ctx context.Context, resourceGroup, registryName string, req BuildRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Build)
	defer cancel()

	poller, err := c.registries.BeginScheduleRun(ctx, resourceGroup, registryName, &armcontainerregistry.DockerBuildRequest{
		DockerFilePath: to.Ptr(req.DockerfilePath),
		SourceLocation: to.Ptr(req.SourceLocation),
		ImageNames:     []*string{to.Ptr(req.ImageName)},
		IsPushEnabled:  to.Ptr(true),
		Platform: &armcontainerregistry.PlatformProperties{
			OS:           to.Ptr(armcontainerregistry.OSLinux),
			Architecture: to.Ptr(armcontainerregistry.ArchitectureAmd64),
		},
	}, nil)
	if err != nil {
		return "", fmt.Errorf("failed to schedule build in %q: %w", registryName, err)
	}
	resp, err := poller.PollUntilDone(ctx, c.pollOptions())
	if err != nil {
		return "", fmt.Errorf("failed to schedule build in %q: %w", registryName, err)
	}

	runID := deref(resp.Name)
	if resp.Properties != nil && resp.Properties.RunID != nil {
		runID = *resp.Properties.RunID
	}
	if runID == "" {
		return "", fmt.Errorf("registry %q accepted the build but returned no run ID", registryName)
	}

	if err := c.waitForRun(ctx, resourceGroup, registryName, runID); err != nil {
		return runID, err
	}
	return runID, nil
}

// waitForRun polls the build run at a fixed interval until it settles.
func (c *RealClient) waitForRun(ctx context.Context, resourceGroup, registryName, runID string) error {
	attempts := int(c.timeouts.Build / c.timeouts.BuildPoll)
	if attempts < 1 {
		attempts = 1
	}

	return retry.WithConstantBackoff(ctx, attempts, c.timeouts.BuildPoll, func() (bool, error) {
		resp, err := c.runs.Get(ctx, resourceGroup, registryName, runID, nil)
		if err != nil {
			// Transient read failures are retried on the next tick.
			return false, fmt.Errorf("failed to read build run %s: %w", runID, err)
		}
		if resp.Properties == nil || resp.Properties.Status == nil {
			return false, fmt.Errorf("build run %s reported no status", runID)
		}

		switch status := *resp.Properties.Status; status {
		case armcontainerregistry.RunStatusSucceeded:
			return true, nil
		case armcontainerregistry.RunStatusFailed,
			armcontainerregistry.RunStatusCanceled,
			armcontainerregistry.RunStatusError,
			armcontainerregistry.RunStatusTimeout:
			return true, fmt.Errorf("build run %s finished with status %s%s", runID, status, c.runLogHint(ctx, resourceGroup, registryName, runID))
		default:
			return false, fmt.Errorf("build run %s still %s", runID, status)
		}
	})
}

// runLogHint fetches a SAS link to the run log. Best effort, failures yield
// an empty hint.
func (c *RealClient) runLogHint(ctx context.Context, resourceGroup, registryName, runID string) string {
	resp, err := c.runs.GetLogSasURL(ctx, resourceGroup, registryName, runID, nil)
	if err != nil || deref(resp.LogLink) == "" {
		return ""
	}
	return fmt.Sprintf(" (logs: %s)", *resp.LogLink)
}
