package infrastructure

import (
	"fmt"

	"github.com/cardioml/heartops/internal/provisioning"
)

// maxSampleSizes bounds how many available sizes a selection failure lists.
const maxSampleSizes = 8

// selectNodeSize picks the first preferred VM size offered in the target
// location and records it in state. It runs before any cluster mutation, so
// an unsatisfiable preference list aborts with nothing created.
func (p *Provisioner) selectNodeSize(ctx *provisioning.Context) error {
	preferences := ctx.Config.Cluster.VMSizePreferences
	if len(preferences) == 0 {
		return fmt.Errorf("no VM size preferences configured")
	}

	available, err := ctx.Infra.ListAvailableVMSizes(ctx, ctx.Config.Location)
	if err != nil {
		return fmt.Errorf("failed to list available VM sizes: %w", err)
	}

	size, err := pickVMSize(preferences, available)
	if err != nil {
		return err
	}

	ctx.State.NodeVMSize = size
	ctx.Observer.Printf("[%s] Selected node VM size %s", phase, size)
	return nil
}

// pickVMSize returns the first preference present in available, in
// preference order.
func pickVMSize(preferences, available []string) (string, error) {
	offered := make(map[string]struct{}, len(available))
	for _, size := range available {
		offered[size] = struct{}{}
	}

	for _, preference := range preferences {
		if _, ok := offered[preference]; ok {
			return preference, nil
		}
	}

	sample := available
	if len(sample) > maxSampleSizes {
		sample = sample[:maxSampleSizes]
	}
	return "", fmt.Errorf("none of the preferred VM sizes %v are available in this location (sample of available sizes: %v)", preferences, sample)
}
