package network

import (
	"fmt"

	"github.com/cardioml/heartops/internal/platform/azure"
	"github.com/cardioml/heartops/internal/provisioning"
)

// ReconcileDNS points the configured record at the resolved service address.
// The record is written create-if-absent first so a fresh zone never clobbers
// anything, then replaced when a previous run already owns it.
func (p *Provisioner) ReconcileDNS(ctx *provisioning.Context) error {
	cfg := ctx.Config
	if !cfg.DNSEnabled() {
		ctx.Observer.Printf("[%s] No DNS zone configured, skipping record management", phase)
		return nil
	}
	if ctx.State.AddressState != provisioning.AddressResolved {
		provisioning.LogValidationWarning(ctx.Observer, phase,
			fmt.Sprintf("service address is %s, skipping the DNS record update", ctx.State.AddressState))
		return nil
	}

	dns := cfg.Network.DNS

	created, err := ctx.Infra.EnsureZone(ctx, dns.ResourceGroup, dns.Zone)
	if err != nil {
		return fmt.Errorf("failed to ensure DNS zone %q: %w", dns.Zone, err)
	}
	if created {
		provisioning.LogResourceCreated(ctx.Observer, phase, "dns-zone", dns.Zone, dns.Zone)
	} else {
		provisioning.LogResourceExists(ctx.Observer, phase, "dns-zone", dns.Zone, dns.Zone)
	}

	outcome, err := ctx.Infra.UpsertARecord(ctx, dns.ResourceGroup, dns.Zone, dns.Record, ctx.State.ExternalAddress, dns.TTL)
	if err != nil {
		return err
	}

	fqdn := cfg.RecordFQDN()
	switch outcome {
	case azure.UpsertCreated:
		provisioning.LogResourceCreated(ctx.Observer, phase, "dns-record", fqdn, ctx.State.ExternalAddress)
	case azure.UpsertReplaced:
		provisioning.LogResourceUpdated(ctx.Observer, phase, "dns-record", fqdn)
	}

	ctx.State.RecordFQDN = fqdn
	ctx.Observer.Printf("[%s] %s points at %s", phase, fqdn, ctx.State.ExternalAddress)
	return nil
}
