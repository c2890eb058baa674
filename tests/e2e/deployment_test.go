//go:build e2e

package e2e

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cardioml/heartops/internal/orchestration"
	"github.com/cardioml/heartops/internal/provisioning"
	"github.com/cardioml/heartops/internal/smoke"
)

var _ = Describe("Full deployment", Ordered, func() {
	var state *provisioning.State

	It("provisions infrastructure, builds the image and deploys", func(ctx SpecContext) {
		var err error
		state, err = orchestration.NewReconciler(infra, testCfg).Reconcile(ctx)
		Expect(err).NotTo(HaveOccurred())

		Expect(state.Registry).NotTo(BeNil())
		Expect(state.Registry.LoginServer).To(HavePrefix(testCfg.Registry.Name))
		Expect(state.Cluster).NotTo(BeNil())
		Expect(state.Kubeconfig).NotTo(BeEmpty())
		Expect(state.NodeVMSize).NotTo(BeEmpty())
		Expect(state.ImageRef).To(Equal(testCfg.ImageRef(state.Registry.LoginServer)))
		Expect(state.BuildRunID).NotTo(BeEmpty())
	}, SpecTimeout(60*time.Minute))

	It("exposes the service on an external address", func() {
		Expect(state).NotTo(BeNil())
		Expect(state.AddressState).To(Equal(provisioning.AddressResolved))
		Expect(state.ExternalAddress).NotTo(BeEmpty())
	})

	It("answers health and prediction requests", func(ctx SpecContext) {
		client := smoke.NewClient("http://" + state.ExternalAddress)

		// The load balancer frontend can lag behind address assignment.
		Eventually(func() error {
			_, err := client.Health(ctx)
			return err
		}).WithContext(ctx).WithTimeout(5 * time.Minute).WithPolling(10 * time.Second).Should(Succeed())

		prediction, err := client.Predict(ctx, smoke.SampleRecord())
		Expect(err).NotTo(HaveOccurred())
		Expect(prediction.RiskLevel).To(BeElementOf("High", "Low"))
		Expect(prediction.Confidence).To(BeNumerically(">", 0.0))
		Expect(prediction.ModelUsed).NotTo(BeEmpty())
	}, SpecTimeout(10*time.Minute))

	It("converges without changes on a second run", func(ctx SpecContext) {
		second, err := orchestration.NewReconciler(infra, testCfg).Reconcile(ctx)
		Expect(err).NotTo(HaveOccurred())

		// Size selection must not rerun against the existing cluster.
		Expect(second.NodeVMSize).To(BeEmpty())
		Expect(second.ExternalAddress).To(Equal(state.ExternalAddress))
	}, SpecTimeout(30*time.Minute))
})
