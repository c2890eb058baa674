package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cardioml/heartops/internal/config"
	"github.com/cardioml/heartops/internal/platform/azure"
	"github.com/cardioml/heartops/internal/platform/kube"
)

// statusReport is the workload state collected for display.
type statusReport struct {
	Project     string             `json:"project"`
	Namespace   string             `json:"namespace"`
	Address     string             `json:"address,omitempty"`
	Deployments []deploymentStatus `json:"deployments"`
	Pods        []podStatus        `json:"pods"`
	Services    []serviceStatus    `json:"services"`
}

type deploymentStatus struct {
	Name  string `json:"name"`
	Ready string `json:"ready"`
}

type podStatus struct {
	Name     string `json:"name"`
	Phase    string `json:"phase"`
	Ready    bool   `json:"ready"`
	Restarts int32  `json:"restarts"`
}

type serviceStatus struct {
	Name            string `json:"name"`
	Type            string `json:"type"`
	ClusterIP       string `json:"cluster_ip"`
	ExternalAddress string `json:"external_address,omitempty"`
}

// Status retrieves and displays the state of the deployed workload.
func Status(ctx context.Context, configPath string, jsonOutput bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	infra, err := newInfraClient(cfg.SubscriptionID)
	if err != nil {
		return fmt.Errorf("failed to initialize Azure client: %w", err)
	}

	client, err := clusterClient(ctx, infra, cfg)
	if err != nil {
		return err
	}

	report, err := collectStatus(ctx, client, cfg)
	if err != nil {
		return err
	}

	if jsonOutput {
		b, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		fmt.Println(string(b))
		return nil
	}

	printStatusStyled(report)
	return nil
}

// clusterClient fetches fresh admin credentials from the managed cluster and
// builds a client from them. No local kubeconfig files are involved.
func clusterClient(ctx context.Context, infra azure.InfrastructureManager, cfg *config.Config) (kube.Client, error) {
	cluster, err := infra.GetCluster(ctx, cfg.ResourceGroup, cfg.Cluster.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up cluster: %w", err)
	}
	if cluster == nil {
		return nil, fmt.Errorf("cluster %q not found. Run 'heartops deploy' first", cfg.Cluster.Name)
	}

	kubeconfig, err := infra.AdminCredentials(ctx, cfg.ResourceGroup, cfg.Cluster.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cluster credentials: %w", err)
	}

	return newKubeClient(kubeconfig)
}

// collectStatus lists the workload objects in the target namespace.
func collectStatus(ctx context.Context, client kube.Client, cfg *config.Config) (*statusReport, error) {
	namespace := cfg.Workload.Namespace

	deployments, err := client.Deployments(ctx, namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to list deployments: %w", err)
	}
	pods, err := client.Pods(ctx, namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to list pods: %w", err)
	}
	services, err := client.Services(ctx, namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	report := &statusReport{Project: cfg.ProjectName, Namespace: namespace}

	for _, d := range deployments {
		report.Deployments = append(report.Deployments, deploymentStatus{
			Name:  d.Name,
			Ready: fmt.Sprintf("%d/%d", d.Status.ReadyReplicas, d.Status.Replicas),
		})
	}

	for _, p := range pods {
		var restarts int32
		readyContainers := 0
		for _, cs := range p.Status.ContainerStatuses {
			restarts += cs.RestartCount
			if cs.Ready {
				readyContainers++
			}
		}
		report.Pods = append(report.Pods, podStatus{
			Name:     p.Name,
			Phase:    string(p.Status.Phase),
			Ready:    len(p.Status.ContainerStatuses) > 0 && readyContainers == len(p.Status.ContainerStatuses),
			Restarts: restarts,
		})
	}

	for _, s := range services {
		entry := serviceStatus{
			Name:      s.Name,
			Type:      string(s.Spec.Type),
			ClusterIP: s.Spec.ClusterIP,
		}
		for _, ingress := range s.Status.LoadBalancer.Ingress {
			if ingress.IP != "" {
				entry.ExternalAddress = ingress.IP
			} else if ingress.Hostname != "" {
				entry.ExternalAddress = ingress.Hostname
			}
		}
		if s.Name == cfg.ProjectName && entry.ExternalAddress != "" {
			report.Address = entry.ExternalAddress
		}
		report.Services = append(report.Services, entry)
	}

	return report, nil
}

func printStatusStyled(report *statusReport) {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f9fafb"))
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3b82f6"))
	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e"))
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))

	fmt.Println()
	fmt.Println(titleStyle.Render(fmt.Sprintf("  heartops status: %s", report.Project)))
	fmt.Println(dimStyle.Render("  " + strings.Repeat("=", 30)))
	fmt.Println()

	addressLabel := nameStyle.Render(fmt.Sprintf("%-18s", "external address"))
	if report.Address != "" {
		fmt.Printf("  %s  %s\n", addressLabel, valueStyle.Render("http://"+report.Address))
	} else {
		fmt.Printf("  %s  %s\n", addressLabel, warnStyle.Render("pending"))
	}
	fmt.Println()

	fmt.Println(sectionStyle.Render("  Deployments"))
	fmt.Println(dimStyle.Render("  " + strings.Repeat("-", 35)))
	for _, d := range report.Deployments {
		fmt.Printf("  %s  %s\n", nameStyle.Render(fmt.Sprintf("%-18s", d.Name)), valueStyle.Render(d.Ready))
	}
	if len(report.Deployments) == 0 {
		fmt.Println(dimStyle.Render("  none"))
	}
	fmt.Println()

	fmt.Println(sectionStyle.Render("  Pods"))
	fmt.Println(dimStyle.Render("  " + strings.Repeat("-", 35)))
	for _, p := range report.Pods {
		state := p.Phase
		if p.Restarts > 0 {
			state = fmt.Sprintf("%s (%d restarts)", state, p.Restarts)
		}
		style := valueStyle
		if !p.Ready {
			style = warnStyle
		}
		fmt.Printf("  %s  %s\n", nameStyle.Render(fmt.Sprintf("%-18s", p.Name)), style.Render(state))
	}
	if len(report.Pods) == 0 {
		fmt.Println(dimStyle.Render("  none"))
	}
	fmt.Println()

	fmt.Println(sectionStyle.Render("  Services"))
	fmt.Println(dimStyle.Render("  " + strings.Repeat("-", 35)))
	for _, s := range report.Services {
		value := s.Type
		if s.ExternalAddress != "" {
			value = fmt.Sprintf("%s %s", s.Type, s.ExternalAddress)
		}
		fmt.Printf("  %s  %s\n", nameStyle.Render(fmt.Sprintf("%-18s", s.Name)), valueStyle.Render(value))
	}
	if len(report.Services) == 0 {
		fmt.Println(dimStyle.Render("  none"))
	}

	fmt.Println()
}
