package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/kedactl/kedactl/internal/health"
)

// Health handles the health command.
//
// It reads the deployment status and the pods behind it, then prints either a
// human-readable summary or the full report as JSON.
func Health(ctx context.Context, kubeconfigPath, deployment, namespace string, jsonOutput bool) error {
	client, err := newKubeClient(kubeconfigPath)
	if err != nil {
		return fmt.Errorf("failed to connect to cluster: %w", err)
	}

	report, err := checkHealth(ctx, client, deployment, namespace)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printReportJSON(report)
	}

	printReport(report)
	return nil
}

func printReport(report *health.Report) {
	fmt.Printf("Deployment %s in namespace %s\n", report.DeploymentName, report.Namespace)
	fmt.Printf("  replicas: %d desired, %d available, %d ready\n",
		report.Replicas, report.AvailableReplicas, report.ReadyReplicas)
	for _, pod := range report.PodStatuses {
		fmt.Printf("  pod %s: %s\n", pod.PodName, pod.Phase)
		for _, cond := range pod.Conditions {
			fmt.Printf("    %s=%s\n", cond.Type, cond.Status)
		}
	}
}

func printReportJSON(report *health.Report) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
