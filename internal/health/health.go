// Package health reads the current status of a provisioned deployment.
package health

import (
	"context"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/kedactl/kedactl/internal/k8s"
)

// Report describes the observed state of a deployment and its pods.
type Report struct {
	DeploymentName    string      `json:"deployment_name"`
	Namespace         string      `json:"namespace"`
	Replicas          int32       `json:"replicas"`
	AvailableReplicas int32       `json:"available_replicas"`
	ReadyReplicas     int32       `json:"ready_replicas"`
	PodStatuses       []PodStatus `json:"pod_statuses"`
}

// PodStatus holds the phase and conditions of a single pod.
type PodStatus struct {
	PodName    string         `json:"pod_name"`
	Phase      string         `json:"phase"`
	Conditions []PodCondition `json:"conditions"`
}

// PodCondition is a single condition type/status pair.
type PodCondition struct {
	Type   string `json:"type"`
	Status string `json:"status"`
}

// Check reads the deployment status and the pods matching its app label.
// It performs no mutation and no retries.
func Check(ctx context.Context, client *k8s.Client, deploymentName, namespace string) (*Report, error) {
	deployment, err := client.Clientset.AppsV1().Deployments(namespace).Get(ctx, deploymentName, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to read deployment %s: %w", deploymentName, err)
	}

	pods, err := client.Clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{
		LabelSelector: fmt.Sprintf("app=%s", deploymentName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pods for %s: %w", deploymentName, err)
	}

	report := &Report{
		DeploymentName:    deploymentName,
		Namespace:         namespace,
		Replicas:          deployment.Status.Replicas,
		AvailableReplicas: deployment.Status.AvailableReplicas,
		ReadyReplicas:     deployment.Status.ReadyReplicas,
		PodStatuses:       make([]PodStatus, 0, len(pods.Items)),
	}

	for _, pod := range pods.Items {
		status := PodStatus{
			PodName:    pod.Name,
			Phase:      string(pod.Status.Phase),
			Conditions: make([]PodCondition, 0, len(pod.Status.Conditions)),
		}
		for _, cond := range pod.Status.Conditions {
			status.Conditions = append(status.Conditions, PodCondition{
				Type:   string(cond.Type),
				Status: string(cond.Status),
			})
		}
		report.PodStatuses = append(report.PodStatuses, status)
	}

	return report, nil
}
