// Package provision creates the deployment, service, and KEDA ScaledObject
// for a configured workload.
package provision

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/kedactl/kedactl/internal/config"
	"github.com/kedactl/kedactl/internal/k8s"
)

// Provisioner submits the three resources that make up a scaled deployment.
type Provisioner struct {
	client *k8s.Client
	log    logr.Logger
}

// New creates a Provisioner bound to a cluster session.
func New(client *k8s.Client, log logr.Logger) *Provisioner {
	return &Provisioner{
		client: client,
		log:    log,
	}
}

// Result summarizes a successful provisioning run.
type Result struct {
	DeploymentName string        `json:"deployment_name"`
	Namespace      string        `json:"namespace"`
	Endpoint       string        `json:"endpoint"`
	ScalingConfig  ScalingConfig `json:"scaling_config"`
}

// ScalingConfig echoes the scaling parameters the ScaledObject was created with.
type ScalingConfig struct {
	MinReplicas  int32             `json:"min_replicas"`
	MaxReplicas  int32             `json:"max_replicas"`
	ScalerType   string            `json:"scaler_type"`
	ScalerConfig map[string]string `json:"scaler_config"`
}

// Provision ensures the target namespace and creates the deployment, service,
// and ScaledObject in that order. Each call is attempted exactly once and the
// first failure aborts the sequence; resources created before the failure are
// left in place (no rollback).
func (p *Provisioner) Provision(ctx context.Context, cfg *config.DeploymentConfig) (*Result, error) {
	if err := p.client.EnsureNamespace(ctx, p.log, cfg.Namespace); err != nil {
		return nil, err
	}

	deployment, err := buildDeployment(cfg)
	if err != nil {
		return nil, err
	}
	if _, err := p.client.Clientset.AppsV1().Deployments(cfg.Namespace).Create(ctx, deployment, metav1.CreateOptions{}); err != nil {
		return nil, fmt.Errorf("failed to create deployment %s: %w", cfg.DeploymentName, err)
	}
	p.log.Info("created deployment", "deployment", cfg.DeploymentName, "namespace", cfg.Namespace)

	service := buildService(cfg)
	if _, err := p.client.Clientset.CoreV1().Services(cfg.Namespace).Create(ctx, service, metav1.CreateOptions{}); err != nil {
		return nil, fmt.Errorf("failed to create service %s: %w", cfg.ServiceName(), err)
	}
	p.log.Info("created service", "service", cfg.ServiceName(), "namespace", cfg.Namespace)

	scaledObject := buildScaledObject(cfg)
	if _, err := p.client.Dynamic.Resource(scaledObjectGVR).Namespace(cfg.Namespace).Create(ctx, scaledObject, metav1.CreateOptions{}); err != nil {
		return nil, fmt.Errorf("failed to create scaledobject %s: %w", cfg.ScalerName(), err)
	}
	p.log.Info("created scaledobject", "scaledobject", cfg.ScalerName(), "namespace", cfg.Namespace)

	return &Result{
		DeploymentName: cfg.DeploymentName,
		Namespace:      cfg.Namespace,
		Endpoint:       Endpoint(cfg),
		ScalingConfig: ScalingConfig{
			MinReplicas:  cfg.MinReplicas,
			MaxReplicas:  cfg.MaxReplicas,
			ScalerType:   cfg.ScalerType,
			ScalerConfig: cfg.ScalerConfig,
		},
	}, nil
}

// Endpoint returns the in-cluster DNS address of the deployment's service.
func Endpoint(cfg *config.DeploymentConfig) string {
	return fmt.Sprintf("%s.%s.svc.cluster.local:%d", cfg.ServiceName(), cfg.Namespace, cfg.Port)
}
