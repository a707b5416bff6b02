package provision

import (
	"fmt"
	"sort"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/utils/ptr"

	"github.com/kedactl/kedactl/internal/config"
)

// scaledObjectGVR identifies the KEDA ScaledObject custom resource.
var scaledObjectGVR = schema.GroupVersionResource{
	Group:    "keda.sh",
	Version:  "v1alpha1",
	Resource: "scaledobjects",
}

// appLabels returns the selector labels shared by the deployment, its pod
// template, and the service.
func appLabels(name string) map[string]string {
	return map[string]string{"app": name}
}

// buildDeployment constructs the workload resource. The initial replica count
// is the scaling minimum; KEDA owns the count from there.
func buildDeployment(cfg *config.DeploymentConfig) (*appsv1.Deployment, error) {
	resources, err := buildResourceRequirements(cfg)
	if err != nil {
		return nil, err
	}

	deployment := &appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "apps/v1",
			Kind:       "Deployment",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      cfg.DeploymentName,
			Namespace: cfg.Namespace,
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: ptr.To(cfg.MinReplicas),
			Selector: &metav1.LabelSelector{
				MatchLabels: appLabels(cfg.DeploymentName),
			},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels: appLabels(cfg.DeploymentName),
				},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{
						{
							Name:  cfg.DeploymentName,
							Image: cfg.ImageRef(),
							Ports: []corev1.ContainerPort{
								{ContainerPort: cfg.Port},
							},
							Resources: resources,
							Env:       buildEnvVars(cfg.EnvVars),
						},
					},
				},
			},
		},
	}

	return deployment, nil
}

// buildResourceRequirements parses the configured quantity strings.
func buildResourceRequirements(cfg *config.DeploymentConfig) (corev1.ResourceRequirements, error) {
	quantities := make(map[string]resource.Quantity, 4)
	for field, value := range map[string]string{
		"cpu_request":    cfg.CPURequest,
		"cpu_limit":      cfg.CPULimit,
		"memory_request": cfg.MemoryRequest,
		"memory_limit":   cfg.MemoryLimit,
	} {
		q, err := resource.ParseQuantity(value)
		if err != nil {
			return corev1.ResourceRequirements{}, fmt.Errorf("invalid %s %q: %w", field, value, err)
		}
		quantities[field] = q
	}

	return corev1.ResourceRequirements{
		Requests: corev1.ResourceList{
			corev1.ResourceCPU:    quantities["cpu_request"],
			corev1.ResourceMemory: quantities["memory_request"],
		},
		Limits: corev1.ResourceList{
			corev1.ResourceCPU:    quantities["cpu_limit"],
			corev1.ResourceMemory: quantities["memory_limit"],
		},
	}, nil
}

// buildEnvVars converts the env_vars mapping to container env entries in
// sorted key order. Ordering is not semantically significant; sorting keeps
// the produced spec stable.
func buildEnvVars(envVars map[string]string) []corev1.EnvVar {
	if len(envVars) == 0 {
		return nil
	}

	keys := make([]string, 0, len(envVars))
	for k := range envVars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := make([]corev1.EnvVar, 0, len(keys))
	for _, k := range keys {
		env = append(env, corev1.EnvVar{Name: k, Value: envVars[k]})
	}
	return env
}

// buildService constructs the ClusterIP service fronting the deployment.
func buildService(cfg *config.DeploymentConfig) *corev1.Service {
	return &corev1.Service{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Service",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      cfg.ServiceName(),
			Namespace: cfg.Namespace,
		},
		Spec: corev1.ServiceSpec{
			Selector: appLabels(cfg.DeploymentName),
			Ports: []corev1.ServicePort{
				{
					Port:       cfg.Port,
					TargetPort: intstr.FromInt32(cfg.Port),
				},
			},
			Type: corev1.ServiceTypeClusterIP,
		},
	}
}

// buildScaledObject constructs the KEDA ScaledObject referencing the
// deployment, with a single trigger of the configured type.
func buildScaledObject(cfg *config.DeploymentConfig) *unstructured.Unstructured {
	triggerMetadata := make(map[string]interface{}, len(cfg.ScalerConfig))
	for k, v := range cfg.ScalerConfig {
		triggerMetadata[k] = v
	}

	return &unstructured.Unstructured{
		Object: map[string]interface{}{
			"apiVersion": "keda.sh/v1alpha1",
			"kind":       "ScaledObject",
			"metadata": map[string]interface{}{
				"name":      cfg.ScalerName(),
				"namespace": cfg.Namespace,
			},
			"spec": map[string]interface{}{
				"scaleTargetRef": map[string]interface{}{
					"name": cfg.DeploymentName,
				},
				"minReplicaCount": int64(cfg.MinReplicas),
				"maxReplicaCount": int64(cfg.MaxReplicas),
				"triggers": []interface{}{
					map[string]interface{}{
						"type":     cfg.ScalerType,
						"metadata": triggerMetadata,
					},
				},
			},
		},
	}
}
