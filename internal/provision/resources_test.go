package provision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
)

func TestBuildDeployment(t *testing.T) {
	cfg := testConfig()
	cfg.EnvVars = map[string]string{
		"REGION":    "eu-central",
		"LOG_LEVEL": "debug",
	}

	deployment, err := buildDeployment(cfg)
	require.NoError(t, err)

	assert.Equal(t, "api", deployment.Name)
	assert.Equal(t, "prod", deployment.Namespace)
	assert.Equal(t, int32(2), *deployment.Spec.Replicas)
	assert.Equal(t, map[string]string{"app": "api"}, deployment.Spec.Selector.MatchLabels)
	assert.Equal(t, map[string]string{"app": "api"}, deployment.Spec.Template.Labels)

	require.Len(t, deployment.Spec.Template.Spec.Containers, 1)
	container := deployment.Spec.Template.Spec.Containers[0]
	assert.Equal(t, "api", container.Name)
	assert.Equal(t, "nginx:1.21", container.Image)
	require.Len(t, container.Ports, 1)
	assert.Equal(t, int32(8080), container.Ports[0].ContainerPort)

	assert.Equal(t, resource.MustParse("100m"), container.Resources.Requests[corev1.ResourceCPU])
	assert.Equal(t, resource.MustParse("128Mi"), container.Resources.Requests[corev1.ResourceMemory])
	assert.Equal(t, resource.MustParse("500m"), container.Resources.Limits[corev1.ResourceCPU])
	assert.Equal(t, resource.MustParse("256Mi"), container.Resources.Limits[corev1.ResourceMemory])

	// Env entries come out in sorted key order.
	require.Len(t, container.Env, 2)
	assert.Equal(t, corev1.EnvVar{Name: "LOG_LEVEL", Value: "debug"}, container.Env[0])
	assert.Equal(t, corev1.EnvVar{Name: "REGION", Value: "eu-central"}, container.Env[1])
}

func TestBuildDeploymentNoEnv(t *testing.T) {
	deployment, err := buildDeployment(testConfig())
	require.NoError(t, err)
	assert.Nil(t, deployment.Spec.Template.Spec.Containers[0].Env)
}

func TestBuildDeploymentInvalidQuantity(t *testing.T) {
	cfg := testConfig()
	cfg.MemoryLimit = "256Zz"

	_, err := buildDeployment(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid memory_limit")
}

func TestBuildService(t *testing.T) {
	service := buildService(testConfig())

	assert.Equal(t, "api-service", service.Name)
	assert.Equal(t, "prod", service.Namespace)
	assert.Equal(t, corev1.ServiceTypeClusterIP, service.Spec.Type)
	assert.Equal(t, map[string]string{"app": "api"}, service.Spec.Selector)
	require.Len(t, service.Spec.Ports, 1)
	assert.Equal(t, int32(8080), service.Spec.Ports[0].Port)
	assert.Equal(t, int32(8080), service.Spec.Ports[0].TargetPort.IntVal)
}

func TestBuildScaledObject(t *testing.T) {
	scaled := buildScaledObject(testConfig())

	assert.Equal(t, "keda.sh/v1alpha1", scaled.GetAPIVersion())
	assert.Equal(t, "ScaledObject", scaled.GetKind())
	assert.Equal(t, "api-scaler", scaled.GetName())
	assert.Equal(t, "prod", scaled.GetNamespace())

	spec := scaled.Object["spec"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"name": "api"}, spec["scaleTargetRef"])
	assert.Equal(t, int64(2), spec["minReplicaCount"])
	assert.Equal(t, int64(10), spec["maxReplicaCount"])

	triggers := spec["triggers"].([]interface{})
	require.Len(t, triggers, 1)
	trigger := triggers[0].(map[string]interface{})
	assert.Equal(t, "cpu", trigger["type"])
	assert.Equal(t, map[string]interface{}{"utilization": "70"}, trigger["metadata"])
}
