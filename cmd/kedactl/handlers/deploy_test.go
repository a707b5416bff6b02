package handlers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/runtime"
	dynfake "k8s.io/client-go/dynamic/fake"
	k8sfake "k8s.io/client-go/kubernetes/fake"

	"github.com/kedactl/kedactl/internal/config"
	"github.com/kedactl/kedactl/internal/k8s"
	"github.com/kedactl/kedactl/internal/provision"
)

const testConfigYAML = `deployment_name: api
namespace: prod
image: nginx
tag: "1.21"
cpu_request: 100m
cpu_limit: 500m
memory_request: 128Mi
memory_limit: 256Mi
port: 8080
min_replicas: 2
max_replicas: 10
scaler_type: cpu
scaler_config:
  utilization: "70"
`

func fakeKubeClient() *k8s.Client {
	return k8s.NewFromClients(
		k8sfake.NewSimpleClientset(),
		dynfake.NewSimpleDynamicClient(runtime.NewScheme()),
	)
}

// stubProvisioner records the config it was called with.
type stubProvisioner struct {
	cfg    *config.DeploymentConfig
	result *provision.Result
	err    error
}

func (s *stubProvisioner) Provision(_ context.Context, cfg *config.DeploymentConfig) (*provision.Result, error) {
	s.cfg = cfg
	return s.result, s.err
}

func restoreFactories(t *testing.T) {
	t.Helper()
	origClient := newKubeClient
	origLoad := loadConfigFile
	origInstaller := newInstaller
	origProvisioner := newProvisioner
	origHealth := checkHealth
	t.Cleanup(func() {
		newKubeClient = origClient
		loadConfigFile = origLoad
		newInstaller = origInstaller
		newProvisioner = origProvisioner
		checkHealth = origHealth
	})
}

func TestDeployConfigErrorSkipsCluster(t *testing.T) {
	restoreFactories(t)

	loadConfigFile = func(string) (*config.DeploymentConfig, error) {
		return nil, errors.New("bad config")
	}
	newKubeClient = func(string) (*k8s.Client, error) {
		t.Fatal("cluster client must not be created when the config fails to load")
		return nil, nil
	}

	err := Deploy(context.Background(), "", "deploy.yaml", false, false, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad config")
}

func TestDeployDryRun(t *testing.T) {
	restoreFactories(t)

	newKubeClient = func(string) (*k8s.Client, error) {
		t.Fatal("dry-run must not touch the cluster")
		return nil, nil
	}

	path := filepath.Join(t.TempDir(), "deploy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0o600))

	err := Deploy(context.Background(), "", path, true, false, false)
	assert.NoError(t, err)
}

func TestDeploySuccess(t *testing.T) {
	restoreFactories(t)

	stub := &stubProvisioner{
		result: &provision.Result{
			DeploymentName: "api",
			Namespace:      "prod",
			Endpoint:       "api-service.prod.svc.cluster.local:8080",
		},
	}
	newKubeClient = func(string) (*k8s.Client, error) { return fakeKubeClient(), nil }
	newProvisioner = func(*k8s.Client, logr.Logger) Provisioner { return stub }

	path := filepath.Join(t.TempDir(), "deploy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0o600))

	err := Deploy(context.Background(), "", path, false, false, false)
	require.NoError(t, err)
	require.NotNil(t, stub.cfg)
	assert.Equal(t, "api", stub.cfg.DeploymentName)
}

func TestDeployProvisionError(t *testing.T) {
	restoreFactories(t)

	stub := &stubProvisioner{err: errors.New("cluster said no")}
	newKubeClient = func(string) (*k8s.Client, error) { return fakeKubeClient(), nil }
	newProvisioner = func(*k8s.Client, logr.Logger) Provisioner { return stub }

	path := filepath.Join(t.TempDir(), "deploy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0o600))

	err := Deploy(context.Background(), "", path, false, false, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cluster said no")
}

func TestDeployConnectionError(t *testing.T) {
	restoreFactories(t)

	newKubeClient = func(string) (*k8s.Client, error) {
		return nil, errors.New("no such host")
	}

	path := filepath.Join(t.TempDir(), "deploy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0o600))

	err := Deploy(context.Background(), "", path, false, false, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to cluster")
}
