// Package keda installs the KEDA operator through the Helm SDK and verifies
// that it is running.
package keda

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-logr/logr"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"helm.sh/helm/v3/pkg/action"
	"helm.sh/helm/v3/pkg/chart/loader"
	"helm.sh/helm/v3/pkg/cli"
	"helm.sh/helm/v3/pkg/getter"
	"helm.sh/helm/v3/pkg/repo"

	"github.com/kedactl/kedactl/internal/k8s"
)

const (
	// DefaultNamespace is where the KEDA operator is installed.
	DefaultNamespace = "keda"

	repoName    = "kedacore"
	repoURL     = "https://kedacore.github.io/charts"
	chartName   = "keda"
	releaseName = "keda"

	operatorLabelSelector = "app=keda-operator"

	helmTimeout = 5 * time.Minute
)

// Installer manages the KEDA Helm release on a cluster.
type Installer struct {
	client   *k8s.Client
	settings *cli.EnvSettings
	log      logr.Logger
}

// NewInstaller creates an Installer bound to a cluster session.
func NewInstaller(client *k8s.Client, log logr.Logger) *Installer {
	return &Installer{
		client:   client,
		settings: cli.New(),
		log:      log,
	}
}

// Install adds the kedacore chart repository, ensures the target namespace,
// installs or upgrades the keda release, and verifies the operator pods are
// running.
func (i *Installer) Install(ctx context.Context, namespace string) error {
	if err := i.addRepo(); err != nil {
		return fmt.Errorf("failed to add keda chart repository: %w", err)
	}

	if err := i.client.EnsureNamespace(ctx, i.log, namespace); err != nil {
		return err
	}

	if err := i.installOrUpgrade(ctx, namespace); err != nil {
		return err
	}

	return i.VerifyOperator(ctx, namespace)
}

// addRepo registers the kedacore repository and downloads its index, the
// equivalent of `helm repo add` + `helm repo update` for this one repo.
func (i *Installer) addRepo() error {
	f, err := repo.LoadFile(i.settings.RepositoryConfig)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if os.IsNotExist(err) {
		f = repo.NewFile()
	}

	entry := repo.Entry{
		Name: repoName,
		URL:  repoURL,
	}

	r, err := repo.NewChartRepository(&entry, getter.All(i.settings))
	if err != nil {
		return err
	}
	if _, err := r.DownloadIndexFile(); err != nil {
		return err
	}

	f.Update(&entry)
	return f.WriteFile(i.settings.RepositoryConfig, 0o644)
}

// installOrUpgrade installs the keda chart, or upgrades the release when its
// history shows it is already present.
func (i *Installer) installOrUpgrade(ctx context.Context, namespace string) error {
	actionConfig := new(action.Configuration)
	clientGetter := newRESTClientGetter(i.client.RESTConfig, namespace)

	logFn := func(format string, v ...interface{}) {
		i.log.V(1).Info(fmt.Sprintf(format, v...))
	}
	if err := actionConfig.Init(clientGetter, namespace, os.Getenv("HELM_DRIVER"), logFn); err != nil {
		return fmt.Errorf("failed to init helm action config: %w", err)
	}

	cp := &action.ChartPathOptions{RepoURL: repoURL}
	chartPath, err := cp.LocateChart(chartName, i.settings)
	if err != nil {
		return fmt.Errorf("failed to locate keda chart: %w", err)
	}

	chart, err := loader.Load(chartPath)
	if err != nil {
		return fmt.Errorf("failed to load keda chart: %w", err)
	}

	histClient := action.NewHistory(actionConfig)
	histClient.Max = 1
	if _, err := histClient.Run(releaseName); err == nil {
		upgrade := action.NewUpgrade(actionConfig)
		upgrade.Namespace = namespace
		upgrade.Wait = true
		upgrade.Timeout = helmTimeout
		if _, err := upgrade.RunWithContext(ctx, releaseName, chart, nil); err != nil {
			return fmt.Errorf("helm upgrade failed: %w", err)
		}
		i.log.Info("upgraded keda release", "namespace", namespace)
		return nil
	}

	install := action.NewInstall(actionConfig)
	install.ReleaseName = releaseName
	install.Namespace = namespace
	install.CreateNamespace = true
	install.Wait = true
	install.Timeout = helmTimeout
	if _, err := install.RunWithContext(ctx, chart, nil); err != nil {
		return fmt.Errorf("helm install failed: %w", err)
	}
	i.log.Info("installed keda release", "namespace", namespace)
	return nil
}

// VerifyOperator checks that operator pods exist and are all running. The
// check is performed once; helm's own wait covers rollout timing.
func (i *Installer) VerifyOperator(ctx context.Context, namespace string) error {
	pods, err := i.client.Clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{
		LabelSelector: operatorLabelSelector,
	})
	if err != nil {
		return fmt.Errorf("failed to list keda operator pods: %w", err)
	}

	if len(pods.Items) == 0 {
		return fmt.Errorf("keda operator pod not found in namespace %s", namespace)
	}

	for _, pod := range pods.Items {
		if pod.Status.Phase != corev1.PodRunning {
			return fmt.Errorf("keda operator pod %s is not running (phase %s)", pod.Name, pod.Status.Phase)
		}
	}

	i.log.Info("keda operator is running", "namespace", namespace, "pods", len(pods.Items))
	return nil
}
