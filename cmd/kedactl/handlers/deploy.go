package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/kedactl/kedactl/internal/provision"
)

// Deploy handles the deploy command.
//
// The configuration file is loaded and validated before any cluster call is
// made; a missing or invalid config therefore causes zero cluster mutations.
// With dryRun set, the rendered manifests are printed instead of applied.
func Deploy(ctx context.Context, kubeconfigPath, configPath string, dryRun, jsonOutput, verbose bool) error {
	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return err
	}

	if dryRun {
		manifests, err := provision.RenderManifests(cfg)
		if err != nil {
			return err
		}
		fmt.Print(string(manifests))
		return nil
	}

	client, err := newKubeClient(kubeconfigPath)
	if err != nil {
		return fmt.Errorf("failed to connect to cluster: %w", err)
	}

	provisioner := newProvisioner(client, newLogger(verbose))
	result, err := provisioner.Provision(ctx, cfg)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printResultJSON(result)
	}

	printResult(result)
	return nil
}

func printResult(result *provision.Result) {
	fmt.Printf("Deployment %s provisioned in namespace %s\n", result.DeploymentName, result.Namespace)
	fmt.Printf("  endpoint: %s\n", result.Endpoint)
	fmt.Printf("  scaling:  %d-%d replicas, trigger %s\n",
		result.ScalingConfig.MinReplicas, result.ScalingConfig.MaxReplicas, result.ScalingConfig.ScalerType)
}

func printResultJSON(result *provision.Result) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
