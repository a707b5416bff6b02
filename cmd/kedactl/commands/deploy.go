package commands

import (
	"github.com/spf13/cobra"

	"github.com/kedactl/kedactl/cmd/kedactl/handlers"
)

// Deploy returns the command for provisioning a scaled deployment.
//
// Required flags:
//
//	--config, -c: Path to the deployment configuration YAML file
//
// Optional flags:
//
//	--dry-run: Render the manifests without touching the cluster
//	--json: Output the provisioning summary in JSON format
func Deploy() *cobra.Command {
	var configPath string
	var dryRun bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Provision a deployment with KEDA autoscaling",
		Long: `Create a deployment, service, and KEDA ScaledObject from a config file.

The configuration file describes the workload (image, port, resources,
environment) and its scaling behavior (replica bounds, trigger type and
parameters). The target namespace is created if it does not exist.

Examples:
  # Provision from a config file
  kedactl deploy --config app.yaml

  # Render the manifests without creating anything
  kedactl deploy --config app.yaml --dry-run`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), kubeconfigPath, configPath, dryRun, jsonOutput, verbose)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to deployment configuration file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render manifests without applying them")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output summary in JSON format")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
