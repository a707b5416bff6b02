package commands

import (
	"github.com/spf13/cobra"

	"github.com/kedactl/kedactl/cmd/kedactl/handlers"
)

// Health returns the command for checking deployment health.
//
// Required flags:
//
//	--deployment, -d: Deployment name
//
// Optional flags:
//
//	--namespace, -n: Namespace of the deployment (default: default)
//	--json: Output the report in JSON format
func Health() *cobra.Command {
	var deployment string
	var namespace string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Show deployment health status",
		Long: `Display the health of a provisioned deployment.

Shows desired, available, and ready replica counts plus the phase and
conditions of every pod backing the deployment.

Examples:
  # Check a deployment in the default namespace
  kedactl health --deployment api

  # Check a deployment in a specific namespace, as JSON
  kedactl health --deployment api --namespace prod --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Health(cmd.Context(), kubeconfigPath, deployment, namespace, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&deployment, "deployment", "d", "", "Deployment name")
	cmd.Flags().StringVarP(&namespace, "namespace", "n", "default", "Namespace of the deployment")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	_ = cmd.MarkFlagRequired("deployment")

	return cmd
}
