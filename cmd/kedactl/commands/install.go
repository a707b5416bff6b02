package commands

import (
	"github.com/spf13/cobra"

	"github.com/kedactl/kedactl/cmd/kedactl/handlers"
	"github.com/kedactl/kedactl/internal/keda"
)

// Install returns the command for installing the KEDA operator.
//
// Optional flags:
//
//	--namespace, -n: Namespace to install KEDA into (default: keda)
func Install() *cobra.Command {
	var namespace string

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the KEDA operator via Helm",
		Long: `Install the KEDA autoscaling operator into the cluster.

Adds the kedacore chart repository, installs (or upgrades) the keda Helm
release, and verifies that the operator pods are running.

Examples:
  # Install KEDA into the default keda namespace
  kedactl install

  # Install KEDA into a custom namespace
  kedactl install --namespace autoscaling`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Install(cmd.Context(), kubeconfigPath, namespace, verbose)
		},
	}

	cmd.Flags().StringVarP(&namespace, "namespace", "n", keda.DefaultNamespace, "Namespace to install KEDA into")

	return cmd
}
