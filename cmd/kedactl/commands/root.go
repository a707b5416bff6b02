// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated to
// handler functions in the handlers package.
package commands

import "github.com/spf13/cobra"

var (
	kubeconfigPath string
	verbose        bool
)

// Root returns the root command for the kedactl CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kedactl",
		Short: "Provision KEDA-scaled deployments on Kubernetes",
	}

	cmd.PersistentFlags().StringVar(&kubeconfigPath, "kubeconfig", "", "Path to kubeconfig file (default: in-cluster config)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(Install())
	cmd.AddCommand(Deploy())
	cmd.AddCommand(Health())
	cmd.AddCommand(Version())

	return cmd
}
