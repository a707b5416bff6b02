package handlers

import (
	"context"
	"fmt"
)

// Install handles the install command.
//
// It connects to the cluster and installs (or upgrades) the KEDA operator in
// the given namespace, verifying the operator pods afterwards.
func Install(ctx context.Context, kubeconfigPath, namespace string, verbose bool) error {
	logger := newLogger(verbose)

	client, err := newKubeClient(kubeconfigPath)
	if err != nil {
		return fmt.Errorf("failed to connect to cluster: %w", err)
	}

	installer := newInstaller(client, logger)
	if err := installer.Install(ctx, namespace); err != nil {
		return err
	}

	fmt.Printf("KEDA installed in namespace %s\n", namespace)
	return nil
}
