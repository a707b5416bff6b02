// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic and
// can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"

	"github.com/kedactl/kedactl/internal/config"
	"github.com/kedactl/kedactl/internal/health"
	"github.com/kedactl/kedactl/internal/k8s"
	"github.com/kedactl/kedactl/internal/keda"
	"github.com/kedactl/kedactl/internal/provision"
)

// Installer interface for testing - matches keda.Installer.
type Installer interface {
	Install(ctx context.Context, namespace string) error
}

// Provisioner interface for testing - matches provision.Provisioner.
type Provisioner interface {
	Provision(ctx context.Context, cfg *config.DeploymentConfig) (*provision.Result, error)
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newKubeClient creates the cluster session handle.
	newKubeClient = k8s.NewClient

	// loadConfigFile loads a deployment config from file.
	loadConfigFile = config.LoadFile

	// newInstaller creates a KEDA installer.
	newInstaller = func(client *k8s.Client, log logr.Logger) Installer {
		return keda.NewInstaller(client, log)
	}

	// newProvisioner creates a deployment provisioner.
	newProvisioner = func(client *k8s.Client, log logr.Logger) Provisioner {
		return provision.New(client, log)
	}

	// checkHealth reads deployment health.
	checkHealth = health.Check
)

// newLogger builds the logr.Logger used by all handlers. Verbose enables the
// V(1) output that helm and the installer emit.
func newLogger(verbose bool) logr.Logger {
	if verbose {
		stdr.SetVerbosity(1)
	}
	return stdr.New(log.New(os.Stderr, "", log.LstdFlags))
}
