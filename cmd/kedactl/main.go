// Package main is the entry point for the kedactl CLI.
//
// kedactl provisions KEDA-scaled deployments on a Kubernetes cluster: it
// installs the KEDA operator through Helm, creates a deployment, service,
// and ScaledObject from a YAML configuration file, and reports deployment
// health.
//
// For detailed usage information, run:
//
//	kedactl --help
package main

import (
	"fmt"
	"os"

	"github.com/kedactl/kedactl/cmd/kedactl/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
