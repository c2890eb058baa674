// Package main is the entry point for the heartops CLI.
//
// heartops is a command-line tool for deploying the heart-disease inference
// API to Azure. It provisions the resource group, container registry and
// managed Kubernetes cluster, remote-builds the container image, applies the
// workload manifests and reconciles the service's public network identity.
// Every command works from the declared configuration alone, nothing is
// persisted between runs.
//
// Commands: init, deploy, build, status, smoke.
//
// For detailed usage information, run:
//
//	heartops --help
package main

import (
	"fmt"
	"os"

	"github.com/cardioml/heartops/cmd/heartops/commands"
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
