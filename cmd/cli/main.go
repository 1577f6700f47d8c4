// Package main is the entry point for the cloud-portal CLI.
package main

import (
	"os"

	"cloud-portal/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
