// Package main is the entry point for the cloud-fee CLI.
package main

import (
	"os"

	"cloud-fee/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
