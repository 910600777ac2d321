// Package main is the entry point for propctl CLI
package main

import (
	"os"

	"github.com/propuestas-project/propctl/cmd"
)

// Set at build time via ldflags
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	cmd.SetVersion(version)
	cmd.SetBuildInfo(commit, buildTime)
	os.Exit(cmd.Execute())
}
