// padbind identifies gamepad controllers and manages binding profiles.
//
// It resolves raw hardware descriptors into canonical controller names
// and maintains the layered profiles that map buttons to actions.
package main

import (
	"fmt"
	"os"

	"github.com/rmrfslashbin/padbind/internal/cmd"
)

// Build information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildTime = "unknown"
)

func main() {
	// Set version info for commands to use
	cmd.SetVersionInfo(version, gitCommit, buildTime)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
