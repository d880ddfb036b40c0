// Command cellui runs the cellui demo and inspects its frames.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/cellui/cmd/cellui/cmd"
)

// Version information set via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, date)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
