// CLI entry point for the measurement prediction service.
package main

import (
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/interfaces/cli"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func init() {
	cli.Version = version
	cli.GitCommit = commit
	cli.BuildDate = buildDate
}

func main() {
	cli.ExitOnError(cli.Execute())
}
