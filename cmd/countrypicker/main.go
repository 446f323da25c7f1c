// countrypicker lists, filters and looks up countries and drives country pickers.
package main

import (
	"github.com/hightemp/countrypicker/internal/cli"
)

// Build information (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.BuildTime = buildTime
	cli.Execute()
}
