package main

import (
	"os"

	"github.com/clitemplate/go-cli-template/internal/cli"
)

// version, commit, and date are set via ldflags at build time.
// A version that is not valid semver falls back to the packaged version.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := cli.Execute(version, commit, date); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
