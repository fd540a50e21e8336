// Package main provides the entry point for the onelock CLI.
package main

import (
	"context"
	"os"

	"github.com/onelock/onelock/internal/cli"
)

// Build-time variables set via ldflags.
//
//nolint:gochecknoglobals // populated by the release build
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	ctx := context.Background()
	info := cli.BuildInfo{Version: version, Commit: commit, Date: date}
	if err := cli.Execute(ctx, info); err != nil {
		os.Exit(1)
	}
}
