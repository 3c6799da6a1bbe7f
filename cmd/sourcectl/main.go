package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/ytget/source-editor/internal/cli"
)

// Set during build via -ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := cli.NewRootCommand(cli.WithBuildInfo(cli.BuildInfo{Version: version, Commit: commit, Date: date}))
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
