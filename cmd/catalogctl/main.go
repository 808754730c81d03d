package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pribylovaa/vocal-site/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, os.Stdout, os.Stderr); err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}
