package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/organizer/internal/cli"
	"github.com/arthur-debert/organizer/pkg/errors"
)

func main() {
	// SIGINT/SIGTERM stop the run before the next file
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := cli.NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		cli.PrintError(os.Stderr, err)
	}
	os.Exit(errors.ExitCode(err))
}
