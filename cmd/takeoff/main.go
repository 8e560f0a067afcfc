package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kuperiu/bimsyncManager/cmd/takeoff/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := commands.NewRootCommand(os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		// SilenceErrors is set on the root command
		_, _ = fmt.Fprintln(os.Stderr, commands.FormatError(err))
		os.Exit(1)
	}
}
