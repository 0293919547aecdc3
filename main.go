package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/giygas/midi-sysex-ids/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	command := cli.NewSysexIDsCommand()
	err := command.ExecuteContext(ctx)
	stop()

	if err != nil {
		os.Exit(1)
	}
}
