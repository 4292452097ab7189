package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/agencydesk/internal/client/cli"
	"github.com/dmitrijs2005/agencydesk/internal/client/config"
	"github.com/dmitrijs2005/agencydesk/internal/flagx"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	if err := app.Run(ctx, flagx.Positional(os.Args[1:], config.CLIFlags)); err != nil {
		fmt.Fprintln(os.Stderr, "agencyctl:", err)
		stop()
		os.Exit(1)
	}
}
