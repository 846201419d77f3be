package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/saketh1999/consistency-cal-sub000/internal/buildinfo"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/cli"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/config"
	"github.com/saketh1999/consistency-cal-sub000/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	logger, closer, err := logging.NewFileLogger(logging.FileConfig{Path: cfg.LogFile, Debug: cfg.Debug})
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer closer.Close()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "client stopped", "error", err)
	}
}
