package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/meetrec/internal/client/cli"
	"github.com/dmitrijs2005/meetrec/internal/client/config"
	"github.com/dmitrijs2005/meetrec/internal/logging"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	logger, closeLog := logging.Setup(cfg.LogFile, logging.ParseLevel(cfg.LogLevel))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "meetrec: %v\n", err)
		_ = closeLog()
		os.Exit(1)
	}

	app.Run(ctx)

	if err := app.Close(); err != nil {
		logger.Error(ctx, "closing local database failed", "error", err)
	}
	_ = closeLog()
}
