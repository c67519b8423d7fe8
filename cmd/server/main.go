package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-core/internal/app"
	"github.com/vancomm/minesweeper-core/internal/config"
	"github.com/vancomm/minesweeper-core/internal/database"
	"github.com/vancomm/minesweeper-core/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("failed to read config: ", err)
	}

	log, err := newLogger(cfg)
	if err != nil {
		logrus.Fatal("failed to set up logging: ", err)
	}

	log.Info("starting up")
	log.WithFields(cfg.Fields()).Debug("config")

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	db, err := database.ConnectAndMigrate(ctx, cfg.Database)
	if err != nil {
		log.Fatal("failed to connect and migrate db: ", err)
	}
	defer db.Close()

	a := app.New(log, cfg, repository.New(db))
	if err := a.Start(ctx); err != nil {
		log.Error("exit reason: ", err)
		os.Exit(1)
	}
	log.Info("shut down")
}
