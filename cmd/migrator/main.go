package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-core/internal/config"
	"github.com/vancomm/minesweeper-core/internal/database"
)

func main() {
	log := logrus.New()
	if config.Development() {
		log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	db, err := config.NewDatabase()
	if err != nil {
		log.Fatal("failed to read database config: ", err)
	}

	version, dirty, err := database.Migrate(db)
	if err != nil {
		log.Error("failed to migrate: ", err)
		os.Exit(1)
	}

	log.WithFields(logrus.Fields{
		"version": version,
		"dirty":   dirty,
	}).Info("migration successful")
}
