package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const defaultAddr = ":8080"

type Config struct {
	Addr           string
	Development    bool
	LogFile        string
	AllowedOrigins []string
	Database       *Database
}

func Load() (*Config, error) {
	db, err := NewDatabase()
	if err != nil {
		return nil, fmt.Errorf("unable to read database config: %w", err)
	}

	config := &Config{
		Addr:           Port(),
		Development:    Development(),
		LogFile:        os.Getenv("LOG_FILE"),
		AllowedOrigins: AllowedOrigins(),
		Database:       db,
	}

	return config, nil
}

func Port() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok || port == "" {
		return defaultAddr
	}
	if !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}

// AllowedOrigins reads a comma separated CORS_ORIGINS list. An empty
// list allows any origin.
func AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(os.Getenv("CORS_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (c Config) Fields() logrus.Fields {
	return logrus.Fields{
		"addr":            c.Addr,
		"development":     c.Development,
		"log_file":        c.LogFile,
		"allowed_origins": c.AllowedOrigins,
		"pg_host":         c.Database.Host,
		"pg_port":         c.Database.Port,
		"pg_user":         c.Database.Username,
		"pg_db_name":      c.Database.DBName,
		"pg_from_url":     c.Database.url != "",
	}
}
