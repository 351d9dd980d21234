package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the runtime settings for the journal service.
type Config struct {
	Addr   string
	DBPath string
}

// Load reads configuration from the environment, after loading an
// optional .env file. Missing variables fall back to defaults.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		logrus.Info("Loaded configuration from .env")
	}

	return &Config{
		Addr:   getenv("JOURNAL_ADDR", ":8080"),
		DBPath: getenv("JOURNAL_DB_PATH", "data/badger"),
	}
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
