package main

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"github.com/deepline-bio/ancestrymatch/internal/cli"
	"github.com/deepline-bio/ancestrymatch/internal/logger"
)

func main() {

	LOG_LEVEL := zapcore.InfoLevel
	if lvl := os.Getenv("ANCESTRYMATCH_LOG_LEVEL"); lvl != "" {
		if parsed, err := zapcore.ParseLevel(lvl); err == nil {
			LOG_LEVEL = parsed
		}
	}

	if err := logger.InitLogger(LOG_LEVEL); err != nil {
		panic(err)
	}

	// Try load env
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env found, using local environment")
	}

	defer logger.Sync() // Make sure that the buffered is flushed.

	cli.Execute()
}
