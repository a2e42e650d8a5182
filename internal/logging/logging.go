package logging

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/tanalabs/tanacoin-client/internal/config"
)

// New builds the application logger. DEV gets the human-readable console
// writer, everything else emits structured JSON.
func New(cfg config.EnvConfig) zerolog.Logger {
	logger := zerolog.New(os.Stderr).With().
		Timestamp().
		Str("app", cfg.GetAppName()).
		Logger()

	if cfg.GetEnv() == "DEV" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return logger
}
