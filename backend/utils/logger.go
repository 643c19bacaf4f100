package utils

import (
	"os"

	"github.com/rs/zerolog"
)

// InitLogger builds the service logger.
func InitLogger() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	return zerolog.New(os.Stdout).With().
		Timestamp().
		Str("app", "digital-life-lessons").
		Logger()
}
