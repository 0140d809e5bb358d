package cmd

import (
	"bluebgg/internal/config"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func setupLogging(settings config.Log) {
	setupLoggingTo(os.Stderr, settings)
}

func setupLoggingTo(out io.Writer, settings config.Log) {
	zerolog.SetGlobalLevel(settings.Level)
	zerolog.TimeFieldFormat = time.RFC3339
	if settings.Format == config.LOG_FORMAT_JSON {
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.DateTime}).With().Timestamp().Logger()
}
