package Logger

import (
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"obstacle-detection/config"
	"obstacle-detection/models"
)

// Init configures the global zerolog logger and, when a DSN is set, sentry.
func Init(logConfig config.LogConfig, sentryConfig config.SentryConfig) error {
	zerolog.TimeFieldFormat = models.TimestampFormat

	level, err := zerolog.ParseLevel(logConfig.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logConfig.Level, err)
	}
	zerolog.SetGlobalLevel(level)

	if logConfig.Console {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}

	if sentryConfig.Dsn == "" {
		return nil
	}
	err = sentry.Init(sentry.ClientOptions{
		Dsn:              sentryConfig.Dsn,
		TracesSampleRate: sentryConfig.TracesSampleRate,
	})
	if err != nil {
		return fmt.Errorf("sentry.Init: %w", err)
	}
	return nil
}

// NewInputLogger opens filepath for appending and returns a logger writing JSON lines into it.
func NewInputLogger(filepath string) (*zerolog.Logger, error) {
	file, err := os.OpenFile(filepath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0664)
	if err != nil {
		return nil, err
	}
	logger := zerolog.New(file).With().Timestamp().Logger()
	return &logger, nil
}

func Flush() {
	sentry.Flush(2 * time.Second)
}
