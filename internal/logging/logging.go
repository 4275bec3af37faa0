// Package logging builds the logrus logger shared by the engine and workers.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lgbarn/movetx/internal/config"
	"github.com/lgbarn/movetx/internal/errors"
)

// New creates a logger writing to out (stderr when nil) at the configured
// level and format.
func New(cfg config.LogConfig, out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "log level %q", cfg.Level)
	}

	log := logrus.New()
	log.SetLevel(level)
	if out == nil {
		out = os.Stderr
	}
	log.SetOutput(out)

	switch cfg.Format {
	case config.LogFormatJSON:
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	case config.LogFormatText, "":
		log.SetFormatter(&logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: "15:04:05.000",
		})
	default:
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "log format %q", cfg.Format)
	}
	return log, nil
}

// Discard returns a logger that drops every entry.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
