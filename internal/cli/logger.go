package cli

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/ppiankov/qticonv/internal/model"
	"github.com/sirupsen/logrus"
)

// newLogger builds the diagnostics logger for one run. Every entry carries
// the run identifier so interleaved runs can be told apart.
func newLogger(cfg model.LogConfig, debug bool, w io.Writer) (*logrus.Entry, error) {
	logger := logrus.New()
	logger.SetOutput(w)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	if debug {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)

	switch cfg.Format {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("log format must be text or json, got %q", cfg.Format)
	}

	return logger.WithField("run", uuid.NewString()), nil
}
