package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var log *logrus.Logger

// Init configures the package logger. LOG_LEVEL picks the level, a CLI
// defaults to warn so stdout stays clean. verbose forces debug.
func Init(verbose bool) {
	log = newLogger(os.Stderr, os.Getenv("LOG_LEVEL"), verbose)
}

func newLogger(out io.Writer, level string, verbose bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)

	switch strings.ToLower(level) {
	case "debug":
		l.SetLevel(logrus.DebugLevel)
	case "info":
		l.SetLevel(logrus.InfoLevel)
	case "error":
		l.SetLevel(logrus.ErrorLevel)
	default:
		l.SetLevel(logrus.WarnLevel)
	}
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	}

	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return l
}

// GetLogger returns the configured logger instance
func GetLogger() *logrus.Logger {
	if log == nil {
		Init(false)
	}
	return log
}

func WithField(key string, value interface{}) *logrus.Entry {
	return GetLogger().WithField(key, value)
}

func WithFields(fields logrus.Fields) *logrus.Entry {
	return GetLogger().WithFields(fields)
}

func WithError(err error) *logrus.Entry {
	return GetLogger().WithError(err)
}

func Warn(args ...interface{}) {
	GetLogger().Warn(args...)
}
