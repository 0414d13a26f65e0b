package config

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// for Log

func initLogrus(_ *viper.Viper) {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		TimestampFormat: time.DateTime,
	})
	if Debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}

// ApplyLogLevel re-reads the Debug flag after flag parsing.
func ApplyLogLevel() {
	initLogrus(nil)
}

// NewSpanDumpLogger returns a debug-level JSON logger appending to path.
// If the file cannot be opened, the logger writes to stderr.
func NewSpanDumpLogger(path string) *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.DateTime,
	})
	out, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		logrus.WithError(err).Warn("SeeTrace couldn't open span dump file, using stderr")
		return logger
	}
	logger.SetOutput(out)
	return logger
}

func init() {
	initLogrus(nil)
}
