package logger

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

const ErrorTypeField = "error_type"

const (
	ErrorTypeDb    = "db"
	ErrorTypeCache = "cache"
	ErrorTypeHTTP  = "http"
	ErrorTypeAuth  = "auth"
)

type Config struct {
	Level  string
	Format string
}

// Setup configures the process-wide logrus logger.
func Setup(cfg Config) {
	log.SetOutput(os.Stdout)

	if strings.EqualFold(cfg.Format, "json") {
		log.SetFormatter(&log.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	} else {
		log.SetFormatter(&log.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02T15:04:05.000 -0700",
		})
	}
	log.AddHook(errorsHook{})
	log.SetLevel(ParseLevel(cfg.Level))
}

// ParseLevel falls back to info for unknown values.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}
