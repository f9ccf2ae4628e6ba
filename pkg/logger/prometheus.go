package logger

import (
	log "github.com/sirupsen/logrus"

	"github.com/artem13815/jobboard/pkg/metrics"
)

// errorsHook считает ошибки в jobboard_errors_total по error_type.
// Значения вне известного набора попадают в "other", чтобы не плодить метки.
type errorsHook struct{}

func (errorsHook) Fire(entry *log.Entry) error {
	metrics.ErrorsCounter.WithLabelValues(errorLabel(entry)).Inc()
	return nil
}

func (errorsHook) Levels() []log.Level {
	return []log.Level{log.ErrorLevel, log.FatalLevel, log.PanicLevel}
}

func errorLabel(entry *log.Entry) string {
	t, ok := entry.Data[ErrorTypeField].(string)
	if !ok {
		return "unknown"
	}
	switch t {
	case ErrorTypeDb, ErrorTypeCache, ErrorTypeHTTP, ErrorTypeAuth:
		return t
	default:
		return "other"
	}
}
