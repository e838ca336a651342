package walker

import (
	"go.uber.org/zap"

	"github.com/ricechen/packmigrate/internal/logging"
)

// LogReporter is the default Reporter: one structured log line per file.
type LogReporter struct {
	Log *logging.Logger
}

// FileDone implements Reporter.
func (r *LogReporter) FileDone(ev FileEvent) {
	fields := []zap.Field{
		zap.String("path", ev.Path),
		zap.String("outcome", string(ev.Outcome)),
	}
	if ev.Detail != "" {
		fields = append(fields, zap.String("detail", ev.Detail))
	}
	switch ev.Outcome {
	case OutcomeError:
		r.Log.Error("file failed", fields...)
	case OutcomeSkipped:
		r.Log.Warn("file skipped", fields...)
	default:
		r.Log.Info("file processed", fields...)
	}
}
