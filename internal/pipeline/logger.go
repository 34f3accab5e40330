package pipeline

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/scrivenapp/scriven/internal/safety"
)

// Logger provides structured logging for pipeline runs.
type Logger struct {
	zap *zap.Logger
}

// NewLogger creates a Logger writing JSON records to a file. An empty
// logPath disables logging. Development mode uses the readable encoder
// config.
func NewLogger(logPath string, development bool) (*Logger, error) {
	if logPath == "" {
		return &Logger{zap: zap.NewNop()}, nil
	}

	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	var encoderConfig zapcore.EncoderConfig
	if development {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logFile),
		zapcore.InfoLevel,
	)

	return &Logger{zap: zap.New(core)}, nil
}

// NopLogger returns a Logger that discards everything.
func NopLogger() *Logger {
	return &Logger{zap: zap.NewNop()}
}

// Close syncs the logger; call on shutdown.
func (l *Logger) Close() error {
	return l.zap.Sync()
}

// PatchesExtracted logs the outcome of response extraction.
func (l *Logger) PatchesExtracted(count int, warnings []string) {
	l.zap.Info("patches extracted",
		zap.Int("count", count),
		zap.Strings("warnings", warnings),
	)
}

// PatchApplied logs one successful application.
func (l *Logger) PatchApplied(file string, kind string, linesAffected int, risk safety.RiskLevel) {
	l.zap.Info("patch applied",
		zap.String("file", file),
		zap.String("kind", kind),
		zap.Int("lines_affected", linesAffected),
		zap.String("risk", risk.String()),
	)
}

// PatchHeld logs a patch waiting on an approval decision.
func (l *Logger) PatchHeld(file string, risk safety.RiskLevel, reasons []string) {
	l.zap.Info("patch held for approval",
		zap.String("file", file),
		zap.String("risk", risk.String()),
		zap.Strings("reasons", reasons),
	)
}

// PatchFailed logs an application failure.
func (l *Logger) PatchFailed(file string, err error) {
	l.zap.Error("patch failed",
		zap.String("file", file),
		zap.Error(err),
	)
}

// BatchFinished logs batch totals.
func (l *Logger) BatchFinished(applied, held, rejected, failed, notAttempted int) {
	l.zap.Info("batch finished",
		zap.Int("applied", applied),
		zap.Int("held", held),
		zap.Int("rejected", rejected),
		zap.Int("failed", failed),
		zap.Int("not_attempted", notAttempted),
	)
}

// Error logs an error.
func (l *Logger) Error(msg string, err error) {
	l.zap.Error(msg, zap.Error(err))
}
