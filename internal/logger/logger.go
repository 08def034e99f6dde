package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.SugaredLogger. Output goes to a file because the TUI
// runs on the alternate screen and stray writes to stderr corrupt it.
type Logger struct {
	*zap.SugaredLogger
}

// New creates a Logger writing JSON lines to the given file path.
// An empty path discards all output.
func New(path string) (*Logger, error) {
	if path == "" {
		return Nop(), nil
	}

	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{path}
	config.ErrorOutputPaths = []string{path}

	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{SugaredLogger: zapLogger.Sugar()}, nil
}

// Nop returns a Logger that drops everything. Used in tests.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}
