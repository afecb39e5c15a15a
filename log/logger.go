package log

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logger used across the server.
type Logger interface {
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Debug(msg string, fields ...zap.Field)
	Sync() error
	// Close flushes buffered entries and releases the log file, if any.
	Close() error
}

type loggerImpl struct {
	zapLogger *zap.Logger
	logFile   *os.File
}

var _ Logger = &loggerImpl{}

// NoOpLogger discards everything. Used by tests.
type NoOpLogger struct{}

var _ Logger = &NoOpLogger{}

// NewNopLogger returns a logger that discards all entries.
func NewNopLogger() Logger {
	return &NoOpLogger{}
}

func (*NoOpLogger) Info(msg string, fields ...zap.Field)  {}
func (*NoOpLogger) Warn(msg string, fields ...zap.Field)  {}
func (*NoOpLogger) Error(msg string, fields ...zap.Field) {}
func (*NoOpLogger) Debug(msg string, fields ...zap.Field) {}
func (*NoOpLogger) Sync() error                           { return nil }
func (*NoOpLogger) Close() error                          { return nil }

// NewLogger creates a zap backed logger.
// In production mode, entries are JSON encoded; otherwise they use the console encoder.
// If fileName is non-empty, entries are written to that file in addition to stdout.
// logLevelStr must be one of debug, info, warn, error.
func NewLogger(isProduction bool, fileName string, logLevelStr string) (Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(logLevelStr)); err != nil {
		return nil, fmt.Errorf("invalid log level (%s): %w", logLevelStr, err)
	}

	var encoderConfig zapcore.EncoderConfig
	if isProduction {
		encoderConfig = zap.NewProductionEncoderConfig()
	} else {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if isProduction {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	var logFile *os.File
	writers := []zapcore.WriteSyncer{zapcore.AddSync(os.Stdout)}
	if fileName != "" {
		var err error
		logFile, err = os.OpenFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		writers = append(writers, zapcore.AddSync(logFile))
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(writers...), zap.NewAtomicLevelAt(level))

	opts := []zap.Option{zap.AddCaller(), zap.AddCallerSkip(1)}
	if !isProduction {
		opts = append(opts, zap.Development())
	}

	return &loggerImpl{
		zapLogger: zap.New(core, opts...),
		logFile:   logFile,
	}, nil
}

// Info implements Logger.
func (l *loggerImpl) Info(msg string, fields ...zap.Field) {
	l.zapLogger.Info(msg, fields...)
}

// Warn implements Logger.
func (l *loggerImpl) Warn(msg string, fields ...zap.Field) {
	l.zapLogger.Warn(msg, fields...)
}

// Error implements Logger.
func (l *loggerImpl) Error(msg string, fields ...zap.Field) {
	l.zapLogger.Error(msg, fields...)
}

// Debug implements Logger.
func (l *loggerImpl) Debug(msg string, fields ...zap.Field) {
	l.zapLogger.Debug(msg, fields...)
}

// Sync implements Logger.
func (l *loggerImpl) Sync() error {
	return l.zapLogger.Sync()
}

// Close implements Logger.
// The logger must not be used afterwards.
func (l *loggerImpl) Close() error {
	// stdout cannot be synced on some platforms, the file is synced on its own
	_ = l.zapLogger.Sync()

	if l.logFile == nil {
		return nil
	}

	if err := l.logFile.Sync(); err != nil {
		_ = l.logFile.Close()
		return err
	}

	return l.logFile.Close()
}
