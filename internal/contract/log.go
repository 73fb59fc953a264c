package contract

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logLevel controls the verbosity of the shared logger.
var logLevel = zap.NewAtomicLevelAt(zapcore.WarnLevel)

// logger writes human-readable log lines to stderr so stdout stays clean for results.
var logger = newLogger()

func newLogger() *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), logLevel)
	return zap.New(core)
}

// Logger returns the shared logger.
func Logger() *zap.Logger {
	return logger
}

// SetVerbose switches the shared logger between warn and debug level.
func SetVerbose(verbose bool) {
	if verbose {
		logLevel.SetLevel(zapcore.DebugLevel)
		return
	}
	logLevel.SetLevel(zapcore.WarnLevel)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	logger.Error(msg, zap.Error(err))
	_ = logger.Sync()
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	logger.Warn(msg, zap.Error(err))
}

// LogDebug logs a debug message with structured fields.
func LogDebug(msg string, fields ...zap.Field) {
	logger.Debug(msg, fields...)
}
