// Package logger wraps a zap logger behind printf-style helpers so the rest of
// the daemon never has to carry a logger around.
package logger

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.Logger
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	mu     sync.RWMutex
)

func init() {
	// Define a stdout with Locking so that the logging methods are
	// safe for concurrent use.
	console := zapcore.Lock(os.Stdout)

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), console, level)
	logger = zap.New(core)
}

// SetLevel changes the minimum level written to the console. Unknown names
// leave the level unchanged and return false.
func SetLevel(name string) bool {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		return false
	}
	level.SetLevel(l)
	return true
}

// Replace swaps the underlying logger. Tests use it with zaptest/observer
// cores; it returns a function restoring the previous logger.
func Replace(l *zap.Logger) func() {
	mu.Lock()
	prev := logger
	logger = l
	mu.Unlock()
	return func() {
		mu.Lock()
		logger = prev
		mu.Unlock()
	}
}

func sugar() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger.Sugar()
}

// Sync flushes any buffered log entries. This should be called before exiting
// the program.
func Sync() {
	mu.RLock()
	err := logger.Sync()
	mu.RUnlock()
	if err != nil && !strings.Contains(err.Error(), "sync /dev/stdout") {
		Errorf("failed to drain log queues: %s", err)
	}
}

// Debug constructs a debug message.
func Debug(v ...interface{}) {
	sugar().Debug(v...)
}

// Info constructs a log message.
func Info(v ...interface{}) {
	sugar().Info(v...)
}

// FastInfo logs with strongly-typed fields and no formatting. Use it on the
// flight loop where allocations matter.
func FastInfo(msg string, fields ...zapcore.Field) {
	mu.RLock()
	defer mu.RUnlock()
	logger.Info(msg, fields...)
}

// Error logs an error.
func Error(err error) {
	sugar().Error(err)
}

// Warning logs a warning.
func Warning(err error) {
	sugar().Warn(err)
}

// Debugf is like Debug, but it respects printf syntax.
func Debugf(format string, v ...interface{}) {
	sugar().Debugf(format, v...)
}

// Infof is like Info, but it respects printf syntax.
func Infof(format string, v ...interface{}) {
	sugar().Infof(format, v...)
}

// Errorf is like Error, but it respects printf syntax.
func Errorf(format string, v ...interface{}) {
	sugar().Errorf(format, v...)
}

// Warningf is like Warning, but it respects printf syntax.
func Warningf(format string, v ...interface{}) {
	sugar().Warnf(format, v...)
}

// Fatalf logs and exits the process. Only main may call it.
func Fatalf(format string, v ...interface{}) {
	sugar().Fatalf(format, v...)
}
