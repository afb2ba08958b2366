package logging

import (
	"os"

	"go.uber.org/zap"
)

// DebugEnabled returns true if debug mode is enabled via LT_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("LT_DEBUG") != ""
}

// Debugf logs a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		debugLogger().Debugf(format, args...)
	}
}

// Debugln logs a debug message only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		debugLogger().Debugln(args...)
	}
}

func debugLogger() *zap.SugaredLogger {
	return zap.L().Sugar()
}
