package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// logger is usable before InitLog so packages can log from tests.
var logger = log.New(os.Stdout)

// InitLog configures the process logger. Unknown levels fall back to info.
func InitLog(appName string, logLevel string) {
	InitLogTo(os.Stdout, appName, logLevel)
}

// InitLogTo is InitLog with an explicit writer.
func InitLogTo(w io.Writer, appName string, logLevel string) {
	logger = log.New(w)
	logger.SetPrefix(appName)
	logger.SetReportTimestamp(true)
	logger.SetTimeFormat(time.DateTime)
	logger.SetReportCaller(true)
	logger.SetLevel(ParseLevel(logLevel))
}

// ParseLevel maps a config level name onto a charmbracelet level.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func Fatal(format string, args ...any) {
	logger.Helper()
	logger.Fatalf(format, args...)
}

func Info(format string, args ...any) {
	logger.Helper()
	logger.Infof(format, args...)
}

func Warn(format string, args ...any) {
	logger.Helper()
	logger.Warnf(format, args...)
}

func Error(format string, args ...any) {
	logger.Helper()
	logger.Errorf(format, args...)
}

func Debug(format string, args ...any) {
	logger.Helper()
	logger.Debugf(format, args...)
}
