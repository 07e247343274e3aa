package main

import (
	"log"
	"os"
	"strings"
)

const (
	levelDebug = iota
	levelInfo
	levelWarn
	levelError
)

var logLevel = levelInfo

// SetLogLevel sets the minimum level for log output. Unknown values
// fall back to INFO.
func SetLogLevel(level string) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		logLevel = levelDebug
	case "INFO":
		logLevel = levelInfo
	case "WARN", "WARNING":
		logLevel = levelWarn
	case "ERROR":
		logLevel = levelError
	default:
		logLevel = levelInfo
		log.Printf("Unknown log level %q; defaulting to INFO", level)
	}
}

func Debug(format string, args ...interface{}) {
	if logLevel <= levelDebug {
		log.Printf("DEBUG "+format, args...)
	}
}

func Info(format string, args ...interface{}) {
	if logLevel <= levelInfo {
		log.Printf("INFO "+format, args...)
	}
}

func Warn(format string, args ...interface{}) {
	if logLevel <= levelWarn {
		log.Printf("WARN "+format, args...)
	}
}

func Error(format string, args ...interface{}) {
	if logLevel <= levelError {
		log.Printf("ERROR "+format, args...)
	}
}

func Fatal(format string, args ...interface{}) {
	log.Printf("FATAL "+format, args...)
	os.Exit(1)
}
