package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Logger interface for structured logging
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Fatal(msg string, err error, fields ...interface{})
}

// SimpleLogger implements Logger with basic Go logging
type SimpleLogger struct {
	infoLogger  *log.Logger
	errorLogger *log.Logger
	warnLogger  *log.Logger
	debugLogger *log.Logger
}

// NewSimpleLogger creates a new simple logger
func NewSimpleLogger() Logger {
	return NewWriterLogger(os.Stdout, os.Stderr)
}

// NewWriterLogger creates a simple logger writing info/warn/debug to out and errors to errOut
func NewWriterLogger(out, errOut io.Writer) Logger {
	flags := log.Ldate | log.Ltime | log.Lmsgprefix
	return &SimpleLogger{
		infoLogger:  log.New(out, "INFO: ", flags),
		errorLogger: log.New(errOut, "ERROR: ", flags),
		warnLogger:  log.New(out, "WARN: ", flags),
		debugLogger: log.New(out, "DEBUG: ", flags),
	}
}

// Info logs an info message
func (l *SimpleLogger) Info(msg string, fields ...interface{}) {
	l.infoLogger.Print(msg + formatFields(fields))
}

// Error logs an error message
func (l *SimpleLogger) Error(msg string, err error, fields ...interface{}) {
	l.errorLogger.Printf("%s: %v%s", msg, err, formatFields(fields))
}

// Warn logs a warning message
func (l *SimpleLogger) Warn(msg string, fields ...interface{}) {
	l.warnLogger.Print(msg + formatFields(fields))
}

// Debug logs a debug message
func (l *SimpleLogger) Debug(msg string, fields ...interface{}) {
	l.debugLogger.Print(msg + formatFields(fields))
}

// Fatal logs a fatal error and exits
func (l *SimpleLogger) Fatal(msg string, err error, fields ...interface{}) {
	l.errorLogger.Fatalf("%s: %v%s", msg, err, formatFields(fields))
}

// formatFields renders alternating key/value pairs as " key=value key=value".
// A trailing key without a value is rendered as "key=?".
func formatFields(fields []interface{}) string {
	if len(fields) == 0 {
		return ""
	}

	var b strings.Builder
	for i := 0; i < len(fields); i += 2 {
		b.WriteByte(' ')
		if i+1 < len(fields) {
			fmt.Fprintf(&b, "%v=%v", fields[i], fields[i+1])
		} else {
			fmt.Fprintf(&b, "%v=?", fields[i])
		}
	}
	return b.String()
}

// NopLogger discards everything
type NopLogger struct{}

// NewNopLogger creates a logger that discards all output
func NewNopLogger() Logger {
	return NopLogger{}
}

func (NopLogger) Info(string, ...interface{})         {}
func (NopLogger) Error(string, error, ...interface{}) {}
func (NopLogger) Warn(string, ...interface{})         {}
func (NopLogger) Debug(string, ...interface{})        {}
func (NopLogger) Fatal(string, error, ...interface{}) {}
