// Package tracelog appends outbound requests and their responses to a
// diagnostic file. Credentials and tokens are masked, and failures to open
// or write the file never reach the caller.
package tracelog

import (
	"os"

	"github.com/fivetwenty-io/flexvm/internal/constants"
	"github.com/sirupsen/logrus"
)

var sensitiveKeys = []string{"username", "password", "access_token", "refresh_token"}

// Logger writes trace entries to a file. A nil or disabled Logger is a no-op.
type Logger struct {
	path string
}

// New returns a trace logger for path. An empty path falls back to
// FORTIFLEX_LOG_PATH; when both are empty the logger is disabled.
func New(path string) *Logger {
	if path == "" {
		path = os.Getenv(constants.EnvLogPath)
	}

	return &Logger{path: path}
}

// Enabled reports whether entries are written.
func (l *Logger) Enabled() bool {
	return l != nil && l.path != ""
}

// Path returns the trace file location.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}

	return l.path
}

// Request records an outbound call.
func (l *Logger) Request(method, url string, payload map[string]interface{}) {
	l.write("FortiFlex request", logrus.Fields{
		"method":  method,
		"url":     url,
		"payload": Redact(payload),
	})
}

// Response records the decoded body of a reply.
func (l *Logger) Response(statusCode int, body map[string]interface{}) {
	l.write("FortiFlex response", logrus.Fields{
		"status_code": statusCode,
		"body":        Redact(body),
	})
}

func (l *Logger) write(msg string, fields logrus.Fields) {
	if !l.Enabled() {
		return
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, constants.LogFilePerm)
	if err != nil {
		return
	}
	defer f.Close()

	logger := logrus.New()
	logger.SetOutput(f)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.WithFields(fields).Info(msg)
}

// Redact returns a shallow copy of data with sensitive top-level fields
// replaced by the mask.
func Redact(data map[string]interface{}) map[string]interface{} {
	if data == nil {
		return nil
	}

	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = v
	}

	for _, key := range sensitiveKeys {
		if _, ok := out[key]; ok {
			out[key] = constants.RedactedValue
		}
	}

	return out
}
