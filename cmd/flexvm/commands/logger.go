package commands

import (
	"io"

	"github.com/fivetwenty-io/flexvm/pkg/flexvm"
	"github.com/sirupsen/logrus"
)

// logrusLogger adapts a logrus logger to flexvm.Logger.
type logrusLogger struct {
	logger *logrus.Logger
}

var _ flexvm.Logger = (*logrusLogger)(nil)

// newLogger writes text logs to out: warnings and errors only unless verbose.
func newLogger(out io.Writer, verbose bool) *logrusLogger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.WarnLevel)

	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	return &logrusLogger{logger: logger}
}

func (l *logrusLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.WithFields(fields).Debug(msg)
}

func (l *logrusLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.WithFields(fields).Info(msg)
}

func (l *logrusLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.WithFields(fields).Warn(msg)
}

func (l *logrusLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.WithFields(fields).Error(msg)
}
