package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/flexvm/pkg/flexvm"
	"github.com/hashicorp/go-retryablehttp"
)

// NewTransport returns a retryablehttp client that sends every request
// exactly once. Expired tokens are retried by Client.Do at the application
// level; transport failures are surfaced to the caller as they are.
func NewTransport(httpClient *http.Client, logger flexvm.Logger) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = 0
	client.CheckRetry = func(ctx context.Context, _ *http.Response, _ error) (bool, error) {
		return false, ctx.Err()
	}

	if httpClient != nil {
		client.HTTPClient = httpClient
	}

	if logger != nil {
		client.Logger = &leveledLogger{logger: logger}
	} else {
		client.Logger = nil
	}

	return client
}

// leveledLogger adapts flexvm.Logger to retryablehttp.LeveledLogger.
type leveledLogger struct {
	logger flexvm.Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, fieldsOf(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, fieldsOf(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, fieldsOf(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, fieldsOf(keysAndValues))
}

func fieldsOf(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}

	return fields
}
