package composables

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/requesthub/requesthub/pkg/constants"
)

// WithLogger binds a request-scoped log entry to the context.
func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, constants.LoggerKey, logger)
}

// UseLogger returns the request-scoped log entry, falling back to the
// standard logger so callers never receive nil.
func UseLogger(ctx context.Context) *logrus.Entry {
	logger := ctx.Value(constants.LoggerKey)
	if logger == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return logger.(*logrus.Entry)
}
