package logger

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type contextKey struct{}

const requestIDHeader = "X-Request-ID"

var defaultLogger = logrus.New()
var defaultEntry = logrus.NewEntry(defaultLogger)

// Configure sets the level and formatter of the process-wide logger.
// Anything other than the local environment logs JSON.
func Configure(env, level string) {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	defaultLogger.SetLevel(parsed)

	if env == "local" {
		defaultLogger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		return
	}
	defaultLogger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
}

// NewContextWithFields returns a context whose logger carries fields in addition to the parent's.
func NewContextWithFields(parent context.Context, fields logrus.Fields) context.Context {
	return context.WithValue(parent, contextKey{}, For(parent).WithFields(fields))
}

// For returns the logger bound to ctx, or the default logger.
func For(ctx context.Context) *logrus.Entry {
	if ctx == nil {
		return defaultEntry
	}

	if gc, ok := ctx.(*gin.Context); ok {
		if gc.Request == nil {
			return defaultEntry
		}
		ctx = gc.Request.Context()
	}

	if entry, ok := ctx.Value(contextKey{}).(*logrus.Entry); ok {
		return entry.WithContext(ctx)
	}
	return defaultEntry.WithContext(ctx)
}

// Middleware attaches a request-scoped logger and logs one line per request.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set(requestIDHeader, requestID)

		ctx := NewContextWithFields(c.Request.Context(), logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		entry := For(c).WithFields(logrus.Fields{
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			entry.WithField("errors", c.Errors.String()).Warn("request completed with errors")
			return
		}
		entry.Info("request completed")
	}
}
