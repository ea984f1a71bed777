package middleware

import (
	"net/http"
	"time"

	"github.com/Payphone-Digital/carrental/internal/constants"
	ctxutil "github.com/Payphone-Digital/carrental/pkg/context"
	"github.com/Payphone-Digital/carrental/pkg/logger"
	"github.com/gin-gonic/gin"
)

const slowRequestThreshold = 2 * time.Second

// LoggingMiddleware logs one line per request, at a level chosen from the
// status code. Request bodies are never logged.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "http", "LoggingMiddleware")
		status := c.Writer.Status()
		latency := time.Since(start)

		var entry *logger.ContextLogBuilder
		switch {
		case status >= http.StatusInternalServerError:
			entry = logger.ErrorWithContext(ctx, "Server error")
		case status >= http.StatusBadRequest:
			entry = logger.WarnWithContext(ctx, "Client error")
		case latency > slowRequestThreshold:
			entry = logger.WarnWithContext(ctx, "Slow request")
		default:
			entry = logger.InfoWithContext(ctx, "Request completed")
		}

		entry.Method(c.Request.Method).
			Path(c.Request.URL.Path).
			String("query", c.Request.URL.RawQuery).
			StatusCode(status).
			Int("response_size", c.Writer.Size()).
			Duration(latency)
		if errs := c.Errors.ByType(gin.ErrorTypePrivate); len(errs) > 0 {
			entry.String("errors", errs.String())
		}
		entry.Log()
	}
}

// RecoveryMiddleware turns a panic into a 500 with the standard error body.
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.LogPanic(recovered)

		c.AbortWithStatusJSON(http.StatusInternalServerError,
			constants.BuildErrorResponse(constants.MsgInternalError, nil))
	})
}
