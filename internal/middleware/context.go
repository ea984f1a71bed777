package middleware

import (
	"context"
	"time"

	ctxutil "github.com/Payphone-Digital/carrental/pkg/context"
	"github.com/gin-gonic/gin"
)

// ContextMiddleware stamps request metadata on the request context and
// bounds it with timeout.
func ContextMiddleware(module string, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, module, c.FullPath())

		var cancel context.CancelFunc
		if timeout > 0 {
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
