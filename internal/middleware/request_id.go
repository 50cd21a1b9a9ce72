package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIdMiddleware tags every request with an id so log lines of one
// request can be correlated. An id provided by the caller is kept.
func (m Middleware) RequestIdMiddleware(ctx *gin.Context) {
	requestId := ctx.GetHeader("X-Request-Id")
	if requestId == "" {
		requestId = uuid.NewString()
	}

	ctx.Set("requestId", requestId)
	ctx.Header("X-Request-Id", requestId)
	ctx.Next()
}
