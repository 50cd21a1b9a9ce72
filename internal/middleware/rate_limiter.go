package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"certwizard/internal/util"
	"github.com/gin-gonic/gin"
)

func (m Middleware) RateLimiterMiddleware(ctx *gin.Context) {
	allowed, retryAfter := m.rateLimiter.Allow(ctx.ClientIP())
	if !allowed {
		m.app.Logger.Debugf("Rate limit exceeded for %s", ctx.ClientIP())
		ctx.Header("Retry-After", fmt.Sprintf("%.0f", retryAfter.Seconds()))
		util.ResponseFailed(ctx, http.StatusTooManyRequests, "Too many requests", util.GenerateErrorMessages(errors.New("rate limit exceeded, retry later"), "rateLimit"), nil)
		ctx.Abort()
		return
	}

	ctx.Next()
}
