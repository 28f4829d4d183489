package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/akshay-h-dev/milestack/internal/middleware"
)

// requestContext safely returns the request context with a background fallback for tests.
func requestContext(c *gin.Context) context.Context {
	if c == nil {
		return context.Background()
	}
	if req := c.Request; req != nil {
		return req.Context()
	}
	return context.Background()
}

// currentUserID returns the authenticated user id attached by the bearer
// middleware, or "" when the route is unauthenticated.
func currentUserID(c *gin.Context) string {
	return c.GetString(middleware.CtxUserIDKey)
}
