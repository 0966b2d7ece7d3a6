package middleware

import (
	"github.com/gin-gonic/gin"

	"catalog-backend/internal/shared/utils"
)

// ClientIP extracts the client IP address once per request so the request
// logger and the error handler agree on it.
//
// Usage:
//
//	router.Use(middleware.ClientIP())
func ClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextClientIP, utils.ExtractClientIP(c.Request))
		c.Next()
	}
}
