package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Gin context keys
const (
	ContextUserID    = "userID"
	ContextRole      = "role"
	ContextRequestID = "request_id"
	ContextClientIP  = "client_ip"
)

// GetUserID trả về userID do Authenticate set vào context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// GetRole trả về role claim, "" nếu chưa xác thực
func GetRole(c *gin.Context) string {
	return c.GetString(ContextRole)
}
