package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"catalog-backend/internal/shared/access"
	"catalog-backend/internal/shared/apperr"
	"catalog-backend/pkg/jwt"
	"catalog-backend/pkg/logger"
)

const accessDenied = "access denied"

// TokenValidator is satisfied by *jwt.Manager.
type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// Authenticate - Middleware xác thực JWT token.
// Missing, malformed, expired or forged tokens all end in 401 "access denied".
func Authenticate(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Lấy token từ Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			deny(c, apperr.Unauthorized(accessDenied))
			return
		}

		// 2. Extract token từ "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			deny(c, apperr.Unauthorized(accessDenied))
			return
		}

		// 3. Verify chữ ký, algorithm, expiry
		claims, err := tokens.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			logger.Debug("token rejected: " + err.Error())
			deny(c, apperr.Wrap(apperr.KindUnauthorized, err, accessDenied))
			return
		}

		// 4. user_id phải là UUID
		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			deny(c, apperr.Wrap(apperr.KindUnauthorized, err, accessDenied))
			return
		}

		// 5. Set userID + role vào context
		c.Set(ContextUserID, userID)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

// RequireRoles checks the role claim set by Authenticate against allowed.
// An empty set lets every authenticated caller through.
func RequireRoles(allowed access.RoleSet) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetUserID(c); !ok {
			deny(c, apperr.Unauthorized(accessDenied))
			return
		}

		if !allowed.Allows(GetRole(c)) {
			deny(c, apperr.Forbidden(accessDenied))
			return
		}

		c.Next()
	}
}

func deny(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
