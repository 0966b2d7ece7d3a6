package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"catalog-backend/internal/shared/apperr"
	"catalog-backend/internal/shared/response"
)

// ErrorHandler maps errors recorded with c.Error to the error body.
// It must be registered before any middleware that can fail a request.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		kind := apperr.KindOf(err)

		var event *zerolog.Event
		switch {
		case kind.Status() >= 500:
			event = log.Error()
		case kind == apperr.KindNoContent:
			event = log.Debug()
		default:
			event = log.Warn()
		}
		event.
			Str("request_id", c.GetString(ContextRequestID)).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Str("ip", c.GetString(ContextClientIP)).
			Str("kind", kind.String()).
			Err(err).
			Msg("Request failed")

		response.Error(c, err)
	}
}
