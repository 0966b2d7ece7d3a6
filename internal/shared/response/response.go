package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog-backend/internal/shared/apperr"
)

// ErrorBody là format lỗi duy nhất trả về cho client
type ErrorBody struct {
	StatusCode   int    `json:"StatusCode"`
	ErrorMessage string `json:"ErrorMessage"`
	Description  string `json:"Description"`
}

// NewErrorBody builds the body for err. Untyped errors never leak their
// message: they are reported as a generic internal error.
func NewErrorBody(err error) ErrorBody {
	kind := apperr.KindOf(err)
	desc := apperr.DescriptionOf(err)
	if kind == apperr.KindInternal {
		desc = "An unexpected error occurred."
	}
	return ErrorBody{
		StatusCode:   kind.Status(),
		ErrorMessage: kind.Title(),
		Description:  desc,
	}
}

// Success responses
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Error writes the error body for err and aborts the chain.
// 204 không có body theo HTTP nên chỉ ghi status.
func Error(c *gin.Context, err error) {
	body := NewErrorBody(err)
	if body.StatusCode == http.StatusNoContent {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.AbortWithStatusJSON(body.StatusCode, body)
}
