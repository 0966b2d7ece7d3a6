package handler

import (
	"github.com/gin-gonic/gin"

	"catalog-backend/internal/domains/account/model"
	"catalog-backend/internal/domains/account/service"
	"catalog-backend/internal/shared/apperr"
	"catalog-backend/internal/shared/response"
)

// Handler - HTTP handler cho account (register + login)
type Handler struct {
	service service.ServiceInterface
}

// NewHandler - Constructor with DI
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// Register - POST /api/user
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.Wrap(apperr.KindBadRequest, err, "Invalid request body"))
		return
	}

	account, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Created(c, account)
}

// Login - POST /api/user/login
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.Wrap(apperr.KindBadRequest, err, "Invalid request body"))
		return
	}

	token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, token)
}
