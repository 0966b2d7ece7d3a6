package handler

import (
	"github.com/gin-gonic/gin"

	"catalog-backend/internal/domains/book/model"
	"catalog-backend/internal/domains/book/service"
	"catalog-backend/internal/shared/apperr"
	"catalog-backend/internal/shared/middleware"
	"catalog-backend/internal/shared/response"
)

// Handler - HTTP Handler cho book
type Handler struct {
	service service.ServiceInterface
}

// NewHandler - Constructor with DI
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// CreateBook - POST /api/book (Admin)
func (h *Handler) CreateBook(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.Wrap(apperr.KindBadRequest, err, "Invalid request body"))
		return
	}

	book, err := h.service.CreateBook(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Created(c, book)
}

// ListBooks - GET /api/book?pageNumber=&pageSize=&filterValue=
func (h *Handler) ListBooks(c *gin.Context) {
	var req model.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		_ = c.Error(apperr.Wrap(apperr.KindBadRequest, err, "Page number and page size must be integers"))
		return
	}

	books, err := h.service.ListBooks(c.Request.Context(), middleware.GetRole(c), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, books)
}

// GetBook - GET /api/book/:id
func (h *Handler) GetBook(c *gin.Context) {
	book, err := h.service.GetBook(c.Request.Context(), middleware.GetRole(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, book)
}

// DeleteBook - DELETE /api/book/:id (Admin)
func (h *Handler) DeleteBook(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.DeleteBook(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, model.DeleteBookResponse{
		ID:      id,
		Message: "Book deleted successfully",
	})
}
