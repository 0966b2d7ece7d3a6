package repository

import (
	"context"

	"github.com/google/uuid"

	"catalog-backend/internal/domains/book/model"
)

// RepositoryInterface - data access cho book, ghi được stage trên unit of work
type RepositoryInterface interface {
	// ListActive trả về các book đang active, theo thứ tự tạo
	ListActive(ctx context.Context) ([]*model.Book, error)
	// GetByID trả về book bất kể trạng thái active, nil nếu không có
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	// GetActiveByID trả về nil nếu book không tồn tại hoặc đã bị xoá
	GetActiveByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	// ExistsByISBN so sánh ciphertext, tính cả book đã bị xoá mềm
	ExistsByISBN(ctx context.Context, encryptedISBN string) (bool, error)
	Create(book *model.Book) error
	Delete(book *model.Book) error
}
