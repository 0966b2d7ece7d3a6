package repository

import (
	"context"

	"catalog-backend/internal/domains/account/model"
)

// Repository - data access cho account, ghi được stage trên unit of work
type Repository interface {
	// UserExists: có account active nào trùng email HOẶC phone không
	UserExists(ctx context.Context, email string, phone int64) (bool, error)
	// FindActiveByEmail trả về nil nếu không có account active với email này
	FindActiveByEmail(ctx context.Context, email string) (*model.Account, error)
	Create(account *model.Account) error
}
