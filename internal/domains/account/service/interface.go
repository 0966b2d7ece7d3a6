package service

import (
	"context"

	"catalog-backend/internal/domains/account/model"
	"catalog-backend/internal/domains/account/repository"
)

// ServiceInterface - business logic cho đăng ký và đăng nhập
type ServiceInterface interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.AccountResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
}

// UnitOfWork is the per-request persistence session the service needs.
type UnitOfWork interface {
	Accounts() repository.Repository
	Save(ctx context.Context) error
}

// UnitOfWorkFactory mở một session mới cho mỗi request
type UnitOfWorkFactory func() UnitOfWork

// TokenIssuer is satisfied by *jwt.Manager.
type TokenIssuer interface {
	IssueToken(subjectID, role string) (string, error)
}
