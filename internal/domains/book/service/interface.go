package service

import (
	"context"

	"catalog-backend/internal/domains/book/model"
	"catalog-backend/internal/domains/book/repository"
)

// ServiceInterface - book use cases
type ServiceInterface interface {
	CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.AdminView, error)
	// ListBooks trả về view theo role; trang rỗng là NoContent
	ListBooks(ctx context.Context, role string, req model.ListBooksRequest) ([]model.View, error)
	GetBook(ctx context.Context, role string, id string) (model.View, error)
	DeleteBook(ctx context.Context, id string) error
}

// UnitOfWork is the slice of a persistence session the book use cases need.
type UnitOfWork interface {
	Books() repository.RepositoryInterface
	Save(ctx context.Context) error
}

// UnitOfWorkFactory opens a fresh session per use case call.
type UnitOfWorkFactory func() UnitOfWork
