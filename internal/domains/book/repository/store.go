package repository

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"catalog-backend/internal/domains/book/model"
	"catalog-backend/pkg/store"
)

// Polarity của store: true = chỉ active, false = tất cả
const (
	activeOnly  = true
	allStatuses = false
)

type storeRepository struct {
	books *store.Repository[model.Book, *model.Book]
}

// NewStoreRepository binds the book repository to a unit of work.
func NewStoreRepository(uow *store.UnitOfWork) RepositoryInterface {
	return &storeRepository{books: store.NewRepository[model.Book](uow)}
}

func (r *storeRepository) ListActive(ctx context.Context) ([]*model.Book, error) {
	books, err := r.books.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(books, func(i, j int) bool {
		return books[i].DateCreated.Before(books[j].DateCreated)
	})
	return books, nil
}

func (r *storeRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	return r.books.FindByID(ctx, id)
}

func (r *storeRepository) GetActiveByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	return r.first(ctx, func(b *model.Book) bool { return b.ID == id }, activeOnly)
}

func (r *storeRepository) ExistsByISBN(ctx context.Context, encryptedISBN string) (bool, error) {
	b, err := r.first(ctx, func(b *model.Book) bool { return b.IsbnNumber == encryptedISBN }, allStatuses)
	return b != nil, err
}

func (r *storeRepository) Create(book *model.Book) error {
	return r.books.Create(book)
}

func (r *storeRepository) Delete(book *model.Book) error {
	return r.books.Delete(book)
}

func (r *storeRepository) first(ctx context.Context, pred func(*model.Book) bool, includeInactive bool) (*model.Book, error) {
	found, err := r.books.FindByCondition(ctx, pred, includeInactive)
	if err != nil || len(found) == 0 {
		return nil, err
	}
	return found[0], nil
}
