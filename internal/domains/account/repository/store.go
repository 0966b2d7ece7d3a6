package repository

import (
	"context"

	"catalog-backend/internal/domains/account/model"
	"catalog-backend/pkg/store"
)

// activeOnly: store.FindAll(true) chỉ trả record đang active
const activeOnly = true

type storeRepository struct {
	accounts *store.Repository[model.Account, *model.Account]
}

// NewStoreRepository binds the account repository to a unit of work.
func NewStoreRepository(uow *store.UnitOfWork) Repository {
	return &storeRepository{accounts: store.NewRepository[model.Account](uow)}
}

func (r *storeRepository) UserExists(ctx context.Context, email string, phone int64) (bool, error) {
	email = model.NormalizedEmail(email)
	found, err := r.accounts.FindByCondition(ctx, func(a *model.Account) bool {
		return model.NormalizedEmail(a.Email) == email || a.Phone == phone
	}, activeOnly)
	if err != nil {
		return false, err
	}
	return len(found) > 0, nil
}

func (r *storeRepository) FindActiveByEmail(ctx context.Context, email string) (*model.Account, error) {
	email = model.NormalizedEmail(email)
	found, err := r.accounts.FindByCondition(ctx, func(a *model.Account) bool {
		return model.NormalizedEmail(a.Email) == email
	}, activeOnly)
	if err != nil || len(found) == 0 {
		return nil, err
	}
	return found[0], nil
}

func (r *storeRepository) Create(account *model.Account) error {
	return r.accounts.Create(account)
}
