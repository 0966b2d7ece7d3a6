// Package repomanager vends per-request persistence sessions: one unit of
// work shared by the account and book repositories.
package repomanager

import (
	"context"

	accountrepo "catalog-backend/internal/domains/account/repository"
	bookrepo "catalog-backend/internal/domains/book/repository"
	"catalog-backend/pkg/store"
)

// Manager creates Sessions on top of a single backend.
type Manager struct {
	backend store.Backend
	opts    []store.Option
}

// New creates a Manager. opts are applied to every session's unit of work.
func New(backend store.Backend, opts ...store.Option) *Manager {
	return &Manager{backend: backend, opts: opts}
}

// Begin opens a new session. Sessions are not safe to share between requests.
func (m *Manager) Begin() *Session {
	uow := store.NewUnitOfWork(m.backend, m.opts...)
	return &Session{
		uow:      uow,
		accounts: accountrepo.NewStoreRepository(uow),
		books:    bookrepo.NewStoreRepository(uow),
	}
}

// Session groups the repositories of one request around a unit of work.
type Session struct {
	uow      *store.UnitOfWork
	accounts accountrepo.Repository
	books    bookrepo.RepositoryInterface
}

func (s *Session) Accounts() accountrepo.Repository {
	return s.accounts
}

func (s *Session) Books() bookrepo.RepositoryInterface {
	return s.books
}

// Save commits every write staged through the session's repositories.
func (s *Session) Save(ctx context.Context) error {
	return s.uow.Save(ctx)
}
