package repomanager

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountmodel "catalog-backend/internal/domains/account/model"
	bookmodel "catalog-backend/internal/domains/book/model"
	"catalog-backend/internal/shared/access"
	"catalog-backend/internal/shared/entity"
	"catalog-backend/pkg/store"
)

func TestSession_SavesAcrossRepositories(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemoryBackend()
	mgr := New(backend)

	s := mgr.Begin()
	require.NoError(t, s.Accounts().Create(&accountmodel.Account{
		Common:      entity.NewCommon(),
		UserName:    "navee",
		Email:       "navee@example.com",
		Phone:       1234567890,
		Role:        access.RoleAdmin,
		DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, s.Books().Create(&bookmodel.Book{
		Common:     entity.NewCommon(),
		Title:      "Go",
		IsbnNumber: "cipher",
		PageCount:  100,
		Price:      decimal.NewFromInt(10),
	}))

	// chưa Save: session khác không thấy gì
	other := mgr.Begin()
	exists, err := other.Accounts().UserExists(ctx, "navee@example.com", 0)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.Save(ctx))

	exists, err = other.Accounts().UserExists(ctx, "NAVEE@example.com", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = other.Books().ExistsByISBN(ctx, "cipher")
	require.NoError(t, err)
	assert.True(t, exists)

	assert.Equal(t, 1, backend.Len("accounts"))
	assert.Equal(t, 1, backend.Len("books"))
}

func TestSession_BookSoftDelete(t *testing.T) {
	ctx := context.Background()
	mgr := New(store.NewMemoryBackend())

	s := mgr.Begin()
	book := &bookmodel.Book{Common: entity.NewCommon(), Title: "Gone", IsbnNumber: "c1", PageCount: 1}
	require.NoError(t, s.Books().Create(book))
	require.NoError(t, s.Save(ctx))

	s = mgr.Begin()
	live, err := s.Books().GetActiveByID(ctx, book.ID)
	require.NoError(t, err)
	require.NotNil(t, live)
	require.NoError(t, s.Books().Delete(live))
	require.NoError(t, s.Save(ctx))

	s = mgr.Begin()
	gone, err := s.Books().GetActiveByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	still, err := s.Books().GetByID(ctx, book.ID)
	require.NoError(t, err)
	require.NotNil(t, still)
	assert.False(t, still.Active)

	// ISBN của book đã xoá vẫn tính là trùng
	exists, err := s.Books().ExistsByISBN(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, exists)

	active, err := s.Books().ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}
