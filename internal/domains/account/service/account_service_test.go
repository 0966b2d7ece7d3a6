package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-backend/internal/domains/account/model"
	"catalog-backend/internal/repomanager"
	"catalog-backend/internal/shared"
	"catalog-backend/internal/shared/access"
	"catalog-backend/internal/shared/apperr"
	"catalog-backend/internal/shared/entity"
	"catalog-backend/pkg/credential"
	"catalog-backend/pkg/jwt"
	"catalog-backend/pkg/store"
)

const testJWTSecret = "account-service-test-secret-0123456789"

type fixture struct {
	svc     ServiceInterface
	tokens  *jwt.Manager
	manager *repomanager.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tokens, err := jwt.NewManager(jwt.Config{Secret: testJWTSecret})
	require.NoError(t, err)

	mgr := repomanager.New(store.NewMemoryBackend())
	svc := NewAccountService(func() UnitOfWork { return mgr.Begin() }, tokens)
	return &fixture{svc: svc, tokens: tokens, manager: mgr}
}

func validRegister() model.RegisterRequest {
	return model.RegisterRequest{
		UserName:    "navee",
		Email:       "navee@example.com",
		Phone:       json.Number("1234567890"),
		Role:        "Admin",
		Gender:      "male",
		DateOfBirth: shared.NewDate(time.Date(1995, 6, 15, 0, 0, 0, 0, time.UTC)),
		Password:    "S3cret!pass",
	}
}

func TestRegister_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Register(ctx, validRegister())
	require.NoError(t, err)
	assert.Equal(t, "navee@example.com", resp.Email)
	assert.Equal(t, int64(1234567890), resp.Phone)
	assert.Equal(t, "Admin", string(resp.Role))
	assert.False(t, resp.DateCreated.IsZero())

	stored, err := f.manager.Begin().Accounts().FindActiveByEmail(ctx, "navee@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "S3cret!pass", stored.Password)
	assert.Len(t, stored.Password, 128, "hex encoded SHA-512")
	assert.True(t, credential.VerifyPassword("S3cret!pass", stored.PasswordSalt, stored.Password))
}

func TestRegister_DuplicateEmailOrPhone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, validRegister())
	require.NoError(t, err)

	sameEmail := validRegister()
	sameEmail.Phone = json.Number("9999999999")
	sameEmail.UserName = "someone else"
	sameEmail.Role = "Reader"

	samePhone := validRegister()
	samePhone.Email = "other@example.com"

	upperEmail := validRegister()
	upperEmail.Email = "NAVEE@Example.com"
	upperEmail.Phone = json.Number("8888888888")

	for name, req := range map[string]model.RegisterRequest{
		"same email": sameEmail, "same phone": samePhone, "email case": upperEmail,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Register(ctx, req)
			require.Error(t, err)
			assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
			assert.Equal(t, "User with Email or Phone already exists", apperr.DescriptionOf(err))
		})
	}
}

func TestRegister_InactiveAccountDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// account cũ đã bị vô hiệu hoá, cùng email + phone
	s := f.manager.Begin()
	require.NoError(t, s.Accounts().Create(&model.Account{
		Common:       entity.Common{ID: uuid.New(), Active: false},
		UserName:     "old navee",
		Email:        "navee@example.com",
		Phone:        1234567890,
		Role:         access.RoleReader,
		DateOfBirth:  time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Password:     "digest",
		PasswordSalt: "salt",
	}))
	require.NoError(t, s.Save(ctx))

	exists, err := f.manager.Begin().Accounts().UserExists(ctx, "navee@example.com", 1234567890)
	require.NoError(t, err)
	assert.False(t, exists, "inactive accounts are ignored")

	resp, err := f.svc.Register(ctx, validRegister())
	require.NoError(t, err)
	assert.Equal(t, "navee@example.com", resp.Email)

	exists, err = f.manager.Begin().Accounts().UserExists(ctx, "navee@example.com", 1234567890)
	require.NoError(t, err)
	assert.True(t, exists)
}

// racingSession giả lập unique index từ chối insert sau khi UserExists đã pass
type racingSession struct{ *repomanager.Session }

func (s racingSession) Save(context.Context) error {
	return apperr.Persistence(fmt.Errorf("save 1 mutation(s): %w", store.ErrDuplicateKey))
}

func TestRegister_DuplicateKeyOnSaveIsConflict(t *testing.T) {
	f := newFixture(t)
	svc := NewAccountService(func() UnitOfWork { return racingSession{f.manager.Begin()} }, f.tokens)

	_, err := svc.Register(context.Background(), validRegister())
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, model.MsgUserExists, apperr.DescriptionOf(err))
}

func TestRegister_SaveFailureIsPersistence(t *testing.T) {
	f := newFixture(t)
	svc := NewAccountService(func() UnitOfWork { return failingSession{f.manager.Begin()} }, f.tokens)

	_, err := svc.Register(context.Background(), validRegister())
	require.Error(t, err)
	assert.Equal(t, apperr.KindPersistence, apperr.KindOf(err))
}

type failingSession struct{ *repomanager.Session }

func (s failingSession) Save(context.Context) error {
	return apperr.Persistence(errors.New("connection reset"))
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		mutate func(r *model.RegisterRequest)
		want   string
	}{
		{"short phone", func(r *model.RegisterRequest) { r.Phone = "12345" }, "Enter a valid phone number"},
		{"letters in phone", func(r *model.RegisterRequest) { r.Phone = "12345abcde" }, "Enter a valid phone number"},
		{"bad email", func(r *model.RegisterRequest) { r.Email = "not-an-email" }, "Enter a valid email address"},
		{"legacy role", func(r *model.RegisterRequest) { r.Role = "User" }, "Role must be either Reader or Admin"},
		{"lowercase role", func(r *model.RegisterRequest) { r.Role = "admin" }, "Role must be either Reader or Admin"},
		{"unknown role", func(r *model.RegisterRequest) { r.Role = "Owner" }, "Role must be either Reader or Admin"},
		{"missing role", func(r *model.RegisterRequest) { r.Role = "" }, "Role is required"},
		{"future birth date", func(r *model.RegisterRequest) {
			r.DateOfBirth = shared.NewDate(time.Now().AddDate(1, 0, 0))
		}, "Date of birth cannot be in the future"},
		{"missing birth date", func(r *model.RegisterRequest) { r.DateOfBirth = shared.Date{} }, "Date of birth is required"},
		{"missing password", func(r *model.RegisterRequest) { r.Password = "" }, "Password is required"},
		{"first failing field wins", func(r *model.RegisterRequest) {
			r.UserName = ""
			r.Password = ""
		}, "User name is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegister()
			tt.mutate(&req)

			_, err := f.svc.Register(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
			assert.Equal(t, tt.want, apperr.DescriptionOf(err))
		})
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	registered, err := f.svc.Register(ctx, validRegister())
	require.NoError(t, err)

	resp, err := f.svc.Login(ctx, model.LoginRequest{Email: "navee@example.com", Password: "S3cret!pass"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	claims, err := f.tokens.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID.String(), claims.UserID)
	assert.Equal(t, "Admin", claims.Role)
	assert.WithinDuration(t, time.Now().Add(60*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestLogin_Failures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, validRegister())
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, model.LoginRequest{Email: "nobody@example.com", Password: "S3cret!pass"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	assert.Equal(t, "Given Email is incorrect", apperr.DescriptionOf(err))

	_, err = f.svc.Login(ctx, model.LoginRequest{Email: "navee@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	assert.Equal(t, "Given password is incorrect", apperr.DescriptionOf(err))

	_, err = f.svc.Login(ctx, model.LoginRequest{Email: "navee@example.com"})
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
}

type failingIssuer struct{}

func (failingIssuer) IssueToken(string, string) (string, error) {
	return "", errors.New("signing key unavailable")
}

func TestLogin_IssuerFailureIsConfigurationError(t *testing.T) {
	mgr := repomanager.New(store.NewMemoryBackend())
	tokens, err := jwt.NewManager(jwt.Config{Secret: testJWTSecret})
	require.NoError(t, err)

	ctx := context.Background()
	_, err = NewAccountService(func() UnitOfWork { return mgr.Begin() }, tokens).Register(ctx, validRegister())
	require.NoError(t, err)

	svc := NewAccountService(func() UnitOfWork { return mgr.Begin() }, failingIssuer{})
	_, err = svc.Login(ctx, model.LoginRequest{Email: "navee@example.com", Password: "S3cret!pass"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConfiguration, apperr.KindOf(err))
	assert.Equal(t, 500, apperr.StatusOf(err))
}
