package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"catalog-backend/internal/domains/account/model"
	"catalog-backend/internal/shared/access"
	"catalog-backend/internal/shared/apperr"
	"catalog-backend/internal/shared/entity"
	"catalog-backend/internal/shared/utils"
	"catalog-backend/pkg/credential"
	"catalog-backend/pkg/logger"
	"catalog-backend/pkg/store"
)

type accountService struct {
	newUoW UnitOfWorkFactory
	tokens TokenIssuer
	now    func() time.Time
}

// NewAccountService creates the account use cases.
func NewAccountService(newUoW UnitOfWorkFactory, tokens TokenIssuer) ServiceInterface {
	return &accountService{
		newUoW: newUoW,
		tokens: tokens,
		now:    time.Now,
	}
}

// Register tạo account mới.
//  1. Validate request
//  2. Email hoặc phone đã tồn tại (active) → Conflict
//  3. Sinh salt, hash password
//  4. Stage insert + Save
func (s *accountService) Register(ctx context.Context, req model.RegisterRequest) (*model.AccountResponse, error) {
	if err := req.Validate(s.now()); err != nil {
		return nil, apperr.Wrap(apperr.KindBadRequest, err, utils.FirstValidationMessage(err, model.RegisterFieldOrder...))
	}

	phone, err := strconv.ParseInt(req.Phone.String(), 10, 64)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindBadRequest, err, "Enter a valid phone number")
	}
	email := model.NormalizedEmail(req.Email)

	uow := s.newUoW()
	exists, err := uow.Accounts().UserExists(ctx, email, phone)
	if err != nil {
		return nil, err
	}
	if exists {
		logger.Info("Registration rejected: duplicate email or phone", map[string]interface{}{
			"email": utils.MaskEmail(email),
		})
		return nil, apperr.Wrap(apperr.KindConflict, model.ErrUserExists, model.MsgUserExists)
	}

	salt, err := credential.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	digest, err := credential.HashPassword(req.Password, salt)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &model.Account{
		Common:       entity.NewCommon(),
		UserName:     req.UserName,
		Email:        email,
		Phone:        phone,
		Role:         access.Role(req.Role),
		Gender:       req.Gender,
		DateOfBirth:  req.DateOfBirth.Time,
		Password:     digest,
		PasswordSalt: salt,
	}

	if err := uow.Accounts().Create(account); err != nil {
		return nil, err
	}
	if err := uow.Save(ctx); err != nil {
		// unique index bắt được race giữa hai request đăng ký cùng lúc
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, apperr.Wrap(apperr.KindConflict, err, model.MsgUserExists)
		}
		return nil, err
	}

	logger.Info("Account registered", map[string]interface{}{
		"account_id": account.ID.String(),
		"role":       account.Role,
	})
	return model.ToAccountResponse(account), nil
}

// Login kiểm tra email + password và cấp JWT token.
func (s *accountService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Wrap(apperr.KindBadRequest, err, utils.FirstValidationMessage(err, model.LoginFieldOrder...))
	}

	account, err := s.newUoW().Accounts().FindActiveByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		logger.Warn("Login failed: unknown email", map[string]interface{}{
			"email": utils.MaskEmail(model.NormalizedEmail(req.Email)),
		})
		return nil, apperr.Wrap(apperr.KindUnauthorized, model.ErrEmailIncorrect, model.MsgEmailIncorrect)
	}

	if !credential.VerifyPassword(req.Password, account.PasswordSalt, account.Password) {
		logger.Warn("Login failed: wrong password", map[string]interface{}{
			"account_id": account.ID.String(),
		})
		return nil, apperr.Wrap(apperr.KindUnauthorized, model.ErrPasswordIncorrect, model.MsgPasswordIncorrect)
	}

	token, err := s.tokens.IssueToken(account.ID.String(), string(account.Role))
	if err != nil {
		return nil, apperr.Configuration(fmt.Errorf("issue token: %w", err))
	}

	return &model.LoginResponse{Token: token}, nil
}
