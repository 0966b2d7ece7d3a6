package model

import (
	"time"

	"catalog-backend/internal/shared/access"
	"catalog-backend/internal/shared/entity"
)

// Account là user đăng ký qua API. Password chỉ lưu digest + salt.
type Account struct {
	entity.Common
	UserName     string      `json:"user_name"`
	Email        string      `json:"email"`
	Phone        int64       `json:"phone"`
	Role         access.Role `json:"role"`
	Gender       string      `json:"gender,omitempty"`
	DateOfBirth  time.Time   `json:"date_of_birth"`
	Password     string      `json:"-"`
	PasswordSalt string      `json:"-"`
}

func (a *Account) TableName() string { return "accounts" }

func (a *Account) Columns() []string {
	return entity.Columns("user_name", "email", "phone", "role", "gender", "date_of_birth", "password", "password_salt")
}

func (a *Account) Values() []any {
	return append(a.CommonValues(),
		a.UserName, a.Email, a.Phone, string(a.Role), a.Gender, a.DateOfBirth, a.Password, a.PasswordSalt)
}

func (a *Account) ScanTargets() []any {
	return append(a.CommonTargets(),
		&a.UserName, &a.Email, &a.Phone, (*string)(&a.Role), &a.Gender, &a.DateOfBirth, &a.Password, &a.PasswordSalt)
}
