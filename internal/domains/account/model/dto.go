package model

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"catalog-backend/internal/shared"
	"catalog-backend/internal/shared/access"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// ========================================
// REGISTER
// ========================================

// RegisterRequest - POST /api/user
type RegisterRequest struct {
	UserName    string      `json:"user_name"`
	Email       string      `json:"email"`
	Phone       json.Number `json:"phone"`
	Role        string      `json:"role"`
	Gender      string      `json:"gender,omitempty"`
	DateOfBirth shared.Date `json:"date_of_birth"`
	Password    string      `json:"password"`
}

// RegisterFieldOrder là thứ tự field khi chọn lỗi đầu tiên
var RegisterFieldOrder = []string{"user_name", "email", "phone", "role", "gender", "date_of_birth", "password"}

// Validate checks the request; now is the reference for the date of birth.
func (r RegisterRequest) Validate(now time.Time) error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserName,
			validation.Required.Error("User name is required"),
			validation.Length(1, 100).Error("User name must be at most 100 characters"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("Email is required"),
			is.EmailFormat.Error("Enter a valid email address"),
			validation.Length(3, 255).Error("Enter a valid email address"),
		),
		validation.Field(&r.Phone,
			validation.Required.Error("Phone number is required"),
			validation.By(func(value interface{}) error {
				if !phonePattern.MatchString(r.Phone.String()) {
					return errors.New("Enter a valid phone number")
				}
				return nil
			}),
		),
		validation.Field(&r.Role,
			validation.Required.Error("Role is required"),
			validation.By(func(interface{}) error {
				if !access.Role(r.Role).Assignable() {
					return errors.New("Role must be either Reader or Admin")
				}
				return nil
			}),
		),
		validation.Field(&r.Gender,
			validation.Length(0, 20).Error("Gender must be at most 20 characters"),
		),
		validation.Field(&r.DateOfBirth,
			validation.By(func(value interface{}) error {
				if r.DateOfBirth.IsZero() {
					return errors.New("Date of birth is required")
				}
				if r.DateOfBirth.After(now) {
					return errors.New("Date of birth cannot be in the future")
				}
				return nil
			}),
		),
		validation.Field(&r.Password,
			validation.Required.Error("Password is required"),
		),
	)
}

// NormalizedEmail trả về email đã trim + lowercase, dùng cho lưu trữ và so sánh
func NormalizedEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AccountResponse - account đã tạo, không có password
type AccountResponse struct {
	ID          uuid.UUID   `json:"id"`
	UserName    string      `json:"user_name"`
	Email       string      `json:"email"`
	Phone       int64       `json:"phone"`
	Role        access.Role `json:"role"`
	Gender      string      `json:"gender,omitempty"`
	DateOfBirth shared.Date `json:"date_of_birth"`
	DateCreated time.Time   `json:"date_created"`
}

func ToAccountResponse(a *Account) *AccountResponse {
	return &AccountResponse{
		ID:          a.ID,
		UserName:    a.UserName,
		Email:       a.Email,
		Phone:       a.Phone,
		Role:        a.Role,
		Gender:      a.Gender,
		DateOfBirth: shared.NewDate(a.DateOfBirth),
		DateCreated: a.DateCreated,
	}
}

// ========================================
// LOGIN
// ========================================

// LoginRequest - POST /api/user/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

var LoginFieldOrder = []string{"email", "password"}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error("Email is required")),
		validation.Field(&r.Password, validation.Required.Error("Password is required")),
	)
}

// LoginResponse giữ key "Token" như client hiện tại đang đọc
type LoginResponse struct {
	Token string `json:"Token"`
}
