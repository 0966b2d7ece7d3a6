package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"catalog-backend/internal/shared"
	"catalog-backend/internal/shared/access"
)

// View is a role-shaped projection of a Book. The sensitive field is the
// ISBN, which the presenter decrypts and masks in place.
type View interface {
	SensitiveField() *string
}

// AdminView - projection đầy đủ cho Admin (và role User cũ)
type AdminView struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	Description string          `json:"description"`
	PublishDate shared.Date     `json:"publish_date"`
	IsbnNumber  string          `json:"isbn_number"`
	Publisher   string          `json:"publisher"`
	Location    string          `json:"location"`
	Language    string          `json:"language"`
	Genre       string          `json:"genre"`
	PageCount   int             `json:"page_count"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable bool            `json:"is_available"`
	IsActive    bool            `json:"is_active"`
	DateCreated time.Time       `json:"date_created"`
	DateUpdated *time.Time      `json:"date_updated,omitempty"`
}

func (v *AdminView) SensitiveField() *string { return &v.IsbnNumber }

// ReaderView - projection rút gọn cho Reader
type ReaderView struct {
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	Description string          `json:"description"`
	Language    string          `json:"language"`
	Genre       string          `json:"genre"`
	PageCount   int             `json:"page_count"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable bool            `json:"is_available"`
	IsbnNumber  string          `json:"isbn_number"`
}

func (v *ReaderView) SensitiveField() *string { return &v.IsbnNumber }

func ToAdminView(b *Book) *AdminView {
	return &AdminView{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		PublishDate: shared.NewDate(b.PublishDate),
		IsbnNumber:  b.IsbnNumber,
		Publisher:   b.Publisher,
		Location:    b.Location,
		Language:    b.Language,
		Genre:       b.Genre,
		PageCount:   b.PageCount,
		Price:       b.Price,
		IsAvailable: b.IsAvailable,
		IsActive:    b.Active,
		DateCreated: b.DateCreated,
		DateUpdated: b.DateUpdated,
	}
}

func ToReaderView(b *Book) *ReaderView {
	return &ReaderView{
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		Language:    b.Language,
		Genre:       b.Genre,
		PageCount:   b.PageCount,
		Price:       b.Price,
		IsAvailable: b.IsAvailable,
		IsbnNumber:  b.IsbnNumber,
	}
}

// ViewFor chọn projection theo role: Reader nhận ReaderView, còn lại AdminView
func ViewFor(role string, b *Book) View {
	if access.Role(role) == access.RoleReader {
		return ToReaderView(b)
	}
	return ToAdminView(b)
}
