package model

import (
	"time"

	"github.com/shopspring/decimal"

	"catalog-backend/internal/shared/entity"
)

// Book - Domain Entity. IsbnNumber luôn là ciphertext (base64), không bao giờ
// là plaintext.
type Book struct {
	entity.Common
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	Description string          `json:"description"`
	PublishDate time.Time       `json:"publish_date"`
	IsbnNumber  string          `json:"isbn_number"`
	Publisher   string          `json:"publisher"`
	Location    string          `json:"location"`
	Language    string          `json:"language"`
	Genre       string          `json:"genre"`
	PageCount   int             `json:"page_count"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable bool            `json:"is_available"`
}

func (b *Book) TableName() string { return "books" }

func (b *Book) Columns() []string {
	return entity.Columns("title", "author", "description", "publish_date", "isbn_number",
		"publisher", "location", "language", "genre", "page_count", "price", "is_available")
}

func (b *Book) Values() []any {
	return append(b.CommonValues(),
		b.Title, b.Author, b.Description, b.PublishDate, b.IsbnNumber,
		b.Publisher, b.Location, b.Language, b.Genre, b.PageCount, b.Price, b.IsAvailable)
}

func (b *Book) ScanTargets() []any {
	return append(b.CommonTargets(),
		&b.Title, &b.Author, &b.Description, &b.PublishDate, &b.IsbnNumber,
		&b.Publisher, &b.Location, &b.Language, &b.Genre, &b.PageCount, &b.Price, &b.IsAvailable)
}

// MatchesFilter: filterValue rỗng match tất cả, ngược lại so khớp chính xác
// với genre hoặc author
func (b *Book) MatchesFilter(filterValue string) bool {
	return filterValue == "" || b.Genre == filterValue || b.Author == filterValue
}

// GenerateBookCacheKey - cache key cho book row theo id
func GenerateBookCacheKey(bookID string) string {
	return "book:row:" + bookID
}
