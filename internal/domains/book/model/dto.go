package model

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"catalog-backend/internal/shared"
)

// ============ CREATE ============

// CreateBookRequest - POST /api/book
type CreateBookRequest struct {
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
	IsAvailable *bool           `json:"is_available,omitempty"`
}

// CreateFieldOrder là thứ tự field khi chọn lỗi đầu tiên
var CreateFieldOrder = []string{
	"title", "author", "description", "publish_date", "isbn_number", "publisher",
	"location", "language", "genre", "page_count", "price",
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("Title is required"), validation.Length(1, 500)),
		validation.Field(&r.Author, validation.Required.Error("Author is required"), validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Length(0, 4000).Error("Description must be at most 4000 characters")),
		validation.Field(&r.PublishDate, validation.By(func(interface{}) error {
			if r.PublishDate.IsZero() {
				return errors.New("Publish date is required")
			}
			return nil
		})),
		validation.Field(&r.IsbnNumber, validation.Required.Error("ISBN number is required"), validation.Length(1, 32)),
		validation.Field(&r.Publisher, validation.Required.Error("Publisher is required")),
		validation.Field(&r.Location, validation.Required.Error("Location is required")),
		validation.Field(&r.Language, validation.Required.Error("Language is required")),
		validation.Field(&r.Genre, validation.Required.Error("Genre is required")),
		validation.Field(&r.PageCount, validation.By(func(interface{}) error {
			if r.PageCount <= 0 {
				return errors.New("Page Count must be greater than 0")
			}
			return nil
		})),
		validation.Field(&r.Price, validation.By(func(interface{}) error {
			if r.Price.IsNegative() {
				return errors.New("Price must be a non-negative value")
			}
			return nil
		})),
	)
}

// NormalizedISBN bỏ khoảng trắng hai đầu trước khi mã hoá
func (r CreateBookRequest) NormalizedISBN() string {
	return strings.TrimSpace(r.IsbnNumber)
}

// ============ LIST ============

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 100
)

// ListBooksRequest - GET /api/book?pageNumber=&pageSize=&filterValue=
type ListBooksRequest struct {
	PageNumber  int    `form:"pageNumber"`
	PageSize    int    `form:"pageSize"`
	FilterValue string `form:"filterValue"`
}

var ListFieldOrder = []string{"pageNumber", "pageSize"}

// WithDefaults điền page 1, size 10 khi client không gửi
func (r ListBooksRequest) WithDefaults() ListBooksRequest {
	if r.PageNumber == 0 {
		r.PageNumber = DefaultPageNumber
	}
	if r.PageSize == 0 {
		r.PageSize = DefaultPageSize
	}
	r.FilterValue = strings.TrimSpace(r.FilterValue)
	return r
}

func (r ListBooksRequest) Validate() error {
	return validation.Errors{
		"pageNumber": validation.Validate(r.PageNumber,
			validation.Min(1).Error("Page number must be at least 1")),
		"pageSize": validation.Validate(r.PageSize,
			validation.Min(1).Error("Page size must be between 1 and 100"),
			validation.Max(MaxPageSize).Error("Page size must be between 1 and 100")),
	}.Filter()
}

// Window trả về [start, end) của trang trong total phần tử, tương đương
// Skip((page-1)*size).Take(size). ok=false khi trang nằm ngoài danh sách.
// Không nhân page*size trước khi so sánh để page number lớn không bị tràn int.
func (r ListBooksRequest) Window(total int) (start, end int, ok bool) {
	if r.PageNumber < 1 || r.PageSize < 1 || total <= 0 {
		return 0, 0, false
	}
	pages := (total + r.PageSize - 1) / r.PageSize
	if r.PageNumber > pages {
		return 0, 0, false
	}
	start = (r.PageNumber - 1) * r.PageSize
	end = start + r.PageSize
	if end > total {
		end = total
	}
	return start, end, true
}

// DeleteBookResponse - DELETE /api/book/:id
type DeleteBookResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
