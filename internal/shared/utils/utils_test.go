package utils

import (
	"errors"
	"net/http/httptest"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestParseStringToUUID(t *testing.T) {
	id := uuid.New()

	assert.Equal(t, id, ParseStringToUUID(id.String()))
	assert.Equal(t, uuid.Nil, ParseStringToUUID(""))
	assert.Equal(t, uuid.Nil, ParseStringToUUID("not-a-uuid"))
	assert.Equal(t, uuid.Nil, ParseStringToUUID("12345"))
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "n***@example.com", MaskEmail("navee@example.com"))
	assert.Equal(t, "***", MaskEmail("no-at-sign"))
	assert.Equal(t, "***", MaskEmail("@example.com"))
}

func TestExtractClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded first entry", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "10.0.0.2:5000", "203.0.113.7"},
		{"invalid forwarded falls through", map[string]string{"X-Forwarded-For": "garbage", "X-Real-IP": "198.51.100.4"}, "10.0.0.2:5000", "198.51.100.4"},
		{"remote addr", nil, "192.0.2.10:1234", "192.0.2.10"},
		{"ipv6 remote addr", nil, "[2001:db8::1]:443", "2001:db8::1"},
		{"unparseable remote", nil, "pipe", "127.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ExtractClientIP(r))
		})
	}
}

func TestFirstValidationMessage(t *testing.T) {
	err := validation.Errors{
		"price":      errors.New("Price must be a non-negative value"),
		"title":      errors.New("Title is required"),
		"page_count": errors.New("Page Count must be greater than 0"),
	}

	assert.Equal(t, "Title is required", FirstValidationMessage(err, "title", "page_count", "price"))
	assert.Equal(t, "Page Count must be greater than 0", FirstValidationMessage(err, "page_count"))
	// không có order: alphabet
	assert.Equal(t, "Page Count must be greater than 0", FirstValidationMessage(err))

	assert.Equal(t, "plain", FirstValidationMessage(errors.New("plain")))
}
