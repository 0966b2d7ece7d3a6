package utils

import (
	"strings"

	"github.com/google/uuid"
)

// ParseStringToUUID trả về uuid.Nil nếu s rỗng hoặc sai format
func ParseStringToUUID(s string) uuid.UUID {
	uid, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil || s == "" {
		return uuid.Nil
	}
	return uid
}

// MaskEmail giữ ký tự đầu và domain, dùng khi log
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}
