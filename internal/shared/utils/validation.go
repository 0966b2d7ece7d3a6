package utils

import (
	"errors"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FirstValidationMessage trả về message của field lỗi đầu tiên theo fieldOrder.
// Field không có trong fieldOrder xếp sau, theo thứ tự alphabet.
func FirstValidationMessage(err error, fieldOrder ...string) string {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	for _, field := range fieldOrder {
		if fe, ok := verrs[field]; ok && fe != nil {
			return fe.Error()
		}
	}

	keys := make([]string, 0, len(verrs))
	for k, fe := range verrs {
		if fe != nil {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return err.Error()
	}
	sort.Strings(keys)
	return verrs[keys[0]].Error()
}
