package shared

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout là format ngày dùng trong request/response
const DateLayout = "2006-01-02"

// Date is a calendar date in JSON. It accepts "2006-01-02" or a full RFC 3339
// timestamp and always marshals as "2006-01-02".
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date in UTC.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		d.Time = time.Time{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	if t, err := time.Parse(DateLayout, raw); err == nil {
		*d = NewDate(t)
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected %s or RFC 3339", raw, DateLayout)
	}
	*d = NewDate(t)
	return nil
}
