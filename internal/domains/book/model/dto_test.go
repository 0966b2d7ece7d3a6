package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListBooksRequest_Window(t *testing.T) {
	tests := []struct {
		name               string
		page, size, total  int
		wantStart, wantEnd int
		wantOK             bool
	}{
		{"first page", 1, 10, 12, 0, 10, true},
		{"last partial page", 2, 10, 12, 10, 12, true},
		{"exact fit", 3, 4, 12, 8, 12, true},
		{"past the end", 3, 10, 12, 0, 0, false},
		{"empty list", 1, 10, 0, 0, 0, false},
		{"huge page number", 4611686018427387905, 2, 3, 0, 0, false},
		{"max int page", math.MaxInt, MaxPageSize, 3, 0, 0, false},
		{"zero page", 0, 10, 3, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, ok := ListBooksRequest{PageNumber: tt.page, PageSize: tt.size}.Window(tt.total)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}
