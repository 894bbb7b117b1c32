package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	tests := []struct {
		name       string
		number     int
		size       int
		total      int64
		totalPages int
		first      bool
		last       bool
	}{
		{"empty", 0, 10, 0, 0, true, true},
		{"single page", 0, 10, 7, 1, true, true},
		{"exact multiple", 1, 10, 20, 2, false, true},
		{"middle", 1, 4, 9, 3, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage[Post](nil, tt.number, tt.size, tt.total)
			assert.NotNil(t, p.Content)
			assert.Equal(t, tt.totalPages, p.TotalPages)
			assert.Equal(t, tt.first, p.First)
			assert.Equal(t, tt.last, p.Last)
		})
	}
}

func TestPageRequestQuery(t *testing.T) {
	q := PageRequest{Page: 2, Size: 10, Sort: "createdAt,desc"}.Query()
	assert.Equal(t, "page=2&size=10&sort=createdAt%2Cdesc", q.Encode())
}
