package models

import (
	"net/url"
	"strconv"
)

// Page is one page of a sorted collection. Number is 0-indexed.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Size          int   `json:"size"`
	Number        int   `json:"number"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// NewPage fills in the derived page fields. TotalPages is 0 for an empty
// collection.
func NewPage[T any](content []T, number, size int, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return Page[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    totalPages,
		Size:          size,
		Number:        number,
		First:         number == 0,
		Last:          number >= totalPages-1,
	}
}

// PageRequest selects a page of posts. Page is 0-indexed; Sort has the form
// "field,direction".
type PageRequest struct {
	Page int
	Size int
	Sort string
}

func (r PageRequest) Query() url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(r.Page))
	q.Set("size", strconv.Itoa(r.Size))
	if r.Sort != "" {
		q.Set("sort", r.Sort)
	}
	return q
}
