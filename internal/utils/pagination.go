// Package utils holds small helpers shared by the HTTP layer that carry no
// domain knowledge.
package utils

import (
	"strconv"
	"strings"
)

// AtoiDefault parses s as a base-10 int, ignoring surrounding spaces. Empty
// or malformed input yields def.
func AtoiDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// Page is the metadata of one page of a list.
type Page struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// PageParams parses page and size query values. page is at least 1 and size
// falls back to def and is clamped to [1, max].
func PageParams(page, size string, def, max int) (int, int) {
	p := AtoiDefault(page, 1)
	if p < 1 {
		p = 1
	}
	s := AtoiDefault(size, def)
	if s < 1 {
		s = 1
	}
	if s > max {
		s = max
	}
	return p, s
}

// Paginate slices items to the given 1-based page. Pages past the end are
// empty.
func Paginate[T any](items []T, page, size int) ([]T, Page) {
	total := len(items)
	totalPages := (total + size - 1) / size
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := min(start+size, total)
	return items[start:end], Page{
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}
