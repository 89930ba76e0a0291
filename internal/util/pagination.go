package util

import (
	"math"
	"strconv"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// Calculate turns a zero-based page and a size into offset and limit.
// Sizes below one fall back to DefaultPageSize and are capped at MaxPageSize.
// Pages past LastPage are clamped so the offset cannot overflow.
func Calculate(page, size int) (offset int, limit int) {
	if page < 0 {
		page = 0
	}
	limit = NormalizeSize(size)
	if last := LastPage(limit); page > last {
		page = last
	}
	return page * limit, limit
}

// LastPage is the highest page whose offset still fits in an int.
func LastPage(size int) int {
	return math.MaxInt / NormalizeSize(size)
}

func NormalizeSize(size int) int {
	if size < 1 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

func TotalPages(total int64, size int) int {
	if size < 1 || total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
