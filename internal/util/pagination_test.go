package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 7, ParseIntDefault("", 7))
	assert.Equal(t, 7, ParseIntDefault("x", 7))
	assert.Equal(t, 3, ParseIntDefault("3", 7))
}

func TestCalculate(t *testing.T) {
	cases := []struct {
		page, size    int
		offset, limit int
	}{
		{0, 10, 0, 10},
		{2, 10, 20, 10},
		{-1, 5, 0, 5},
		{1, 0, 10, 10},
		{1, 500, 100, 100},
		{math.MaxInt/10 + 1, 10, math.MaxInt / 10 * 10, 10},
		{math.MaxInt, 0, math.MaxInt / 10 * 10, 10},
	}
	for _, c := range cases {
		offset, limit := Calculate(c.page, c.size)
		assert.Equal(t, c.offset, offset, "page=%d size=%d", c.page, c.size)
		assert.Equal(t, c.limit, limit, "page=%d size=%d", c.page, c.size)
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 0, TotalPages(11, 0))
}

func TestLastPage(t *testing.T) {
	assert.Equal(t, math.MaxInt/10, LastPage(10))
	assert.Equal(t, math.MaxInt/DefaultPageSize, LastPage(0))
	assert.Equal(t, math.MaxInt/MaxPageSize, LastPage(1000))
}
