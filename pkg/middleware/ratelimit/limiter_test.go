package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_Allow_BurstPerKey(t *testing.T) {
	l := New(1, 2)
	fixed := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return fixed }

	assert.True(t, l.Allow("user:1"))
	assert.True(t, l.Allow("user:1"))
	assert.False(t, l.Allow("user:1"))

	assert.True(t, l.Allow("user:2"))

	fixed = fixed.Add(time.Second)
	assert.True(t, l.Allow("user:1"))
}

func TestLimiter_SweepsIdleVisitors(t *testing.T) {
	l := New(1, 1)
	fixed := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return fixed }

	l.Allow("a")
	fixed = fixed.Add(10 * time.Minute)
	l.Allow("b")

	l.mu.Lock()
	defer l.mu.Unlock()
	_, hasA := l.visitors["a"]
	assert.False(t, hasA)
	assert.Len(t, l.visitors, 1)
}

func TestLimiter_Middleware(t *testing.T) {
	l := New(0.001, 1)
	e := echo.New()

	h := l.Middleware(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	newCtx := func() echo.Context {
		c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), httptest.NewRecorder())
		c.Set("user_id", uint(5))
		return c
	}

	require.NoError(t, h(newCtx()))

	err := h(newCtx())
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusTooManyRequests, he.Code)
}
