package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/budgetbook/budget_book_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

func TestRateLimitBlocksAfterLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rate, err := limiter.NewRateFromFormatted("2-M")
	require.NoError(t, err)
	ipLimiter := limiter.New(memory.NewStore(), rate)

	router := gin.New()
	router.POST("/login", middleware.RateLimit(ipLimiter), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, do().Code)
	assert.Equal(t, http.StatusOK, do().Code)

	w := do()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Too many requests")
}

func TestRateLimitTracksClientsSeparately(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rate, err := limiter.NewRateFromFormatted("1-M")
	require.NoError(t, err)
	ipLimiter := limiter.New(memory.NewStore(), rate)

	router := gin.New()
	router.GET("/ping", middleware.RateLimit(ipLimiter), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func(addr string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = addr
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:1111"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:1111"))
	assert.Equal(t, http.StatusOK, do("10.0.0.2:2222"))
}
