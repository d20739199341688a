package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	r := gin.New()
	r.Use(RequestIDMiddleware(zap.New(core)))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c.Request.Context()))
	})

	t.Run("keeps incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-Id", "abc-123")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, "abc-123", rr.Header().Get("X-Request-Id"))
		assert.Equal(t, "abc-123", rr.Body.String())
	})

	t.Run("generates id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
		assert.Equal(t, rr.Header().Get("X-Request-Id"), rr.Body.String())
	})

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "/ping", entries[0].ContextMap()["path"])
}

func TestGetRequestID_Missing(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimit(RateLimitConfig{RateLimit: 0.001, BurstSize: 2}))
	r.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for range 3 {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimit_Disabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimit(PerMinute(0)))
	r.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	for range 5 {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/login", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	}
}

func TestRateLimit_EvictsIdleClients(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }

	t.Run("refilled bucket is dropped", func(t *testing.T) {
		clients := newClientLimiters(RateLimitConfig{RateLimit: 1, BurstSize: 2, IdleTTL: time.Minute}, clock)
		require.True(t, clients.get("10.0.0.1").Allow())
		clients.get("10.0.0.2")
		assert.Equal(t, 2, clients.size())

		now = now.Add(2 * time.Minute)
		clients.get("10.0.0.3")
		assert.Equal(t, 1, clients.size())
	})

	t.Run("drained bucket is kept", func(t *testing.T) {
		clients := newClientLimiters(RateLimitConfig{RateLimit: 0.001, BurstSize: 2, IdleTTL: time.Minute}, clock)
		l := clients.get("10.0.0.1")
		require.True(t, l.Allow())
		require.True(t, l.Allow())

		now = now.Add(2 * time.Minute)
		clients.get("10.0.0.2")
		assert.Equal(t, 2, clients.size())
		assert.Same(t, l, clients.get("10.0.0.1"))
	})

	t.Run("active client survives", func(t *testing.T) {
		clients := newClientLimiters(RateLimitConfig{RateLimit: 1, BurstSize: 2, IdleTTL: time.Minute}, clock)
		l := clients.get("10.0.0.1")

		now = now.Add(30 * time.Second)
		clients.get("10.0.0.1")
		now = now.Add(45 * time.Second)
		clients.get("10.0.0.2")
		assert.Same(t, l, clients.get("10.0.0.1"))
	})
}
