package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(formatted string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", RateLimit(formatted), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})
	return r
}

func get(r *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitCeiling(t *testing.T) {
	r := newLimitedRouter("2-M")

	assert.Equal(t, http.StatusOK, get(r, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, get(r, "10.0.0.1:1234").Code)

	w := get(r, "10.0.0.1:1234")
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	var body struct {
		Error      string `json:"error"`
		RetryAfter int64  `json:"retry_after"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Rate limit exceeded. Please try again later.", body.Error)
	assert.GreaterOrEqual(t, body.RetryAfter, int64(0))
	assert.LessOrEqual(t, body.RetryAfter, int64(60))
}

func TestRateLimitPerClient(t *testing.T) {
	r := newLimitedRouter("1-M")

	assert.Equal(t, http.StatusOK, get(r, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, "10.0.0.1:5678").Code)

	// A different client has its own window.
	assert.Equal(t, http.StatusOK, get(r, "10.0.0.2:1234").Code)
}

func TestRateLimitRejectsMalformedRate(t *testing.T) {
	assert.Panics(t, func() { RateLimit("lots") })
}
