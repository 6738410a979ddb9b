package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBodyLimit(t *testing.T) {
	newLimitedPostRouter := func(maxBytes int64, handler gin.HandlerFunc) *gin.Engine {
		router := gin.New()
		router.Use(BodyLimit(maxBytes))
		router.POST("/api/v1/forecast", handler)
		return router
	}
	okHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	}

	t.Run("allows request within limit", func(t *testing.T) {
		router := newLimitedPostRouter(1024, okHandler)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/forecast", strings.NewReader("small body"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects oversized Content-Length with the API error shape", func(t *testing.T) {
		router := newLimitedPostRouter(100, okHandler)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/forecast", strings.NewReader(strings.Repeat("x", 200)))
		req.ContentLength = 200
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_PAYLOAD_TOO_LARGE")
	})

	t.Run("bodyless GET requests pass untouched", func(t *testing.T) {
		router := gin.New()
		router.Use(BodyLimit(10))
		router.GET("/api/v1/forecast", okHandler)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/forecast", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("chunked requests are limited while reading", func(t *testing.T) {
		router := newLimitedPostRouter(50, func(c *gin.Context) {
			buf := make([]byte, 200)
			if _, err := c.Request.Body.Read(buf); err != nil {
				c.String(http.StatusBadRequest, "body too large")
				return
			}
			c.String(http.StatusOK, "ok")
		})

		// No Content-Length, so only MaxBytesReader can stop this one
		req := httptest.NewRequest(http.MethodPost, "/api/v1/forecast", strings.NewReader(strings.Repeat("x", 100)))
		req.ContentLength = -1
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
