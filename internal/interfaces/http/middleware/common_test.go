package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// forecastRouter builds a minimal router shaped like the real API surface
func forecastRouter(mw ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(mw...)
	router.GET("/api/v1/forecast", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func corsRequest(router *gin.Engine, method, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/v1/forecast", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCORSWithConfig(t *testing.T) {
	dashboard := "https://dashboard.cashcast.io"

	t.Run("allows whitelisted origin", func(t *testing.T) {
		router := forecastRouter(CORSWithConfig(CORSConfig{
			AllowOrigins:     []string{dashboard},
			AllowMethods:     []string{"GET", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type"},
			AllowCredentials: true,
		}))

		w := corsRequest(router, http.MethodGet, dashboard)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, dashboard, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("allows any of several whitelisted origins", func(t *testing.T) {
		staging := "https://staging.cashcast.io"
		router := forecastRouter(CORSWithConfig(CORSConfig{
			AllowOrigins: []string{dashboard, staging},
		}))

		w := corsRequest(router, http.MethodGet, staging)

		assert.Equal(t, staging, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("sets no CORS headers for unlisted origin", func(t *testing.T) {
		router := forecastRouter(CORSWithConfig(CORSConfig{
			AllowOrigins: []string{dashboard},
		}))

		w := corsRequest(router, http.MethodGet, "https://evil.example.com")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("empty whitelist rejects all cross-origin requests", func(t *testing.T) {
		router := forecastRouter(CORSWithConfig(CORSConfig{}))

		w := corsRequest(router, http.MethodGet, dashboard)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard allows all origins without credentials", func(t *testing.T) {
		router := forecastRouter(CORSWithConfig(CORSConfig{
			AllowOrigins:     []string{"*"},
			AllowCredentials: true,
		}))

		w := corsRequest(router, http.MethodGet, "https://anywhere.example.com")

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("sets max-age and expose headers", func(t *testing.T) {
		router := forecastRouter(CORSWithConfig(CORSConfig{
			AllowOrigins:  []string{dashboard},
			ExposeHeaders: []string{"X-Request-ID", "X-RateLimit-Remaining"},
			MaxAge:        12 * time.Hour,
		}))

		w := corsRequest(router, http.MethodGet, dashboard)

		assert.Equal(t, "43200", w.Header().Get("Access-Control-Max-Age"))
		assert.Equal(t, "X-Request-ID, X-RateLimit-Remaining", w.Header().Get("Access-Control-Expose-Headers"))
	})

	t.Run("preflight from allowed origin gets 204 with headers", func(t *testing.T) {
		router := forecastRouter(CORSWithConfig(CORSConfig{
			AllowOrigins: []string{dashboard},
			AllowMethods: []string{"GET", "OPTIONS"},
			AllowHeaders: []string{"Content-Type", "X-Request-ID"},
		}))

		w := corsRequest(router, http.MethodOptions, dashboard)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, dashboard, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("preflight from disallowed origin gets bare 204", func(t *testing.T) {
		router := forecastRouter(CORSWithConfig(CORSConfig{
			AllowOrigins: []string{dashboard},
		}))

		w := corsRequest(router, http.MethodOptions, "https://evil.example.com")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRequestID(t *testing.T) {
	t.Run("generates a request ID when none is supplied", func(t *testing.T) {
		router := forecastRouter(RequestID())

		w := corsRequest(router, http.MethodGet, "")

		id := w.Header().Get("X-Request-ID")
		require.NotEmpty(t, id)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})

	t.Run("echoes a caller-supplied request ID", func(t *testing.T) {
		router := forecastRouter(RequestID())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/forecast", nil)
		req.Header.Set("X-Request-ID", "upstream-trace-42")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "upstream-trace-42", w.Header().Get("X-Request-ID"))
	})

	t.Run("stores the request ID in the gin context", func(t *testing.T) {
		router := gin.New()
		router.Use(RequestID())
		var seen string
		router.GET("/api/v1/forecast", func(c *gin.Context) {
			seen = c.GetString("request_id")
			c.Status(http.StatusOK)
		})

		corsRequest(router, http.MethodGet, "")

		assert.NotEmpty(t, seen)
	})
}

func TestSecure(t *testing.T) {
	t.Run("default headers lock down an API-only surface", func(t *testing.T) {
		router := forecastRouter(Secure())

		w := corsRequest(router, http.MethodGet, "")

		assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
		assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'none'")
		assert.Contains(t, w.Header().Get("Permissions-Policy"), "camera=()")
		assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
	})

	t.Run("HSTS header reflects configuration when enabled", func(t *testing.T) {
		cfg := DefaultSecurityConfig()
		cfg.HSTSEnabled = true
		cfg.HSTSPreload = true
		router := forecastRouter(SecureWithConfig(cfg))

		w := corsRequest(router, http.MethodGet, "")

		hsts := w.Header().Get("Strict-Transport-Security")
		assert.Contains(t, hsts, "max-age=31536000")
		assert.Contains(t, hsts, "includeSubDomains")
		assert.Contains(t, hsts, "preload")
	})

	t.Run("CSP can be disabled", func(t *testing.T) {
		cfg := DefaultSecurityConfig()
		cfg.CSPEnabled = false
		router := forecastRouter(SecureWithConfig(cfg))

		w := corsRequest(router, http.MethodGet, "")

		assert.Empty(t, w.Header().Get("Content-Security-Policy"))
	})
}
