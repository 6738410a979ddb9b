package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func observedRouter(level zapcore.Level) (*gin.Engine, *observer.ObservedLogs) {
	core, recorded := observer.New(level)
	router := gin.New()
	router.Use(GinMiddleware(zap.New(core)))
	return router, recorded
}

func serveGet(router *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	router.ServeHTTP(w, req)
	return w
}

func findRequestLog(t *testing.T, recorded *observer.ObservedLogs) *observer.LoggedEntry {
	t.Helper()
	for _, entry := range recorded.All() {
		if entry.Message == "HTTP request" {
			e := entry
			return &e
		}
	}
	return nil
}

func TestGinMiddleware(t *testing.T) {
	t.Run("logs a successful forecast request at info", func(t *testing.T) {
		router, recorded := observedRouter(zapcore.InfoLevel)
		router.GET("/api/v1/forecast", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true})
		})

		w := serveGet(router, "/api/v1/forecast")

		assert.Equal(t, http.StatusOK, w.Code)
		entry := findRequestLog(t, recorded)
		require.NotNil(t, entry)
		assert.Equal(t, zapcore.InfoLevel, entry.Level)
	})

	t.Run("carries the request ID into log fields", func(t *testing.T) {
		core, recorded := observer.New(zapcore.InfoLevel)
		router := gin.New()
		router.Use(func(c *gin.Context) {
			c.Set("request_id", "req-123")
			c.Next()
		})
		router.Use(GinMiddleware(zap.New(core)))
		router.GET("/api/v1/forecast", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true})
		})

		serveGet(router, "/api/v1/forecast")

		entry := findRequestLog(t, recorded)
		require.NotNil(t, entry)
		fields := entry.ContextMap()
		assert.Equal(t, "req-123", fields["request_id"])
		assert.Equal(t, "/api/v1/forecast", fields["path"])
	})

	t.Run("logs the horizon query string", func(t *testing.T) {
		router, recorded := observedRouter(zapcore.InfoLevel)
		router.GET("/api/v1/forecast", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true})
		})

		serveGet(router, "/api/v1/forecast?horizon_days=30")

		entry := findRequestLog(t, recorded)
		require.NotNil(t, entry)
		assert.Contains(t, entry.ContextMap()["query"], "horizon_days=30")
	})

	t.Run("4xx responses log at warn", func(t *testing.T) {
		router, recorded := observedRouter(zapcore.WarnLevel)
		router.GET("/api/v1/forecast", func(c *gin.Context) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false})
		})

		serveGet(router, "/api/v1/forecast?horizon_days=abc")

		entry := findRequestLog(t, recorded)
		require.NotNil(t, entry)
		assert.Equal(t, zapcore.WarnLevel, entry.Level)
	})

	t.Run("5xx responses log at error", func(t *testing.T) {
		router, recorded := observedRouter(zapcore.ErrorLevel)
		router.GET("/api/v1/forecast", func(c *gin.Context) {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		})

		serveGet(router, "/api/v1/forecast")

		entry := findRequestLog(t, recorded)
		require.NotNil(t, entry)
		assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	})

	t.Run("successful health checks are not logged", func(t *testing.T) {
		router, recorded := observedRouter(zapcore.InfoLevel)
		router.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy"})
		})

		serveGet(router, "/health")

		assert.Nil(t, findRequestLog(t, recorded))
	})

	t.Run("failing health checks are still logged", func(t *testing.T) {
		router, recorded := observedRouter(zapcore.InfoLevel)
		router.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		})

		serveGet(router, "/health")

		entry := findRequestLog(t, recorded)
		require.NotNil(t, entry)
		assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	})
}

func TestRecovery(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)
	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/api/v1/forecast", func(c *gin.Context) {
		panic("engine invariant violated")
	})

	var w *httptest.ResponseRecorder
	assert.NotPanics(t, func() {
		w = serveGet(router, "/api/v1/forecast")
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	logs := recorded.All()
	require.NotEmpty(t, logs)
	assert.Equal(t, "Panic recovered", logs[0].Message)
}

func TestGetGinLogger(t *testing.T) {
	t.Run("returns the request-scoped logger", func(t *testing.T) {
		router, _ := observedRouter(zapcore.InfoLevel)
		var retrieved *zap.Logger
		router.GET("/api/v1/forecast", func(c *gin.Context) {
			retrieved = GetGinLogger(c)
			c.Status(http.StatusOK)
		})

		serveGet(router, "/api/v1/forecast")

		assert.NotNil(t, retrieved)
	})

	t.Run("falls back to a no-op logger outside the chain", func(t *testing.T) {
		router := gin.New()
		var retrieved *zap.Logger
		router.GET("/api/v1/forecast", func(c *gin.Context) {
			retrieved = GetGinLogger(c)
			c.Status(http.StatusOK)
		})

		serveGet(router, "/api/v1/forecast")

		require.NotNil(t, retrieved)
		assert.NotPanics(t, func() {
			retrieved.Info("no-op")
		})
	})
}
