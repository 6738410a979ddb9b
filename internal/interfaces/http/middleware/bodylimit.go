package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cashcast/backend/internal/interfaces/http/dto"
)

// BodyLimit rejects request bodies larger than maxBytes. The forecast API
// only takes query parameters, so anything sizeable is a client mistake.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponse(
				dto.ErrCodePayloadTooLarge,
				"Request body exceeds maximum allowed size",
			))
			return
		}

		// ContentLength can lie for chunked requests; the reader enforces
		// the limit for those.
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
