package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/nkripta/nkripta/internal/types"
)

const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware assigns each request a unique id, honoring one
// supplied by an upstream proxy, and echoes it back in the response.
func RequestIDMiddleware(c *gin.Context) {
	requestID := c.GetHeader(RequestIDHeader)
	if requestID == "" {
		requestID = types.GenerateRequestID()
	}

	ctx := types.SetRequestID(c.Request.Context(), requestID)
	c.Request = c.Request.WithContext(ctx)
	c.Writer.Header().Set(RequestIDHeader, requestID)

	c.Next()
}
