package middleware

import (
	"github.com/gin-gonic/gin"

	ierr "github.com/nkripta/nkripta/internal/errors"
	"github.com/nkripta/nkripta/internal/logger"
)

// ErrorHandlerMiddleware maps errors attached by handlers onto the single
// error response shape. Internal details never leak to the caller; only the
// hint and reportable details do.
func ErrorHandlerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := ierr.HTTPStatusFromErr(err)
		if status >= 500 {
			log.Errorw("request failed", "error", err, "path", c.Request.URL.Path)
		}

		c.JSON(status, ierr.NewErrorResponse(err))
	}
}
