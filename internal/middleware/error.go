package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	apperrors "github.com/jwalitptl/nutri-api/pkg/errors"
	"github.com/jwalitptl/nutri-api/pkg/httputil"
)

// ErrorHandler renders errors attached with c.Error as an envelope when the
// handler has not written a response itself.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		logger := zerolog.Ctx(c.Request.Context())
		for _, e := range c.Errors {
			logger.Error().
				Err(e.Err).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Interface("meta", e.Meta).
				Msg("request error")
		}

		if c.Writer.Written() {
			return
		}
		httputil.Abort(c, c.Errors.Last().Err)
	}
}

// NotFound answers unmatched routes with a NOT_FOUND envelope
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		httputil.Abort(c, apperrors.NotFound("Route"))
	}
}
