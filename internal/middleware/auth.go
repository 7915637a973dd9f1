package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/nutri-api/pkg/auth"
	apperrors "github.com/jwalitptl/nutri-api/pkg/errors"
	"github.com/jwalitptl/nutri-api/pkg/httputil"
)

const ContextNutritionistID = "nutritionist_id"

// Authenticator turns a bearer token into an identity
type Authenticator interface {
	Authenticate(token string) (auth.Identity, error)
}

// Authenticate attaches the caller's identity to the request context when a
// bearer token is sent. Requests without one pass through and are scoped
// by the services; a token that fails validation is rejected.
func Authenticate(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			httputil.Abort(c, apperrors.New(apperrors.CodeUnauthorized, "Invalid authorization format", http.StatusUnauthorized))
			return
		}

		id, err := a.Authenticate(strings.TrimSpace(token))
		if err != nil {
			zerolog.Ctx(c.Request.Context()).Debug().Err(err).Msg("rejected bearer token")
			httputil.Abort(c, apperrors.New(apperrors.CodeUnauthorized, "Invalid or expired token", http.StatusUnauthorized))
			return
		}

		ctx := auth.WithIdentity(c.Request.Context(), id)
		l := zerolog.Ctx(ctx).With().Str(ContextNutritionistID, id.NutritionistID.String()).Logger()
		c.Request = c.Request.WithContext(l.WithContext(ctx))
		c.Set(ContextNutritionistID, id.NutritionistID.String())
		c.Next()
	}
}
