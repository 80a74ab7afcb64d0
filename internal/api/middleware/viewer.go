package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/blogql/blog-api/internal/api/gql"
	"github.com/blogql/blog-api/internal/api/metrics"
	"github.com/blogql/blog-api/internal/core/domain"
	"github.com/blogql/blog-api/internal/core/ports"
)

// Viewer resolves the bearer token and stores the authenticated user in the
// request context. Requests without a token pass through anonymously; a token
// that does not verify fails the whole request with 401.
func Viewer(auth ports.AuthService, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := strings.TrimPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")

			user, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				return reject(c, err, log)
			}
			if user == nil {
				return next(c)
			}

			ctx := domain.WithViewer(c.Request().Context(), user)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func reject(c echo.Context, err error, log zerolog.Logger) error {
	status := http.StatusUnauthorized
	switch {
	case errors.Is(err, domain.ErrInvalidToken):
		metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
	case errors.Is(err, domain.ErrSubjectNotFound):
		metrics.AuthFailuresTotal.WithLabelValues("subject_not_found").Inc()
	default:
		status = http.StatusInternalServerError
		log.Error().
			Err(err).
			Str("path", c.Path()).
			Msg("resolve viewer")
	}
	return c.JSON(status, gql.ErrorResponse(gql.Classify(err)))
}
