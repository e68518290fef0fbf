package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cipco/cms-backend/internal/core/domain"
	"github.com/cipco/cms-backend/internal/core/ports"
	"github.com/cipco/cms-backend/internal/pkg/metrics"
)

const (
	// HeaderAuthToken is the custom token header used by the admin front-end.
	HeaderAuthToken = "x-auth-token"

	identityKey = "identity"
)

// Authenticate verifies the request token and reloads the user on every
// request, so a deleted or deactivated account loses access immediately.
// All rejection causes produce the same 401 body.
func Authenticate(tokens ports.TokenService, users ports.UserRepository, log zerolog.Logger) echo.MiddlewareFunc {
	unauthorized := func(reason string) error {
		metrics.AuthRejectionsTotal.WithLabelValues(reason).Inc()
		return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFromRequest(c.Request())
			if raw == "" {
				return unauthorized("missing_token")
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				return unauthorized("invalid_token")
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return unauthorized("inactive_user")
				}
				log.Error().Err(err).Str("user_id", claims.UserID).Msg("auth: user lookup failed")
				return err
			}
			if !user.IsActive {
				return unauthorized("inactive_user")
			}

			// The stored role is authoritative: a demotion takes effect
			// before the token expires.
			SetIdentity(c, &domain.Identity{
				UserID: user.ID,
				Role:   user.Role,
				Email:  user.Email,
				Name:   user.Name,
			})

			return next(c)
		}
	}
}

// SetIdentity attaches the authenticated caller to the request.
func SetIdentity(c echo.Context, id *domain.Identity) {
	c.Set(identityKey, id)
}

// IdentityFromContext returns the caller attached by Authenticate.
func IdentityFromContext(c echo.Context) (*domain.Identity, bool) {
	id, ok := c.Get(identityKey).(*domain.Identity)
	return id, ok && id != nil
}

// tokenFromRequest reads x-auth-token first, then Authorization: Bearer.
func tokenFromRequest(r *http.Request) string {
	if tok := strings.TrimSpace(r.Header.Get(HeaderAuthToken)); tok != "" {
		return tok
	}

	parts := strings.SplitN(r.Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
