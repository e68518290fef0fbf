package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cipco/cms-backend/internal/core/domain"
	"github.com/cipco/cms-backend/internal/pkg/metrics"
)

// RBAC enforces role-based access control. It must run after Authenticate.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFromContext(c)
			if !ok {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
			}
			if _, ok := allowed[id.Role]; !ok {
				metrics.AuthRejectionsTotal.WithLabelValues("insufficient_role").Inc()
				return echo.NewHTTPError(http.StatusForbidden, domain.ErrForbidden.Error())
			}
			return next(c)
		}
	}
}

// RequireAdmin admits admins and superadmins.
func RequireAdmin() echo.MiddlewareFunc {
	return RBAC(domain.RoleAdmin, domain.RoleSuperAdmin)
}

// RequireSuperAdmin admits superadmins only.
func RequireSuperAdmin() echo.MiddlewareFunc {
	return RBAC(domain.RoleSuperAdmin)
}
