package middleware

import (
	"github.com/gracechapel/church-admin-api/internal/models"
	"github.com/m1z23r/drift/pkg/drift"
)

// RequireRole denies the request unless the session role exactly equals the
// required role. Runs after Auth.
func RequireRole(required models.Role) drift.HandlerFunc {
	return func(c *drift.Context) {
		if GetUserRole(c) != required {
			c.Forbidden("access denied")
			return
		}
		c.Next()
	}
}

// RequireAdmin denies the request unless the session role is ADMIN or
// SUPER_ADMIN.
func RequireAdmin() drift.HandlerFunc {
	return func(c *drift.Context) {
		if !GetUserRole(c).HasAdminAccess() {
			c.Forbidden("access denied")
			return
		}
		c.Next()
	}
}
