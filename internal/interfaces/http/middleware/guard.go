// internal/interfaces/http/middleware/guard.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/guard"
)

// RequireRoles gates a protected route group. The session is consulted on
// every request, not captured at setup, so a logout takes effect
// immediately. An empty role list admits any authenticated session.
func RequireRoles(session guard.Session, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch guard.Decide(session, roles...) {
		case guard.RedirectLogin:
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
		case guard.RedirectHome:
			c.Redirect(http.StatusFound, "/")
			c.Abort()
		default:
			c.Next()
		}
	}
}
