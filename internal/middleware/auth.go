// Package middleware holds the session-based auth gate for the admin pages.
package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
)

// AuthMiddleware guards routes behind the OIDC login session. There is no
// user database: a session holding the OIDC subject is the whole identity.
type AuthMiddleware struct{}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware() *AuthMiddleware {
	return &AuthMiddleware{}
}

// RequireAuth ensures the user is authenticated, redirecting to the login
// flow if not.
func (m *AuthMiddleware) RequireAuth(c fiber.Ctx) error {
	sess := session.FromContext(c)
	if sess == nil || sess.Get("user_sub") == nil {
		if sess != nil {
			sess.Set("redirect_after_login", c.OriginalURL())
		}
		return c.Redirect().To("/auth/login")
	}

	if email, ok := sess.Get("user_email").(string); ok {
		c.Locals("user_email", email)
	}
	return c.Next()
}

// IsAuthenticated reports whether the request carries a logged-in session.
func IsAuthenticated(c fiber.Ctx) bool {
	sess := session.FromContext(c)
	return sess != nil && sess.Get("user_sub") != nil
}
