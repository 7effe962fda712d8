package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HeaderBootstrapKey carries the out-of-band secret for the bootstrap routes.
const HeaderBootstrapKey = "X-Bootstrap-Key"

// BootstrapKey guards the first-admin and password-recovery routes with a
// static shared secret instead of a session.  The header must equal secret
// exactly.  An empty secret disables the routes: every request is refused.
func BootstrapKey(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got := c.Request().Header.Get(HeaderBootstrapKey)
			if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "Invalid bootstrap key"})
			}
			return next(c)
		}
	}
}
