package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lmb/maintenance-tracker/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer session token
// and stores its claims in the request context.  The claims are trusted as
// signed; no database lookup happens here, so a role change only takes
// effect once the user's current token expires.
//
// Handlers read the identity through Claims(c), or the individual
// "user_id", "email" and "role" keys.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A missing header, a non-Bearer scheme and an empty token all
			// mean the caller never authenticated.
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
			}

			// Signature, algorithm and expiry are all checked by the parser.
			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid token"})
			}

			c.Set(claimsKey, claims)
			c.Set("user_id", claims.ID)
			c.Set("email", claims.Email)
			c.Set("role", claims.Role)
			return next(c)
		}
	}
}

// bearerToken extracts the token from an Authorization header value.  The
// scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
