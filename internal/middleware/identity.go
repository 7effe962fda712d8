package middleware

// identity.go exposes the authenticated identity stored by JWTAuth to
// handlers and to the other middleware in this package.

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lmb/maintenance-tracker/internal/utils"
)

const claimsKey = "claims"

// Claims returns the session claims of the current request, or nil when the
// route is not behind JWTAuth.
func Claims(c echo.Context) *utils.Claims {
	if cl, ok := c.Get(claimsKey).(*utils.Claims); ok {
		return cl
	}
	return nil
}

// userID returns the authenticated user id as a string for log fields and
// rate-limit keys, or "guest".
func userID(c echo.Context) string {
	if cl := Claims(c); cl != nil {
		return strconv.FormatUint(cl.ID, 10)
	}
	return "guest"
}
