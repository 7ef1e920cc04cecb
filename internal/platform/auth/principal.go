package auth

import (
	"github.com/labstack/echo/v4"
)

const principalKey = "auth_principal"

// Principal identifies the authenticated platform account behind a request.
type Principal struct {
	UserID int64
}

// SetPrincipal stores the principal on the request context.
func SetPrincipal(c echo.Context, p Principal) {
	c.Set(principalKey, p)
}

// PrincipalFrom returns the principal attached to the request, if any.
func PrincipalFrom(c echo.Context) (Principal, bool) {
	p, ok := c.Get(principalKey).(Principal)
	return p, ok
}
