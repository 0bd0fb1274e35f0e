package middleware

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	jwthelp "github.com/Skotchmaster/inventory/pkg/jwt"
	authmw "github.com/Skotchmaster/inventory/pkg/middleware/auth"
	"github.com/Skotchmaster/inventory/pkg/tokens"
)

// Renewer rotates the session from a refresh token, sets the new cookies on c
// and returns the new access token.
type Renewer func(c echo.Context, refreshToken string) (string, error)

// SimpleAuth checks the access cookie. The auth service is the refresh
// endpoint itself, so a missing or expired access token is renewed in-process
// through Renew instead of the auto-refresh client.
type SimpleAuth struct {
	JWTSecret []byte
	Cookies   jwthelp.Cookies
	Renew     Renewer
}

func NewSimpleAuth(secret []byte, cookies jwthelp.Cookies, renew Renewer) *SimpleAuth {
	return &SimpleAuth{JWTSecret: secret, Cookies: cookies, Renew: renew}
}

func (m *SimpleAuth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		accessCookie, err := c.Cookie(jwthelp.AccessCookie)
		if err != nil || accessCookie.Value == "" {
			return m.renew(c, next, "missing access token")
		}

		claims, err := tokens.AccessClaimsFromToken(accessCookie.Value, m.JWTSecret)
		if err != nil || claims.Subject == "" {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return m.renew(c, next, "invalid or expired token")
			}
			c.SetCookie(m.Cookies.Delete(jwthelp.AccessCookie, "/"))
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		setClaims(c, claims)
		return next(c)
	}
}

func (m *SimpleAuth) renew(c echo.Context, next echo.HandlerFunc, reason string) error {
	refreshCookie, err := c.Cookie(jwthelp.RefreshCookie)
	if m.Renew == nil || err != nil || refreshCookie.Value == "" {
		c.SetCookie(m.Cookies.Delete(jwthelp.AccessCookie, "/"))
		return echo.NewHTTPError(http.StatusUnauthorized, reason)
	}

	access, err := m.Renew(c, refreshCookie.Value)
	if err != nil {
		return err
	}
	claims, err := tokens.AccessClaimsFromToken(access, m.JWTSecret)
	if err != nil || claims.Subject == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "new access token invalid")
	}

	setClaims(c, claims)
	return next(c)
}

func setClaims(c echo.Context, claims *tokens.AccessClaims) {
	c.Set(authmw.CtxUserID, claims.Subject)
	c.Set(authmw.CtxRole, claims.Role)
	c.Set(authmw.CtxEmail, claims.Email)
}
