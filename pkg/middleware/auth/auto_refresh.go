package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Skotchmaster/inventory/pkg/authclient"
	jwthelp "github.com/Skotchmaster/inventory/pkg/jwt"
	"github.com/Skotchmaster/inventory/pkg/logging"
	"github.com/Skotchmaster/inventory/pkg/tokens"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxEmail  = "email"
)

// Refresher trades a refresh token for a new token pair.
type Refresher interface {
	RefreshTokens(ctx context.Context, refreshToken string) (*authclient.RefreshResponse, error)
}

type AutoRefreshMiddleware struct {
	JWTSecret  []byte
	AuthClient Refresher
	Cookies    jwthelp.Cookies
}

func NewAutoRefreshMiddleware(secret []byte, authClient Refresher, cookies jwthelp.Cookies) *AutoRefreshMiddleware {
	return &AutoRefreshMiddleware{
		JWTSecret:  secret,
		AuthClient: authClient,
		Cookies:    cookies,
	}
}

func (m *AutoRefreshMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		accessCookie, err := c.Cookie(jwthelp.AccessCookie)
		if err != nil || accessCookie.Value == "" {
			return m.refresh(c, next)
		}

		claims, err := tokens.AccessClaimsFromToken(accessCookie.Value, m.JWTSecret)
		if err == nil && claims != nil {
			setUserContext(c, claims)
			return next(c)
		}

		if !errors.Is(err, jwt.ErrTokenExpired) {
			m.clearAuthCookies(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}

		return m.refresh(c, next)
	}
}

func (m *AutoRefreshMiddleware) refresh(c echo.Context, next echo.HandlerFunc) error {
	refreshCookie, rErr := c.Cookie(jwthelp.RefreshCookie)
	if rErr != nil || refreshCookie.Value == "" {
		m.clearAuthCookies(c)
		return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}

	ctx := c.Request().Context()
	refreshResp, refErr := m.AuthClient.RefreshTokens(ctx, refreshCookie.Value)
	if refErr != nil {
		if errors.Is(refErr, authclient.ErrRejected) {
			m.clearAuthCookies(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
		}
		logging.FromContext(ctx).Error("refresh_unavailable", "error", refErr)
		return echo.NewHTTPError(http.StatusServiceUnavailable, "auth service unavailable")
	}

	c.SetCookie(m.Cookies.Create(
		jwthelp.AccessCookie,
		refreshResp.AccessToken,
		"/",
		time.Unix(refreshResp.AccessExp, 0),
	))
	c.SetCookie(m.Cookies.Create(
		jwthelp.RefreshCookie,
		refreshResp.RefreshToken,
		"/",
		time.Unix(refreshResp.RefreshExp, 0),
	))

	newClaims, pErr := tokens.AccessClaimsFromToken(refreshResp.AccessToken, m.JWTSecret)
	if pErr != nil || newClaims == nil {
		m.clearAuthCookies(c)
		return echo.NewHTTPError(http.StatusUnauthorized, "new access token invalid")
	}

	setUserContext(c, newClaims)
	return next(c)
}

func (m *AutoRefreshMiddleware) clearAuthCookies(c echo.Context) {
	c.SetCookie(m.Cookies.Delete(jwthelp.AccessCookie, "/"))
	c.SetCookie(m.Cookies.Delete(jwthelp.RefreshCookie, "/"))
}

func setUserContext(c echo.Context, claims *tokens.AccessClaims) {
	c.Set(CtxUserID, claims.Subject)
	c.Set(CtxRole, claims.Role)
	c.Set(CtxEmail, claims.Email)
}
