package httpserver

import (
	"errors"
	"net/http"
	"strings"

	jwthelp "github.com/Skotchmaster/inventory/pkg/jwt"
	"github.com/Skotchmaster/inventory/pkg/logging"
	authmw "github.com/Skotchmaster/inventory/pkg/middleware/auth"
	"github.com/Skotchmaster/inventory/services/auth/internal/models"
	"github.com/Skotchmaster/inventory/services/auth/internal/service"
	"github.com/Skotchmaster/inventory/services/auth/internal/transport"
	"github.com/labstack/echo/v4"
)

type AuthHTTP struct {
	Svc     *service.AuthService
	Cookies jwthelp.Cookies
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		msg := strings.TrimPrefix(err.Error(), service.ErrValidation.Error()+": ")
		return echo.NewHTTPError(http.StatusBadRequest, msg)
	case errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, "user already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, service.ErrInvalidRefreshToken):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func userResponse(u *models.User) transport.UserResponse {
	return transport.UserResponse{ID: u.ID.String(), Email: u.Email}
}

func (h *AuthHTTP) setSession(c echo.Context, res *service.LoginResult) {
	c.SetCookie(h.Cookies.Create(jwthelp.AccessCookie, res.AccessToken, "/", res.AccessExp))
	c.SetCookie(h.Cookies.Create(jwthelp.RefreshCookie, res.RefreshToken, "/", res.RefreshExp))
}

func (h *AuthHTTP) clearSession(c echo.Context) {
	c.SetCookie(h.Cookies.Delete(jwthelp.RefreshCookie, "/"))
	c.SetCookie(h.Cookies.Delete(jwthelp.AccessCookie, "/"))
}

func (h *AuthHTTP) SignUp(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_signup")

	var req transport.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("signup_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, userResponse(user))
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return toHTTPError(err)
	}

	h.setSession(c, res)
	l.Info("login_successful")

	return c.JSON(http.StatusOK, userResponse(res.User))
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_refresh")

	refreshCookie, err := c.Cookie(jwthelp.RefreshCookie)
	if err != nil || refreshCookie.Value == "" {
		l.Warn("refresh_failed", "status", 401, "reason", "missing refresh token")
		return echo.NewHTTPError(http.StatusUnauthorized, "missing refresh token")
	}

	res, err := h.Svc.Refresh(ctx, refreshCookie.Value)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			h.clearSession(c)
		}
		return toHTTPError(err)
	}

	h.setSession(c, res)
	return c.JSON(http.StatusOK, transport.RefreshResponse{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		AccessExp:    res.AccessExp.Unix(),
		RefreshExp:   res.RefreshExp.Unix(),
	})
}

// LogOut revokes the refresh token and clears both cookies. It does not need
// a live access token, so an idle session can still sign out.
func (h *AuthHTTP) LogOut(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_logout")

	refreshCookie, rErr := c.Cookie(jwthelp.RefreshCookie)
	_, aErr := c.Cookie(jwthelp.AccessCookie)
	if rErr != nil && aErr != nil {
		l.Warn("logout_failed", "status", 401, "reason", "no session cookies")
		return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}

	if rErr == nil {
		if err := h.Svc.LogOut(ctx, refreshCookie.Value); err != nil {
			h.clearSession(c)
			l.Error("logout_failed", "status", 500, "reason", "cannot revoke refreshToken", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "logout failed")
		}
	}

	h.clearSession(c)
	l.Info("successful_logout")
	return c.JSON(http.StatusOK, echo.Map{
		"message": "logged out",
	})
}

// renew rotates the session for routes whose access token has lapsed.
func (h *AuthHTTP) renew(c echo.Context, refreshToken string) (string, error) {
	ctx := c.Request().Context()
	res, err := h.Svc.Refresh(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			h.clearSession(c)
		}
		logging.FromContext(ctx).Warn("session_renew_failed", "error", err)
		return "", toHTTPError(err)
	}
	h.setSession(c, res)
	return res.AccessToken, nil
}

func (h *AuthHTTP) CurrentUser(c echo.Context) error {
	userID, _ := c.Get(authmw.CtxUserID).(string)
	user, err := h.Svc.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, userResponse(user))
}
