package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/inventory/pkg/events"
	pkg_hash "github.com/Skotchmaster/inventory/pkg/hash"
	jwthelp "github.com/Skotchmaster/inventory/pkg/jwt"
	"github.com/Skotchmaster/inventory/pkg/logging"
	"github.com/Skotchmaster/inventory/pkg/tokens"
	"github.com/Skotchmaster/inventory/services/auth/internal/models"
	"github.com/Skotchmaster/inventory/services/auth/internal/repo"
)

const (
	MinPasswordLen    = 6
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

type AuthService struct {
	Repo          *repo.GormRepo
	Events        events.Publisher
	JWTSecret     []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type LoginResult struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
}

func (h *AuthService) accessTTL() time.Duration {
	if h.AccessTTL > 0 {
		return h.AccessTTL
	}
	return DefaultAccessTTL
}

func (h *AuthService) refreshTTL() time.Duration {
	if h.RefreshTTL > 0 {
		return h.RefreshTTL
	}
	return DefaultRefreshTTL
}

func (h *AuthService) publish(ctx context.Context, key string, event map[string]any) {
	if h.Events == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := h.Events.PublishEvent(pubCtx, events.UserTopic, key, event); err != nil {
		logging.FromContext(ctx).Warn("publish_failed", "topic", events.UserTopic, "error", err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateCredentials(email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("%w: email and password are required", ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	return nil
}

func (h *AuthService) CreateAccessToken(user *models.User, accessExp time.Time) (string, error) {
	return tokens.SignAccess(tokens.AccessClaims{
		Role:  user.Role,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(accessExp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}, h.JWTSecret)
}

func (h *AuthService) CreateRefreshToken(id string, refreshExp time.Time) (string, string, error) {
	jti := jwthelp.NewJTI()
	token, err := tokens.SignRefresh(tokens.RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			ExpiresAt: jwt.NewNumericDate(refreshExp),
			ID:        jti,
		},
	}, h.RefreshSecret)
	if err != nil {
		return "", "", err
	}
	return token, jti, nil
}

// issue mints a token pair for user. The refresh row is returned unsaved so the
// caller decides whether it is a fresh insert or part of a rotation.
func (h *AuthService) issue(user *models.User) (*LoginResult, *models.RefreshToken, error) {
	now := time.Now()
	accessExp := now.Add(h.accessTTL())
	accessToken, err := h.CreateAccessToken(user, accessExp)
	if err != nil {
		return nil, nil, err
	}

	refreshExp := now.Add(h.refreshTTL())
	refreshToken, jti, err := h.CreateRefreshToken(user.ID.String(), refreshExp)
	if err != nil {
		return nil, nil, err
	}

	row := &models.RefreshToken{
		Role:      user.Role,
		Token:     jwthelp.Sha256Hex(refreshToken),
		UserID:    user.ID,
		JTI:       jti,
		ExpiresAt: refreshExp.Unix(),
	}
	return &LoginResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
	}, row, nil
}

func (h *AuthService) SignUp(ctx context.Context, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signup")
	email = normalizeEmail(email)

	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}
	if len(password) < MinPasswordLen {
		return nil, fmt.Errorf("%w: password should be at least %d characters", ErrValidation, MinPasswordLen)
	}

	pwHash, err := pkg_hash.HashPassword(password)
	if err != nil {
		l.Error("signup_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}
	user := &models.User{
		Email:        email,
		PasswordHash: pwHash,
		Role:         models.RoleUser,
	}

	if err := h.Repo.CreateUserIfNotExists(ctx, user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			l.Warn("signup_error", "status", 409, "reason", "user already exist")
			return nil, ErrConflict
		}
		l.Error("signup_error", "status", 500, "error", err)
		return nil, err
	}

	h.publish(ctx, user.ID.String(), map[string]any{
		"type":   "user_signed_up",
		"userID": user.ID.String(),
		"email":  user.Email,
	})
	l.Info("signup_success", "user_id", user.ID.String())
	return user, nil
}

func (h *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	l := logging.FromContext(ctx).With("svc", "auth.login", "email", email)

	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := h.Repo.UserByCredentials(ctx, email, password)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidCredentials) {
			l.Warn("login_failed", "status", 401, "reason", "invalid email or password")
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, err
	}

	res, row, err := h.issue(user)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot sign tokens", "error", err)
		return nil, err
	}
	if err := h.Repo.AddRefresh(ctx, row); err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot store refresh token", "error", err)
		return nil, err
	}

	l.Info("login_success", "user_id", user.ID.String())
	return res, nil
}

func (h *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	claims, err := tokens.RefreshClaimsFromToken(refreshToken, h.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRefreshToken, err)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidRefreshToken)
	}

	user, err := h.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown user", ErrInvalidRefreshToken)
		}
		return nil, err
	}

	res, row, err := h.issue(user)
	if err != nil {
		l.Error("refresh_failed", "status", 500, "reason", "cannot sign tokens", "error", err)
		return nil, err
	}

	if err := h.Repo.RotateRefreshToken(ctx, claims.ID, row); err != nil {
		if errors.Is(err, repo.ErrRefreshUnusable) || errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("refresh_failed", "status", 401, "reason", err.Error())
			return nil, fmt.Errorf("%w: %v", ErrInvalidRefreshToken, err)
		}
		l.Error("refresh_failed", "status", 500, "error", err)
		return nil, err
	}

	return res, nil
}

func (h *AuthService) LogOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return h.Repo.RevokeRefresh(ctx, refreshToken)
}

func (h *AuthService) CurrentUser(ctx context.Context, id string) (*models.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	user, err := h.Repo.GetUserByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
