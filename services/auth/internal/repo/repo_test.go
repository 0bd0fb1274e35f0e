package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	pkgdb "github.com/Skotchmaster/inventory/pkg/db"
	pkg_hash "github.com/Skotchmaster/inventory/pkg/hash"
	jwthelp "github.com/Skotchmaster/inventory/pkg/jwt"
	"github.com/Skotchmaster/inventory/services/auth/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()
	db, err := pkgdb.Open(context.Background(), "sqlite://:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pkgdb.Close(db) })
	r := &GormRepo{DB: db}
	require.NoError(t, r.Migrate(context.Background()))
	return r
}

func newUser(t *testing.T, email, password string) *models.User {
	t.Helper()
	h, err := pkg_hash.HashPassword(password)
	require.NoError(t, err)
	return &models.User{Email: email, PasswordHash: h, Role: models.RoleUser}
}

func TestCreateUserIfNotExists_Conflict(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	u := newUser(t, "a@example.com", "Secret123")
	require.NoError(t, r.CreateUserIfNotExists(ctx, u))
	assert.NotEqual(t, uuid.Nil, u.ID)

	err := r.CreateUserIfNotExists(ctx, newUser(t, "a@example.com", "Other123"))
	assert.ErrorIs(t, err, ErrUserAlreadyExist)
}

func TestUserByCredentials(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, r.CreateUserIfNotExists(ctx, newUser(t, "b@example.com", "Secret123")))

	got, err := r.UserByCredentials(ctx, "b@example.com", "Secret123")
	require.NoError(t, err)
	assert.Equal(t, "b@example.com", got.Email)

	_, err = r.UserByCredentials(ctx, "b@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = r.UserByCredentials(ctx, "nobody@example.com", "Secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func refreshRow(userID uuid.UUID, raw string, exp time.Time) *models.RefreshToken {
	return &models.RefreshToken{
		Role:      models.RoleUser,
		Token:     jwthelp.Sha256Hex(raw),
		UserID:    userID,
		JTI:       uuid.NewString(),
		ExpiresAt: exp.Unix(),
	}
}

func TestRotateRefreshToken(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	uid := uuid.New()

	old := refreshRow(uid, "old", time.Now().Add(time.Hour))
	require.NoError(t, r.AddRefresh(ctx, old))

	next := refreshRow(uid, "next", time.Now().Add(time.Hour))
	require.NoError(t, r.RotateRefreshToken(ctx, old.JTI, next))

	oldRow, err := r.FindRefreshByID(ctx, old.JTI)
	require.NoError(t, err)
	assert.True(t, oldRow.Revoked)

	newRow, err := r.FindRefreshByID(ctx, next.JTI)
	require.NoError(t, err)
	assert.False(t, newRow.Revoked)

	err = r.RotateRefreshToken(ctx, old.JTI, refreshRow(uid, "again", time.Now().Add(time.Hour)))
	assert.ErrorIs(t, err, ErrRefreshUnusable)
}

func TestRotateRefreshToken_Expired(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	uid := uuid.New()

	old := refreshRow(uid, "old", time.Now().Add(-time.Minute))
	require.NoError(t, r.AddRefresh(ctx, old))

	err := r.RotateRefreshToken(ctx, old.JTI, refreshRow(uid, "next", time.Now().Add(time.Hour)))
	assert.ErrorIs(t, err, ErrRefreshUnusable)
}

func TestRotateRefreshToken_Unknown(t *testing.T) {
	r := newTestRepo(t)

	err := r.RotateRefreshToken(context.Background(), "missing", refreshRow(uuid.New(), "x", time.Now().Add(time.Hour)))
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRevokeRefresh(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	row := refreshRow(uuid.New(), "raw-token", time.Now().Add(time.Hour))
	require.NoError(t, r.AddRefresh(ctx, row))
	require.NoError(t, r.RevokeRefresh(ctx, "raw-token"))

	got, err := r.FindRefreshByID(ctx, row.JTI)
	require.NoError(t, err)
	assert.True(t, got.Revoked)
}
