package repo

import (
	"context"
	"errors"
	"time"

	jwthelp "github.com/Skotchmaster/inventory/pkg/jwt"
	"github.com/Skotchmaster/inventory/services/auth/internal/models"
	"gorm.io/gorm"
)

var ErrRefreshUnusable = errors.New("refresh token expired or revoked")

func (r *GormRepo) AddRefresh(ctx context.Context, token *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Create(token).Error
}

func (r *GormRepo) FindRefreshByID(ctx context.Context, jti string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := r.DB.WithContext(ctx).Where("jti = ?", jti).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func refreshExpiredOrRevoked(db *gorm.DB, jti string) (bool, error) {
	var refresh models.RefreshToken
	if err := db.Where("jti = ?", jti).First(&refresh).Error; err != nil {
		return false, err
	}
	return refresh.ExpiresAt < time.Now().Unix() || refresh.Revoked, nil
}

// RotateRefreshToken revokes oldJTI and stores newToken in one transaction.
// A missing old token surfaces as gorm.ErrRecordNotFound.
func (r *GormRepo) RotateRefreshToken(ctx context.Context, oldJTI string, newToken *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		unusable, err := refreshExpiredOrRevoked(tx, oldJTI)
		if err != nil {
			return err
		}
		if unusable {
			return ErrRefreshUnusable
		}

		if err := tx.Model(&models.RefreshToken{}).
			Where("jti = ?", oldJTI).
			Update("revoked", true).Error; err != nil {
			return err
		}

		return tx.Create(newToken).Error
	})
}

func (r *GormRepo) RevokeRefresh(ctx context.Context, refreshToken string) error {
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token = ?", jwthelp.Sha256Hex(refreshToken)).
		Update("revoked", true).Error
}
