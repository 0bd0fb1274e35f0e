package repo

import (
	"context"

	"github.com/Skotchmaster/inventory/services/auth/internal/models"
	"gorm.io/gorm"
)

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) Migrate(ctx context.Context) error {
	return r.DB.WithContext(ctx).AutoMigrate(&models.User{}, &models.RefreshToken{})
}
