package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Item struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null"             json:"name"`
	Quantity  int       `gorm:"not null;default:0"   json:"quantity"`
	Price     float64   `gorm:"not null;default:0"   json:"price"`
	CreatedAt time.Time `gorm:"index"                json:"created_at"`
	UpdatedAt time.Time `                            json:"updated_at"`
}

func (Item) TableName() string { return "inventory" }

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
