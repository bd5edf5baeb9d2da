package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Plan is a subscription tier, reference data managed by super-admins
type Plan struct {
	ID             string    `json:"id" gorm:"primaryKey;size:36"`
	Name           string    `json:"name" gorm:"uniqueIndex;not null"`
	Price          int64     `json:"price" gorm:"not null"`
	Features       string    `json:"features"` // comma-separated feature labels
	MaxRestaurants int       `json:"max_restaurants" gorm:"default:0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (p *Plan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
