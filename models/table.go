package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TableStatus tracks occupancy of a physical table
type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
	TableReserved  TableStatus = "reserved"
)

// Table belongs to exactly one restaurant; Number is unique within it.
// QRCode is the deep link customers scan to reach the menu.
type Table struct {
	ID            string      `json:"id" gorm:"primaryKey;size:36"`
	RestaurantID  string      `json:"restaurant_id" gorm:"not null;size:36;uniqueIndex:idx_restaurant_table_number"`
	Restaurant    *Restaurant `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	Number        int         `json:"number" gorm:"not null;uniqueIndex:idx_restaurant_table_number"`
	Capacity      int         `json:"capacity" gorm:"not null"`
	EstimatedTime int         `json:"estimated_time" gorm:"not null"` // minutes
	Status        TableStatus `json:"status" gorm:"not null;default:'available'"`
	QRCode        string      `json:"qr_code" gorm:"not null"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func (t *Table) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
