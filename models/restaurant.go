package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RestaurantStatus is the approval state of a tenant
type RestaurantStatus string

const (
	RestaurantPending  RestaurantStatus = "pending"
	RestaurantApproved RestaurantStatus = "approved"
	RestaurantRejected RestaurantStatus = "rejected"
)

// Restaurant is a tenant: it owns its tables, menu items and orders.
// The Approved flag is kept in sync with Status on every mutation.
type Restaurant struct {
	ID                 string           `json:"id" gorm:"primaryKey;size:36"`
	Name               string           `json:"name" gorm:"not null"`
	Address            string           `json:"address"`
	PhoneNumber        string           `json:"phone_number"`
	OwnerID            string           `json:"owner_id" gorm:"not null;size:36"`
	Owner              *User            `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	LogoURL            string           `json:"logo_url"`
	SubscriptionPlanID *string          `json:"subscription_plan_id" gorm:"size:36"`
	SubscriptionPlan   *Plan            `json:"subscription_plan,omitempty" gorm:"foreignKey:SubscriptionPlanID"`
	Status             RestaurantStatus `json:"status" gorm:"not null;default:'pending'"`
	Approved           bool             `json:"approved" gorm:"default:false"`
	MenuItems          []MenuItem       `json:"menu_items,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

func (r *Restaurant) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// SetStatus changes the approval state and keeps the Approved flag in sync
func (r *Restaurant) SetStatus(status RestaurantStatus) {
	r.Status = status
	r.Approved = status == RestaurantApproved
}

type MenuItem struct {
	ID             string     `json:"id" gorm:"primaryKey;size:36"`
	RestaurantID   string     `json:"restaurant_id" gorm:"not null;size:36"`
	Restaurant     *Restaurant `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	Name           string     `json:"name" gorm:"not null"`
	Description    string     `json:"description"`
	Price          int64      `json:"price" gorm:"not null"`
	OriginalPrice  int64      `json:"original_price"`
	Category       string     `json:"category" gorm:"not null"`
	IsVeg          bool       `json:"is_veg" gorm:"default:true"`
	IsRecommended  bool       `json:"is_recommended" gorm:"default:false"`
	IsPopular      bool       `json:"is_popular" gorm:"default:false"`
	IsNewArrival   bool       `json:"is_new_arrival" gorm:"default:false"`
	IsTodaySpecial bool       `json:"is_today_special" gorm:"default:false"`
	SpicyLevel     int        `json:"spicy_level" gorm:"default:1"`
	IsAvailable    bool       `json:"is_available" gorm:"default:true"`
	HasOffer       bool       `json:"has_offer" gorm:"default:false"`
	OfferLabel     string     `json:"offer_label"`
	Image          string     `json:"image"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
