package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus represents all possible states of a dine-in order
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusPreparing OrderStatus = "Preparing"
	StatusReady     OrderStatus = "Ready"
	StatusCompleted OrderStatus = "Completed"
	StatusCancelled OrderStatus = "Cancelled"
)

// StatusPipeline is the normal progression of an order. Cancelled is
// reachable from any non-terminal state. The pipeline is descriptive:
// the status-update handler accepts any valid status and does not guard
// transitions.
var StatusPipeline = []OrderStatus{StatusPending, StatusPreparing, StatusReady, StatusCompleted}

// ActiveStatuses is the synthetic "active" filter group used by order
// listing and the dashboard's active-order count.
var ActiveStatuses = []OrderStatus{StatusPending, StatusPreparing, StatusReady}

// Valid reports whether s is one of the declared order statuses
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are expected from s
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type OrderType string

const (
	OrderDineIn   OrderType = "dinein"
	OrderTakeaway OrderType = "takeaway"
)

type PaymentMethod string

const (
	PaymentUPI  PaymentMethod = "upi"
	PaymentCard PaymentMethod = "card"
	PaymentCOD  PaymentMethod = "cod"
)

// Order belongs to one restaurant and (for customer orders) one table.
// Line items snapshot the menu price at creation time, and TotalAmount
// is computed once from those snapshots; later menu edits never change
// an existing order.
type Order struct {
	ID            string        `json:"id" gorm:"primaryKey;size:36"`
	TableID       *string       `json:"table_id" gorm:"size:36"`
	Table         *Table        `json:"table,omitempty" gorm:"foreignKey:TableID"`
	RestaurantID  string        `json:"restaurant_id" gorm:"not null;size:36"`
	Restaurant    *Restaurant   `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	Items         []OrderItem   `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	TotalAmount   int64         `json:"total_amount" gorm:"not null"`
	Status        OrderStatus   `json:"status" gorm:"not null;default:'Pending'"`
	OrderType     OrderType     `json:"order_type" gorm:"not null;default:'dinein'"`
	PaymentMethod PaymentMethod `json:"payment_method" gorm:"not null;default:'cod'"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type OrderItem struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	OrderID    string    `json:"order_id" gorm:"not null;size:36"`
	MenuItemID string    `json:"menu_item_id" gorm:"not null;size:36"`
	MenuItem   *MenuItem `json:"menu_item,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity   int       `json:"quantity" gorm:"not null"`
	Price      int64     `json:"price" gorm:"not null"` // snapshot price at time of order
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// Number derives the human-readable order number from the last 6 hex
// characters of the id.
func (o *Order) Number() string {
	hex := strings.ReplaceAll(o.ID, "-", "")
	if len(hex) > 6 {
		hex = hex[len(hex)-6:]
	}
	return "ORD-" + strings.ToUpper(hex)
}
