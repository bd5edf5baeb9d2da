package handlers

import (
	"net/http"
	"strconv"

	"restaurant-ordering-api/config"
	"restaurant-ordering-api/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Customer-facing handlers: the unauthenticated, table-QR-driven flow.
// No credential is required anywhere in this file.

// customerEstimatedTime is the static estimate shown on every ticket
const customerEstimatedTime = "15-20 min"

// GetRestaurantInfo returns the public subset of a restaurant's profile
func GetRestaurantInfo(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, "id = ?", c.Param("restaurantId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":           restaurant.ID,
		"name":         restaurant.Name,
		"address":      restaurant.Address,
		"phone_number": restaurant.PhoneNumber,
		"logo_url":     restaurant.LogoURL,
	})
}

// GetCustomerMenu lists only the items currently available to order
func GetCustomerMenu(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, "id = ?", c.Param("restaurantId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var items []models.MenuItem
	if err := config.DB.Where("restaurant_id = ? AND is_available = ?", restaurant.ID, true).Find(&items).Error; err != nil {
		logrus.WithError(err).Error("Failed to fetch menu items")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu items"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "items": items})
}

var categoryLabels = map[string]struct {
	Name string
	Icon string
}{
	"starters":  {"Starters", "🥗"},
	"mains":     {"Main Course", "🍛"},
	"biryanis":  {"Biryanis", "🍚"},
	"breads":    {"Breads", "🫓"},
	"desserts":  {"Desserts", "🍮"},
	"beverages": {"Beverages", "🥤"},
}

// GetCategories returns the distinct categories of available items,
// prefixed with the synthetic "All" entry
func GetCategories(c *gin.Context) {
	restaurantID := c.Param("restaurantId")

	var categories []string
	if err := config.DB.Model(&models.MenuItem{}).
		Where("restaurant_id = ? AND is_available = ?", restaurantID, true).
		Distinct("category").Pluck("category", &categories).Error; err != nil {
		logrus.WithError(err).Error("Failed to fetch categories")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	formatted := []gin.H{{"id": "all", "name": "All", "icon": "🍽️"}}
	for _, cat := range categories {
		name, icon := cat, "🍽️"
		if label, ok := categoryLabels[cat]; ok {
			name, icon = label.Name, label.Icon
		}
		formatted = append(formatted, gin.H{"id": cat, "name": name, "icon": icon})
	}
	c.JSON(http.StatusOK, formatted)
}

// ValidateTable checks the table a scanned QR code points at
func ValidateTable(c *gin.Context) {
	restaurantID := c.Param("restaurantId")
	number, err := strconv.Atoi(c.Param("tableNumber"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table number"})
		return
	}

	var table models.Table
	if err := config.DB.Where("restaurant_id = ? AND number = ?", restaurantID, number).First(&table).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"table_number": table.Number,
		"is_occupied":  table.Status == models.TableOccupied,
		"restaurant":   table.RestaurantID,
	})
}

type CustomerOrderRequest struct {
	Table         int                  `json:"table" binding:"required,min=1"`
	Items         []OrderItemRequest   `json:"items" binding:"required,min=1,dive"`
	OrderType     models.OrderType     `json:"order_type"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
}

// CreateCustomerOrder is the QR entry point. The table is resolved by
// number within the restaurant, prices are snapshotted, and the table
// flips to occupied after the order write, unconditionally, even if it
// already was. The two writes are separate statements with no shared
// transaction. The response is a minimal ticket, not the full order.
func CreateCustomerOrder(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, "id = ?", c.Param("restaurantId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var req CustomerOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var table models.Table
	if err := config.DB.Where("restaurant_id = ? AND number = ?", restaurant.ID, req.Table).First(&table).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
		return
	}

	items, total, bindErr := buildOrderItems(restaurant.ID, req.Items)
	if bindErr != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErr})
		return
	}

	order := models.Order{
		TableID:       &table.ID,
		RestaurantID:  restaurant.ID,
		Items:         items,
		TotalAmount:   total,
		Status:        models.StatusPending,
		OrderType:     orderTypeOrDefault(req.OrderType),
		PaymentMethod: paymentMethodOrDefault(req.PaymentMethod),
	}
	if err := config.DB.Create(&order).Error; err != nil {
		logrus.WithError(err).Error("Failed to create customer order")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	if err := config.DB.Model(&table).Update("status", models.TableOccupied).Error; err != nil {
		// The order is already committed; occupancy may lag behind it
		logrus.WithError(err).WithField("table_id", table.ID).Error("Failed to mark table occupied")
	}

	c.JSON(http.StatusCreated, gin.H{
		"order_id":       order.ID,
		"order_number":   order.Number(),
		"status":         order.Status,
		"estimated_time": customerEstimatedTime,
	})
}

// GetOrderStatus is the public tracking endpoint for a placed order
func GetOrderStatus(c *gin.Context) {
	var order models.Order
	if err := config.DB.Preload("Table").Preload("Restaurant").Preload("Items.MenuItem").
		First(&order, "id = ?", c.Param("orderId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	resp := gin.H{
		"order_id":       order.ID,
		"order_number":   order.Number(),
		"status":         order.Status,
		"items":          order.Items,
		"total_amount":   order.TotalAmount,
		"created_at":     order.CreatedAt,
		"estimated_time": customerEstimatedTime,
	}
	if order.Table != nil {
		resp["table"] = order.Table.Number
	}
	if order.Restaurant != nil {
		resp["restaurant"] = order.Restaurant.Name
	}
	c.JSON(http.StatusOK, resp)
}
