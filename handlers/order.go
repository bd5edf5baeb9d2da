package handlers

import (
	"net/http"
	"strconv"

	"restaurant-ordering-api/access"
	"restaurant-ordering-api/config"
	"restaurant-ordering-api/middleware"
	"restaurant-ordering-api/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const defaultOrderLimit = 50

// GetOrders lists a restaurant's customer orders, newest first. Only
// orders with a table reference qualify (that is how customer-originated
// orders are told apart), and orders whose table no longer resolves are
// dropped from the result instead of erroring.
func GetOrders(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, "id = ?", c.Param("restaurantId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	if !access.CanManage(user, &restaurant) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	limit := defaultOrderLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	query := config.DB.Preload("Table").Preload("Items.MenuItem").
		Where("restaurant_id = ? AND table_id IS NOT NULL", restaurant.ID)

	switch status := c.Query("status"); status {
	case "":
	case "active":
		query = query.Where("status IN ?", models.ActiveStatuses)
	default:
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Order("created_at desc").Limit(limit).Find(&orders).Error; err != nil {
		logrus.WithError(err).Error("Failed to fetch orders")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	// Drop orders whose table reference no longer resolves
	result := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.Table != nil {
			result = append(result, o)
		}
	}

	c.JSON(http.StatusOK, gin.H{"count": len(result), "orders": result})
}

type OrderItemRequest struct {
	MenuItemID string `json:"menu_item_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	TableID       string               `json:"table_id" binding:"required"`
	Items         []OrderItemRequest   `json:"items" binding:"required,min=1,dive"`
	OrderType     models.OrderType     `json:"order_type"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
}

// buildOrderItems snapshots the current menu price into each line and
// returns the computed total. Any item outside the restaurant fails the
// whole order.
func buildOrderItems(restaurantID string, reqItems []OrderItemRequest) ([]models.OrderItem, int64, string) {
	var items []models.OrderItem
	var total int64
	for _, reqItem := range reqItems {
		var menuItem models.MenuItem
		if err := config.DB.First(&menuItem, "id = ?", reqItem.MenuItemID).Error; err != nil {
			return nil, 0, "Invalid menu item: " + reqItem.MenuItemID
		}
		if menuItem.RestaurantID != restaurantID {
			return nil, 0, "Invalid menu item: " + reqItem.MenuItemID
		}
		total += menuItem.Price * int64(reqItem.Quantity)
		items = append(items, models.OrderItem{
			MenuItemID: menuItem.ID,
			Quantity:   reqItem.Quantity,
			Price:      menuItem.Price,
		})
	}
	return items, total, ""
}

// CreateOrder is the staff order-entry path: the table is referenced by
// id and must belong to the restaurant. The total is computed from
// snapshotted prices, never taken from the client.
func CreateOrder(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, "id = ?", c.Param("restaurantId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	if !access.CanManage(user, &restaurant) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var table models.Table
	if err := config.DB.First(&table, "id = ?", req.TableID).Error; err != nil || table.RestaurantID != restaurant.ID {
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
		logrus.WithError(err).Error("Failed to create order")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	config.DB.Preload("Table").Preload("Items.MenuItem").First(&order, "id = ?", order.ID)
	c.JSON(http.StatusCreated, gin.H{"order": order, "order_number": order.Number()})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus overwrites the order status unconditionally. The
// pipeline in models is descriptive, transitions are not guarded. The
// table is never released here. Repeating a terminal status is a no-op
// success.
func UpdateOrderStatus(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var order models.Order
	if err := config.DB.Preload("Restaurant").First(&order, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.Restaurant == nil || !access.CanManage(user, order.Restaurant) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status. Must be: Pending, Preparing, Ready, Completed, or Cancelled"})
		return
	}

	if err := config.DB.Model(&order).Update("status", req.Status).Error; err != nil {
		logrus.WithError(err).Error("Failed to update order status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}

	config.DB.Preload("Table").Preload("Items.MenuItem").First(&order, "id = ?", order.ID)
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// GetOrder fetches a single order with relations expanded. The order is
// fetched before the access check, so a caller learns existence before
// denial.
func GetOrder(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var order models.Order
	if err := config.DB.Preload("Table").Preload("Restaurant").Preload("Items.MenuItem").
		First(&order, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.Restaurant == nil || !access.CanManage(user, order.Restaurant) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order, "order_number": order.Number()})
}

// GetStateMachineInfo documents the order status pipeline. Informational
// only: the update handler does not enforce these transitions.
func GetStateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"pipeline":        models.StatusPipeline,
		"active_statuses": models.ActiveStatuses,
		"terminal":        []models.OrderStatus{models.StatusCompleted, models.StatusCancelled},
		"note":            "Cancelled is reachable from any non-terminal state; transitions are tracked, not enforced",
	})
}

func orderTypeOrDefault(t models.OrderType) models.OrderType {
	switch t {
	case models.OrderDineIn, models.OrderTakeaway:
		return t
	}
	return models.OrderDineIn
}

func paymentMethodOrDefault(m models.PaymentMethod) models.PaymentMethod {
	switch m {
	case models.PaymentUPI, models.PaymentCard, models.PaymentCOD:
		return m
	}
	return models.PaymentCOD
}
