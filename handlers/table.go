package handlers

import (
	"fmt"
	"net/http"

	"restaurant-ordering-api/access"
	"restaurant-ordering-api/config"
	"restaurant-ordering-api/middleware"
	"restaurant-ordering-api/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Table management is owner/super-admin only; the approved-restaurant
// bypass does not apply here.

// GetTables lists a restaurant's tables ordered by table number
func GetTables(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, "id = ?", c.Param("restaurantId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	if !access.IsOwnerOrSuper(user, &restaurant) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var tables []models.Table
	if err := config.DB.Where("restaurant_id = ?", restaurant.ID).Order("number asc").Find(&tables).Error; err != nil {
		logrus.WithError(err).Error("Failed to fetch tables")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tables"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(tables), "tables": tables})
}

type CreateTableRequest struct {
	Number        int `json:"number" binding:"required,min=1"`
	Capacity      int `json:"capacity" binding:"required,min=1"`
	EstimatedTime int `json:"estimated_time" binding:"required,min=1"`
}

// qrDeepLink encodes restaurant + table number into the customer entry URL
func qrDeepLink(restaurantID string, number int) string {
	frontend := config.GetEnv("FRONTEND_URL", "http://localhost:5173")
	return fmt.Sprintf("%s/menu?restaurant=%s&table=%d", frontend, restaurantID, number)
}

// CreateTable adds a table with a generated QR deep link. Table numbers
// are unique per restaurant; a duplicate is a 400 with a specific
// message, the same number under another restaurant is fine.
func CreateTable(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, "id = ?", c.Param("restaurantId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	if !access.IsOwnerOrSuper(user, &restaurant) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var req CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.Table
	if result := config.DB.Where("restaurant_id = ? AND number = ?", restaurant.ID, req.Number).First(&existing); result.Error == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Table number already exists for this restaurant"})
		return
	}

	table := models.Table{
		RestaurantID:  restaurant.ID,
		Number:        req.Number,
		Capacity:      req.Capacity,
		EstimatedTime: req.EstimatedTime,
		Status:        models.TableAvailable,
		QRCode:        qrDeepLink(restaurant.ID, req.Number),
	}
	if err := config.DB.Create(&table).Error; err != nil {
		logrus.WithError(err).Error("Failed to create table")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create table"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"table": table})
}

type UpdateTableRequest struct {
	Number        *int                `json:"number"`
	Capacity      *int                `json:"capacity"`
	EstimatedTime *int                `json:"estimated_time"`
	Status        *models.TableStatus `json:"status"`
}

// UpdateTable mutates a table; this is also how staff release a table
// back to available, since completing an order never does.
func UpdateTable(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var table models.Table
	if err := config.DB.Preload("Restaurant").First(&table, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
		return
	}
	if table.Restaurant == nil || !access.IsOwnerOrSuper(user, table.Restaurant) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var req UpdateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Number != nil && *req.Number != table.Number {
		var existing models.Table
		if result := config.DB.Where("restaurant_id = ? AND number = ?", table.RestaurantID, *req.Number).First(&existing); result.Error == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Table number already exists for this restaurant"})
			return
		}
		table.Number = *req.Number
		table.QRCode = qrDeepLink(table.RestaurantID, table.Number)
	}
	if req.Capacity != nil {
		table.Capacity = *req.Capacity
	}
	if req.EstimatedTime != nil {
		table.EstimatedTime = *req.EstimatedTime
	}
	if req.Status != nil {
		switch *req.Status {
		case models.TableAvailable, models.TableOccupied, models.TableReserved:
			table.Status = *req.Status
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status. Must be: available, occupied, or reserved"})
			return
		}
	}

	if err := config.DB.Save(&table).Error; err != nil {
		logrus.WithError(err).Error("Failed to update table")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update table"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"table": table})
}

func DeleteTable(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var table models.Table
	if err := config.DB.Preload("Restaurant").First(&table, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
		return
	}
	if table.Restaurant == nil || !access.IsOwnerOrSuper(user, table.Restaurant) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	if err := config.DB.Delete(&table).Error; err != nil {
		logrus.WithError(err).Error("Failed to delete table")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete table"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Table deleted successfully"})
}
