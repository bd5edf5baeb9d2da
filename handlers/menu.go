package handlers

import (
	"net/http"

	"restaurant-ordering-api/access"
	"restaurant-ordering-api/config"
	"restaurant-ordering-api/middleware"
	"restaurant-ordering-api/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GetMenuItems lists every item of a restaurant, available or not
func GetMenuItems(c *gin.Context) {
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

	var items []models.MenuItem
	if err := config.DB.Where("restaurant_id = ?", restaurant.ID).Find(&items).Error; err != nil {
		logrus.WithError(err).Error("Failed to fetch menu items")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu items"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "items": items})
}

type CreateMenuItemRequest struct {
	Name           string `json:"name" binding:"required"`
	Description    string `json:"description"`
	Price          int64  `json:"price" binding:"required,gt=0"`
	OriginalPrice  int64  `json:"original_price"`
	Category       string `json:"category" binding:"required"`
	IsVeg          *bool  `json:"is_veg"`
	IsRecommended  bool   `json:"is_recommended"`
	IsPopular      bool   `json:"is_popular"`
	IsNewArrival   bool   `json:"is_new_arrival"`
	IsTodaySpecial bool   `json:"is_today_special"`
	SpicyLevel     int    `json:"spicy_level"`
	HasOffer       bool   `json:"has_offer"`
	OfferLabel     string `json:"offer_label"`
	Image          string `json:"image"`
}

func CreateMenuItem(c *gin.Context) {
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

	var req CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isVeg := true
	if req.IsVeg != nil {
		isVeg = *req.IsVeg
	}
	spicy := req.SpicyLevel
	if spicy < 1 || spicy > 3 {
		spicy = 1
	}

	item := models.MenuItem{
		RestaurantID:   restaurant.ID,
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		OriginalPrice:  req.OriginalPrice,
		Category:       req.Category,
		IsVeg:          isVeg,
		IsRecommended:  req.IsRecommended,
		IsPopular:      req.IsPopular,
		IsNewArrival:   req.IsNewArrival,
		IsTodaySpecial: req.IsTodaySpecial,
		SpicyLevel:     spicy,
		IsAvailable:    true,
		HasOffer:       req.HasOffer,
		OfferLabel:     req.OfferLabel,
		Image:          req.Image,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		logrus.WithError(err).Error("Failed to create menu item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// UpdateMenuItem applies a partial update. Only known fields pass
// through; price edits never touch existing order line snapshots.
func UpdateMenuItem(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var item models.MenuItem
	if err := config.DB.Preload("Restaurant").First(&item, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	if item.Restaurant == nil || !access.CanManage(user, item.Restaurant) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	allowed := map[string]bool{
		"name": true, "description": true, "price": true, "original_price": true,
		"category": true, "is_veg": true, "is_recommended": true, "is_popular": true,
		"is_new_arrival": true, "is_today_special": true, "spicy_level": true,
		"is_available": true, "has_offer": true, "offer_label": true, "image": true,
	}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}

	if err := config.DB.Model(&item).Updates(update).Error; err != nil {
		logrus.WithError(err).Error("Failed to update menu item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

func DeleteMenuItem(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var item models.MenuItem
	if err := config.DB.Preload("Restaurant").First(&item, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	if item.Restaurant == nil || !access.CanManage(user, item.Restaurant) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	if err := config.DB.Delete(&item).Error; err != nil {
		logrus.WithError(err).Error("Failed to delete menu item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted successfully"})
}
