package handlers

import (
	"fmt"
	"net/http"
	"time"

	"restaurant-ordering-api/config"
	"restaurant-ordering-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// uuid8 is a throwaway password for placeholder owner accounts
func uuid8() string {
	return uuid.NewString()[:8]
}

// ── Tenant registry (super-admin only) ──────────────────────────────────────

// GetPendingRestaurants lists restaurants awaiting approval
func GetPendingRestaurants(c *gin.Context) {
	var pending []models.Restaurant
	if err := config.DB.Preload("Owner").Where("status = ?", models.RestaurantPending).Find(&pending).Error; err != nil {
		logrus.WithError(err).Error("Failed to load pending restaurants")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pending restaurants"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(pending), "restaurants": pending})
}

// ApproveRestaurant marks a restaurant approved and unlocks its owner.
// Status and the approved flag always move together.
func ApproveRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, "id = ?", c.Param("restaurantId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	restaurant.SetStatus(models.RestaurantApproved)
	if err := config.DB.Save(&restaurant).Error; err != nil {
		logrus.WithError(err).Error("Failed to approve restaurant")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Approval failed"})
		return
	}
	if err := config.DB.Model(&models.User{}).Where("id = ?", restaurant.OwnerID).Update("approved", true).Error; err != nil {
		logrus.WithError(err).Error("Failed to approve restaurant owner")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Approval failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Restaurant approved"})
}

// ListApprovedRestaurants lists approved tenants
func ListApprovedRestaurants(c *gin.Context) {
	var approved []models.Restaurant
	if err := config.DB.Preload("Owner").Where("status = ?", models.RestaurantApproved).Find(&approved).Error; err != nil {
		logrus.WithError(err).Error("Failed to load approved restaurants")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load approved restaurants"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(approved), "restaurants": approved})
}

type CreateRestaurantRequest struct {
	Name               string `json:"name" binding:"required"`
	Address            string `json:"address"`
	Image              string `json:"image"`
	OwnerName          string `json:"owner_name"`
	OwnerEmail         string `json:"owner_email"`
	PhoneNumber        string `json:"phone_number"`
	SubscriptionPlanID string `json:"subscription_plan_id"`
}

// CreateRestaurant lets a super-admin provision an auto-approved tenant.
// When the owner email is unknown a placeholder admin account is created
// with a throwaway password.
func CreateRestaurant(c *gin.Context) {
	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var owner models.User
	found := false
	if req.OwnerEmail != "" {
		if err := config.DB.Where("email = ?", req.OwnerEmail).First(&owner).Error; err == nil {
			found = true
		}
	}
	if !found {
		hash, err := bcrypt.GenerateFromPassword([]byte(uuid8()), bcrypt.DefaultCost)
		if err != nil {
			logrus.WithError(err).Error("Failed to hash placeholder password")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create restaurant"})
			return
		}
		name := req.OwnerName
		if name == "" {
			name = "Owner"
		}
		email := req.OwnerEmail
		if email == "" {
			email = fmt.Sprintf("owner+%d@example.com", time.Now().UnixNano())
		}
		owner = models.User{
			Name:         name,
			Email:        email,
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
			Approved:     true,
		}
		if err := config.DB.Create(&owner).Error; err != nil {
			logrus.WithError(err).Error("Failed to create placeholder owner")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create restaurant"})
			return
		}
	}

	restaurant := models.Restaurant{
		Name:        req.Name,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		OwnerID:     owner.ID,
		LogoURL:     req.Image,
	}
	restaurant.SetStatus(models.RestaurantApproved)
	if req.SubscriptionPlanID != "" {
		var plan models.Plan
		if err := config.DB.First(&plan, "id = ?", req.SubscriptionPlanID).Error; err == nil {
			restaurant.SubscriptionPlanID = &plan.ID
		}
	}
	if err := config.DB.Create(&restaurant).Error; err != nil {
		logrus.WithError(err).Error("Failed to create restaurant")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create restaurant"})
		return
	}

	config.DB.Model(&owner).Update("restaurant_id", restaurant.ID)

	c.JSON(http.StatusCreated, gin.H{"restaurant": restaurant})
}

type UpdateRestaurantRequest struct {
	Name               string                  `json:"name"`
	Address            string                  `json:"address"`
	Image              string                  `json:"image"`
	OwnerName          string                  `json:"owner_name"`
	OwnerEmail         string                  `json:"owner_email"`
	SubscriptionPlanID string                  `json:"subscription_plan_id"`
	Status             models.RestaurantStatus `json:"status"`
}

// UpdateRestaurant mutates a tenant record; a status change keeps the
// approved flag in sync.
func UpdateRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, "id = ?", c.Param("restaurantId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var req UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != "" {
		restaurant.Name = req.Name
	}
	if req.Address != "" {
		restaurant.Address = req.Address
	}
	if req.Image != "" {
		restaurant.LogoURL = req.Image
	}
	if req.SubscriptionPlanID != "" {
		restaurant.SubscriptionPlanID = &req.SubscriptionPlanID
	}
	if req.Status != "" {
		switch req.Status {
		case models.RestaurantPending, models.RestaurantApproved, models.RestaurantRejected:
			restaurant.SetStatus(req.Status)
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status. Must be: pending, approved, or rejected"})
			return
		}
	}

	if err := config.DB.Save(&restaurant).Error; err != nil {
		logrus.WithError(err).Error("Failed to update restaurant")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update restaurant"})
		return
	}

	if req.OwnerEmail != "" || req.OwnerName != "" {
		var owner models.User
		if err := config.DB.First(&owner, "id = ?", restaurant.OwnerID).Error; err == nil {
			if req.OwnerEmail != "" {
				owner.Email = req.OwnerEmail
			}
			if req.OwnerName != "" {
				owner.Name = req.OwnerName
			}
			config.DB.Save(&owner)
		}
	}

	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// DeleteRestaurant removes a tenant and unlinks its owner. Tables, menu
// items and orders are left in place (no cascade).
func DeleteRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, "id = ?", c.Param("restaurantId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	if err := config.DB.Delete(&restaurant).Error; err != nil {
		logrus.WithError(err).Error("Failed to delete restaurant")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete restaurant"})
		return
	}
	config.DB.Model(&models.User{}).Where("id = ?", restaurant.OwnerID).Update("restaurant_id", nil)

	c.JSON(http.StatusOK, gin.H{"message": "Restaurant deleted"})
}
