package handlers

import (
	"net/http"

	"restaurant-ordering-api/config"
	"restaurant-ordering-api/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Subscription plans are reference data managed by super-admins only.

type PlanRequest struct {
	Name           string `json:"name" binding:"required"`
	Price          int64  `json:"price" binding:"required,gt=0"`
	Features       string `json:"features"`
	MaxRestaurants int    `json:"max_restaurants"`
}

// ListPlans returns all plans, cheapest first
func ListPlans(c *gin.Context) {
	var plans []models.Plan
	if err := config.DB.Order("price asc").Find(&plans).Error; err != nil {
		logrus.WithError(err).Error("Failed to fetch plans")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch plans"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(plans), "plans": plans})
}

func GetPlan(c *gin.Context) {
	var plan models.Plan
	if err := config.DB.First(&plan, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

func CreatePlan(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.Plan
	if result := config.DB.Where("name = ?", req.Name).First(&existing); result.Error == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Plan name already exists"})
		return
	}

	plan := models.Plan{
		Name:           req.Name,
		Price:          req.Price,
		Features:       req.Features,
		MaxRestaurants: req.MaxRestaurants,
	}
	if err := config.DB.Create(&plan).Error; err != nil {
		logrus.WithError(err).Error("Failed to create plan")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create plan"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"plan": plan})
}

type UpdatePlanRequest struct {
	Name           *string `json:"name"`
	Price          *int64  `json:"price"`
	Features       *string `json:"features"`
	MaxRestaurants *int    `json:"max_restaurants"`
}

func UpdatePlan(c *gin.Context) {
	var plan models.Plan
	if err := config.DB.First(&plan, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		plan.Name = *req.Name
	}
	if req.Price != nil {
		plan.Price = *req.Price
	}
	if req.Features != nil {
		plan.Features = *req.Features
	}
	if req.MaxRestaurants != nil {
		plan.MaxRestaurants = *req.MaxRestaurants
	}

	if err := config.DB.Save(&plan).Error; err != nil {
		logrus.WithError(err).Error("Failed to update plan")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

func DeletePlan(c *gin.Context) {
	var plan models.Plan
	if err := config.DB.First(&plan, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}
	if err := config.DB.Delete(&plan).Error; err != nil {
		logrus.WithError(err).Error("Failed to delete plan")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete plan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Plan deleted"})
}
