package handlers

import (
	"net/http"

	"restaurant-ordering-api/config"
	"restaurant-ordering-api/middleware"
	"restaurant-ordering-api/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Name               string          `json:"name" binding:"required"`
	Email              string          `json:"email" binding:"required,email"`
	Password           string          `json:"password" binding:"required,min=6"`
	Role               models.UserRole `json:"role"`
	Location           string          `json:"location"`
	AvatarURL          string          `json:"avatar_url"`
	RestaurantName     string          `json:"restaurant_name"`
	PhoneNumber        string          `json:"phone_number"`
	SubscriptionPlanID string          `json:"subscription_plan_id"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func userPayload(user *models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"role":       user.Role,
		"approved":   user.Approved,
		"location":   user.Location,
		"avatar_url": user.AvatarURL,
		"restaurant": user.Restaurant,
	}
}

// Register creates a new user account. Admin registrations also create a
// pending restaurant owned by the new user; the account stays locked
// until a super-admin approves the restaurant.
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}
	switch role {
	case models.RoleCustomer, models.RoleAdmin, models.RoleSuperAdmin:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role. Must be: customer, admin, or super-admin"})
		return
	}

	var existing models.User
	if result := config.DB.Where("email = ?", req.Email).First(&existing); result.Error == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already in use"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		Location:     req.Location,
		AvatarURL:    req.AvatarURL,
		Approved:     role == models.RoleSuperAdmin,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		logrus.WithError(err).Error("Failed to create user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	if role == models.RoleAdmin {
		name := req.RestaurantName
		if name == "" {
			name = req.Name + "'s Restaurant"
		}
		restaurant := models.Restaurant{
			Name:        name,
			Address:     req.Location,
			PhoneNumber: req.PhoneNumber,
			OwnerID:     user.ID,
			LogoURL:     req.AvatarURL,
			Status:      models.RestaurantPending,
			Approved:    false,
		}
		if req.SubscriptionPlanID != "" {
			var plan models.Plan
			if err := config.DB.First(&plan, "id = ?", req.SubscriptionPlanID).Error; err == nil {
				restaurant.SubscriptionPlanID = &plan.ID
			}
		}
		if err := config.DB.Create(&restaurant).Error; err != nil {
			logrus.WithError(err).Error("Failed to create restaurant for admin registration")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
			return
		}
		user.RestaurantID = &restaurant.ID
		if err := config.DB.Model(&user).Update("restaurant_id", restaurant.ID).Error; err != nil {
			logrus.WithError(err).Error("Failed to link restaurant to owner")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
			return
		}
	}

	config.DB.Preload("Restaurant").First(&user, "id = ?", user.ID)

	if user.Role == models.RoleAdmin && !user.Approved {
		c.JSON(http.StatusCreated, gin.H{
			"message": "Registered. Pending approval by a Super Admin.",
			"user":    userPayload(&user),
		})
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		logrus.WithError(err).Error("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": userPayload(&user)})
}

// Login authenticates a user and returns a JWT. Admins awaiting
// approval are rejected with 403.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Preload("Restaurant").Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if user.Role == models.RoleAdmin && !user.Approved {
		c.JSON(http.StatusForbidden, gin.H{"error": "Your registration is pending approval by a super admin"})
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		logrus.WithError(err).Error("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": userPayload(&user)})
}

// GetProfile returns the authenticated user's profile
func GetProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	config.DB.Preload("Restaurant").First(user, "id = ?", user.ID)
	c.JSON(http.StatusOK, gin.H{"user": userPayload(user)})
}
