package routes

import (
	"restaurant-ordering-api/handlers"
	"restaurant-ordering-api/middleware"
	"restaurant-ordering-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// Resolve the caller on every request; public routes tolerate
	// anonymous callers, protected groups reject them below.
	r.Use(middleware.AttachUser())

	// ── Customer routes (no auth, QR-driven flow) ─────────────────
	customer := r.Group("/customer")
	{
		customer.GET("/restaurant/:restaurantId", handlers.GetRestaurantInfo)
		customer.GET("/restaurant/:restaurantId/menu", handlers.GetCustomerMenu)
		customer.GET("/restaurant/:restaurantId/categories", handlers.GetCategories)
		customer.GET("/restaurant/:restaurantId/table/:tableNumber", handlers.ValidateTable)
		customer.POST("/restaurant/:restaurantId/order", handlers.CreateCustomerOrder)
		customer.GET("/order/:orderId/status", handlers.GetOrderStatus)
	}

	// ── Public API ─────────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.RequireAuth())
	{
		auth.GET("/profile", handlers.GetProfile)

		// Menu management
		auth.GET("/restaurants/:restaurantId/menu-items", handlers.GetMenuItems)
		auth.POST("/restaurants/:restaurantId/menu-items", handlers.CreateMenuItem)
		auth.PUT("/menu-items/:id", handlers.UpdateMenuItem)
		auth.DELETE("/menu-items/:id", handlers.DeleteMenuItem)

		// Table management
		auth.GET("/restaurants/:restaurantId/tables", handlers.GetTables)
		auth.POST("/restaurants/:restaurantId/tables", handlers.CreateTable)
		auth.PUT("/tables/:id", handlers.UpdateTable)
		auth.DELETE("/tables/:id", handlers.DeleteTable)

		// Orders
		auth.GET("/restaurants/:restaurantId/orders", handlers.GetOrders)
		auth.POST("/restaurants/:restaurantId/orders", handlers.CreateOrder)
		auth.GET("/orders/:id", handlers.GetOrder)
		auth.PUT("/orders/:id/status", handlers.UpdateOrderStatus)

		// Analytics
		auth.GET("/analytics/dashboard/:restaurantId", handlers.GetDashboardStats)
		auth.GET("/analytics/top-selling/:restaurantId", handlers.GetTopSellingItems)
		auth.GET("/analytics/export/:restaurantId", handlers.ExportAnalyticsReport)
	}

	// ── Super-admin routes ─────────────────────────────────────────
	admin := r.Group("/api")
	admin.Use(middleware.RequireAuth(), middleware.RequireRole(models.RoleSuperAdmin))
	{
		admin.GET("/restaurants/pending", handlers.GetPendingRestaurants)
		admin.POST("/restaurants/:restaurantId/approve", handlers.ApproveRestaurant)
		admin.GET("/restaurants/approved", handlers.ListApprovedRestaurants)
		admin.POST("/restaurants", handlers.CreateRestaurant)
		admin.PUT("/restaurants/:restaurantId", handlers.UpdateRestaurant)
		admin.DELETE("/restaurants/:restaurantId", handlers.DeleteRestaurant)

		admin.GET("/plans", handlers.ListPlans)
		admin.GET("/plans/:id", handlers.GetPlan)
		admin.POST("/plans", handlers.CreatePlan)
		admin.PUT("/plans/:id", handlers.UpdatePlan)
		admin.DELETE("/plans/:id", handlers.DeletePlan)
	}
}
