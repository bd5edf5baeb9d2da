package handlers

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"restaurant-ordering-api/access"
	"restaurant-ordering-api/config"
	"restaurant-ordering-api/middleware"
	"restaurant-ordering-api/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// topSellingTimeout bounds the two-window aggregation; past it the
// request fails clean instead of hanging.
const topSellingTimeout = 8 * time.Second

// Analytics payloads keep the original camelCase keys. They are the
// dashboard frontend's contract, unlike the snake_case entity JSON.

func rupees(n int64) string {
	return fmt.Sprintf("₹%d", n)
}

// relativeTime renders "<n> sec/min/hr/days ago" with thresholds at
// 60s, 3600s and 86400s
func relativeTime(t time.Time) string {
	diff := int(time.Since(t).Seconds())
	switch {
	case diff < 60:
		return fmt.Sprintf("%d sec ago", diff)
	case diff < 3600:
		return fmt.Sprintf("%d min ago", diff/60)
	case diff < 86400:
		return fmt.Sprintf("%d hr ago", diff/3600)
	}
	return fmt.Sprintf("%d days ago", diff/86400)
}

// fetchRestaurantForAnalytics resolves the restaurant and applies the
// analytics access rule (admins only see their own restaurant). Returns
// nil after writing the error response.
func fetchRestaurantForAnalytics(c *gin.Context) *models.Restaurant {
	user := middleware.CurrentUser(c)

	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, "id = ?", c.Param("restaurantId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return nil
	}
	if !access.CanViewAnalytics(user, restaurant.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return nil
	}
	return &restaurant
}

// GetDashboardStats computes today's numbers for a restaurant: revenue
// and items served over completed orders created since local midnight,
// the live active-order count, average completion time in minutes, and
// the last 10 table-linked orders regardless of date.
func GetDashboardStats(c *gin.Context) {
	restaurant := fetchRestaurantForAnalytics(c)
	if restaurant == nil {
		return
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)

	var todaysOrders []models.Order
	if err := config.DB.
		Where("restaurant_id = ? AND status = ? AND created_at >= ? AND created_at < ?",
			restaurant.ID, models.StatusCompleted, today, tomorrow).
		Find(&todaysOrders).Error; err != nil {
		logrus.WithError(err).Error("Failed to fetch today's orders")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard statistics"})
		return
	}

	var todaysRevenue int64
	var totalMinutes float64
	for _, o := range todaysOrders {
		todaysRevenue += o.TotalAmount
		totalMinutes += o.UpdatedAt.Sub(o.CreatedAt).Minutes()
	}
	avgOrderTime := 0
	if len(todaysOrders) > 0 {
		avgOrderTime = int(math.Round(totalMinutes / float64(len(todaysOrders))))
	}

	var activeOrders int64
	if err := config.DB.Model(&models.Order{}).
		Where("restaurant_id = ? AND status IN ?", restaurant.ID,
			[]models.OrderStatus{models.StatusPending, models.StatusPreparing}).
		Count(&activeOrders).Error; err != nil {
		logrus.WithError(err).Error("Failed to count active orders")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard statistics"})
		return
	}

	var recent []models.Order
	if err := config.DB.Preload("Table").Preload("Items.MenuItem").
		Where("restaurant_id = ? AND table_id IS NOT NULL", restaurant.ID).
		Order("created_at desc").Limit(10).
		Find(&recent).Error; err != nil {
		logrus.WithError(err).Error("Failed to fetch recent orders")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard statistics"})
		return
	}

	recentOrders := make([]gin.H, 0, len(recent))
	for _, o := range recent {
		if o.Table == nil {
			continue
		}
		parts := make([]string, 0, len(o.Items))
		for _, item := range o.Items {
			name := "Unknown Item"
			if item.MenuItem != nil {
				name = item.MenuItem.Name
			}
			parts = append(parts, fmt.Sprintf("%s x%d", name, item.Quantity))
		}
		recentOrders = append(recentOrders, gin.H{
			"id":     o.ID,
			"table":  fmt.Sprintf("Table %d", o.Table.Number),
			"items":  strings.Join(parts, ", "),
			"amount": rupees(o.TotalAmount),
			"time":   relativeTime(o.CreatedAt),
			"status": o.Status,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"todaysRevenue": todaysRevenue,
		"activeOrders":  activeOrders,
		"itemsServed":   len(todaysOrders),
		"avgOrderTime":  avgOrderTime,
		"recentOrders":  recentOrders,
	})
}

type itemQuantity struct {
	MenuItemID string `gorm:"column:menu_item_id"`
	Total      int64  `gorm:"column:total"`
}

// sumItemQuantities aggregates per-menu-item quantities over completed
// orders created in [from, to)
func sumItemQuantities(ctx context.Context, restaurantID string, from, to time.Time, limit int) ([]itemQuantity, error) {
	query := config.DB.WithContext(ctx).Table("order_items").
		Select("order_items.menu_item_id AS menu_item_id, SUM(order_items.quantity) AS total").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.restaurant_id = ? AND orders.status = ? AND orders.created_at >= ? AND orders.created_at < ?",
			restaurantID, models.StatusCompleted, from, to).
		Group("order_items.menu_item_id").
		Order("total DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var rows []itemQuantity
	err := query.Scan(&rows).Error
	return rows, err
}

// GetTopSellingItems compares the last 30 days against the 30 days
// before that, both restricted to completed orders, and reports the top
// 10 current items with a growth percentage. An item with no previous
// sales but current sales reports +100%; items with zero current
// quantity never appear.
func GetTopSellingItems(c *gin.Context) {
	restaurant := fetchRestaurantForAnalytics(c)
	if restaurant == nil {
		return
	}

	now := time.Now()
	thirtyDaysAgo := now.AddDate(0, 0, -30)
	sixtyDaysAgo := now.AddDate(0, 0, -60)

	ctx, cancel := context.WithTimeout(c.Request.Context(), topSellingTimeout)
	defer cancel()

	type windows struct {
		current  []itemQuantity
		previous []itemQuantity
		err      error
	}
	done := make(chan windows, 1)
	go func() {
		var w windows
		w.current, w.err = sumItemQuantities(ctx, restaurant.ID, thirtyDaysAgo, now.AddDate(0, 0, 1), 10)
		if w.err == nil {
			w.previous, w.err = sumItemQuantities(ctx, restaurant.ID, sixtyDaysAgo, thirtyDaysAgo, 0)
		}
		done <- w
	}()

	var w windows
	select {
	case w = <-done:
	case <-ctx.Done():
		logrus.WithField("restaurant_id", restaurant.ID).Error("Top selling aggregation timed out")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch top selling items"})
		return
	}
	if w.err != nil {
		logrus.WithError(w.err).Error("Top selling aggregation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch top selling items"})
		return
	}

	if len(w.current) == 0 {
		c.JSON(http.StatusOK, []gin.H{})
		return
	}

	previousByItem := make(map[string]int64, len(w.previous))
	for _, row := range w.previous {
		previousByItem[row.MenuItemID] = row.Total
	}

	ids := make([]string, 0, len(w.current))
	for _, row := range w.current {
		ids = append(ids, row.MenuItemID)
	}
	var menuItems []models.MenuItem
	if err := config.DB.Where("id IN ?", ids).Find(&menuItems).Error; err != nil {
		logrus.WithError(err).Error("Failed to resolve top selling menu items")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch top selling items"})
		return
	}
	menuByID := make(map[string]models.MenuItem, len(menuItems))
	for _, item := range menuItems {
		menuByID[item.ID] = item
	}

	result := make([]gin.H, 0, len(w.current))
	for _, row := range w.current {
		menuItem, ok := menuByID[row.MenuItemID]
		if !ok {
			continue
		}
		previous := previousByItem[row.MenuItemID]
		var growth int
		if previous > 0 {
			growth = int(math.Round(float64(row.Total-previous) / float64(previous) * 100))
		} else if row.Total > 0 {
			growth = 100
		}
		sign := ""
		if growth >= 0 {
			sign = "+"
		}
		result = append(result, gin.H{
			"id":     row.MenuItemID,
			"name":   menuItem.Name,
			"orders": row.Total,
			"price":  rupees(menuItem.Price),
			"growth": fmt.Sprintf("%s%d%%", sign, growth),
			"rank":   len(result) + 1,
		})
	}

	c.JSON(http.StatusOK, result)
}

// parseDate accepts the common query formats, date-only first
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// ExportAnalyticsReport streams a row-per-order CSV over an explicit
// date range (default last 30 days through now). Missing relations
// render as placeholder text rather than failing the row.
func ExportAnalyticsReport(c *gin.Context) {
	restaurant := fetchRestaurantForAnalytics(c)
	if restaurant == nil {
		return
	}

	start := time.Now().AddDate(0, 0, -30)
	end := time.Now()
	if raw := c.Query("startDate"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startDate"})
			return
		}
		start = t
	}
	if raw := c.Query("endDate"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid endDate"})
			return
		}
		end = t
	}

	var orders []models.Order
	if err := config.DB.Preload("Table").Preload("Items.MenuItem").
		Where("restaurant_id = ? AND created_at >= ? AND created_at < ?", restaurant.ID, start, end).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		logrus.WithError(err).Error("Failed to fetch orders for export")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export analytics report"})
		return
	}

	var csv strings.Builder
	csv.WriteString("Order ID,Table,Items,Total Amount,Status,Date\n")
	for _, o := range orders {
		parts := make([]string, 0, len(o.Items))
		for _, item := range o.Items {
			name := "Unknown"
			if item.MenuItem != nil {
				name = item.MenuItem.Name
			}
			parts = append(parts, fmt.Sprintf("%s x%d", name, item.Quantity))
		}
		tableCell := "N/A"
		if o.Table != nil {
			tableCell = strconv.Itoa(o.Table.Number)
		}
		csv.WriteString(fmt.Sprintf("%s,%s,\"%s\",%d,%s,%s\n",
			o.ID, tableCell, strings.Join(parts, "; "), o.TotalAmount, o.Status,
			o.CreatedAt.UTC().Format(time.RFC3339)))
	}

	filename := fmt.Sprintf("restaurant-analytics-%s-%s-to-%s.csv",
		restaurant.ID, start.Format("2006-01-02"), end.Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", []byte(csv.String()))
}
