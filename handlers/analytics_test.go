package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"restaurant-ordering-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// backdate rewrites an order's timestamps directly, bypassing gorm's
// auto-tracking, so windowed aggregations can be tested
func backdate(t *testing.T, db *gorm.DB, order *models.Order, createdAt, updatedAt time.Time) {
	t.Helper()
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).
		UpdateColumns(map[string]interface{}{"created_at": createdAt, "updated_at": updatedAt}).Error)
}

func TestDashboardStats(t *testing.T) {
	r, db := setupTest(t)

	owner := seedUser(t, db, "owner", models.RoleAdmin, true)
	restaurant := seedRestaurant(t, db, owner, true)
	table := seedTable(t, db, restaurant, 1)
	item := seedMenuItem(t, db, restaurant, "Thali", 200)

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// Completed today, took 30 minutes
	completed := seedOrder(t, db, restaurant, table, models.StatusCompleted,
		models.OrderItem{MenuItemID: item.ID, Quantity: 1, Price: item.Price})
	backdate(t, db, completed, midnight.Add(time.Minute), midnight.Add(31*time.Minute))

	// Completed yesterday: outside today's revenue window
	old := seedOrder(t, db, restaurant, table, models.StatusCompleted,
		models.OrderItem{MenuItemID: item.ID, Quantity: 3, Price: item.Price})
	backdate(t, db, old, midnight.Add(-20*time.Hour), midnight.Add(-19*time.Hour))

	// Still cooking: counts as active, not revenue
	seedOrder(t, db, restaurant, table, models.StatusPending,
		models.OrderItem{MenuItemID: item.ID, Quantity: 1, Price: item.Price})
	seedOrder(t, db, restaurant, table, models.StatusPreparing,
		models.OrderItem{MenuItemID: item.ID, Quantity: 1, Price: item.Price})
	// Ready is not part of the dashboard's active count
	seedOrder(t, db, restaurant, table, models.StatusReady,
		models.OrderItem{MenuItemID: item.ID, Quantity: 1, Price: item.Price})

	recorder := doRequest(r, http.MethodGet, "/api/analytics/dashboard/"+restaurant.ID, nil, bearerFor(t, owner))
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	resp := decodeBody(t, recorder)

	assert.Equal(t, float64(200), resp["todaysRevenue"])
	assert.Equal(t, float64(2), resp["activeOrders"])
	assert.Equal(t, float64(1), resp["itemsServed"])
	assert.Equal(t, float64(30), resp["avgOrderTime"])

	recent := resp["recentOrders"].([]interface{})
	require.NotEmpty(t, recent)
	first := recent[0].(map[string]interface{})
	assert.Equal(t, "Table 1", first["table"])
	assert.Contains(t, first["amount"], "₹")
	assert.Contains(t, first["time"], "ago")
}

func TestDashboardStatsEmptyRestaurant(t *testing.T) {
	r, db := setupTest(t)

	owner := seedUser(t, db, "owner", models.RoleAdmin, true)
	restaurant := seedRestaurant(t, db, owner, true)

	recorder := doRequest(r, http.MethodGet, "/api/analytics/dashboard/"+restaurant.ID, nil, bearerFor(t, owner))
	require.Equal(t, http.StatusOK, recorder.Code)
	resp := decodeBody(t, recorder)
	assert.Equal(t, float64(0), resp["todaysRevenue"])
	assert.Equal(t, float64(0), resp["avgOrderTime"])
	assert.Empty(t, resp["recentOrders"])
}

func TestAnalyticsAccessLimitedToOwnRestaurant(t *testing.T) {
	r, db := setupTest(t)

	owner := seedUser(t, db, "owner", models.RoleAdmin, true)
	restaurant := seedRestaurant(t, db, owner, true)

	other := seedUser(t, db, "other", models.RoleAdmin, true)
	seedRestaurant(t, db, other, true)

	recorder := doRequest(r, http.MethodGet, "/api/analytics/dashboard/"+restaurant.ID, nil, bearerFor(t, other))
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	super := seedUser(t, db, "root", models.RoleSuperAdmin, true)
	recorder = doRequest(r, http.MethodGet, "/api/analytics/dashboard/"+restaurant.ID, nil, bearerFor(t, super))
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestTopSellingGrowth(t *testing.T) {
	r, db := setupTest(t)

	owner := seedUser(t, db, "owner", models.RoleAdmin, true)
	restaurant := seedRestaurant(t, db, owner, true)
	table := seedTable(t, db, restaurant, 1)
	riser := seedMenuItem(t, db, restaurant, "Riser", 100)
	faller := seedMenuItem(t, db, restaurant, "Faller", 100)

	now := time.Now()
	current := now.AddDate(0, 0, -2)
	previous := now.AddDate(0, 0, -40)

	// Riser: nothing previously, 5 now → +100%
	o := seedOrder(t, db, restaurant, table, models.StatusCompleted,
		models.OrderItem{MenuItemID: riser.ID, Quantity: 5, Price: riser.Price})
	backdate(t, db, o, current, current)

	// Faller: 10 previously, 5 now → -50%
	o = seedOrder(t, db, restaurant, table, models.StatusCompleted,
		models.OrderItem{MenuItemID: faller.ID, Quantity: 5, Price: faller.Price})
	backdate(t, db, o, current, current)
	o = seedOrder(t, db, restaurant, table, models.StatusCompleted,
		models.OrderItem{MenuItemID: faller.ID, Quantity: 10, Price: faller.Price})
	backdate(t, db, o, previous, previous)

	// Pending orders never count
	seedOrder(t, db, restaurant, table, models.StatusPending,
		models.OrderItem{MenuItemID: riser.ID, Quantity: 50, Price: riser.Price})

	recorder := doRequest(r, http.MethodGet, "/api/analytics/top-selling/"+restaurant.ID, nil, bearerFor(t, owner))
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &items))
	require.Len(t, items, 2)

	byName := map[string]map[string]interface{}{}
	for _, item := range items {
		byName[item["name"].(string)] = item
	}
	assert.Equal(t, "+100%", byName["Riser"]["growth"])
	assert.Equal(t, float64(5), byName["Riser"]["orders"])
	assert.Equal(t, "-50%", byName["Faller"]["growth"])
	assert.Equal(t, "₹100", byName["Faller"]["price"])
	assert.Equal(t, float64(1), items[0]["rank"])
}

func TestTopSellingEmpty(t *testing.T) {
	r, db := setupTest(t)

	owner := seedUser(t, db, "owner", models.RoleAdmin, true)
	restaurant := seedRestaurant(t, db, owner, true)

	recorder := doRequest(r, http.MethodGet, "/api/analytics/top-selling/"+restaurant.ID, nil, bearerFor(t, owner))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "[]", recorder.Body.String())
}

func TestExportAnalyticsReport(t *testing.T) {
	r, db := setupTest(t)

	owner := seedUser(t, db, "owner", models.RoleAdmin, true)
	restaurant := seedRestaurant(t, db, owner, true)
	table := seedTable(t, db, restaurant, 3)
	dal := seedMenuItem(t, db, restaurant, "Dal", 80)
	naan := seedMenuItem(t, db, restaurant, "Naan", 40)

	seedOrder(t, db, restaurant, table, models.StatusCompleted,
		models.OrderItem{MenuItemID: dal.ID, Quantity: 2, Price: dal.Price},
		models.OrderItem{MenuItemID: naan.ID, Quantity: 1, Price: naan.Price})

	// No table and a dangling menu item reference: placeholders, not errors
	ghost := seedMenuItem(t, db, restaurant, "Ghost", 10)
	seedOrder(t, db, restaurant, nil, models.StatusPending,
		models.OrderItem{MenuItemID: ghost.ID, Quantity: 1, Price: ghost.Price})
	require.NoError(t, db.Delete(ghost).Error)

	recorder := doRequest(r, http.MethodGet, "/api/analytics/export/"+restaurant.ID, nil, bearerFor(t, owner))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Content-Disposition"), "attachment; filename=restaurant-analytics-"+restaurant.ID)

	body := recorder.Body.String()
	assert.Contains(t, body, "Order ID,Table,Items,Total Amount,Status,Date\n")
	assert.Contains(t, body, `"Dal x2; Naan x1",200,Completed`)
	assert.Contains(t, body, "N/A")
	assert.Contains(t, body, "Unknown x1")
}

func TestExportRejectsMalformedDates(t *testing.T) {
	r, db := setupTest(t)

	owner := seedUser(t, db, "owner", models.RoleAdmin, true)
	restaurant := seedRestaurant(t, db, owner, true)

	recorder := doRequest(r, http.MethodGet,
		"/api/analytics/export/"+restaurant.ID+"?startDate=notadate", nil, bearerFor(t, owner))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
