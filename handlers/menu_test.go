package handlers_test

import (
	"net/http"
	"testing"

	"restaurant-ordering-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMenuItemDefaults(t *testing.T) {
	r, db := setupTest(t)

	owner := seedUser(t, db, "owner", models.RoleAdmin, true)
	restaurant := seedRestaurant(t, db, owner, true)

	recorder := doRequest(r, http.MethodPost, "/api/restaurants/"+restaurant.ID+"/menu-items", map[string]interface{}{
		"name":        "Paneer Tikka",
		"price":       220,
		"category":    "starters",
		"spicy_level": 7,
	}, bearerFor(t, owner))
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var item models.MenuItem
	require.NoError(t, db.First(&item, "name = ?", "Paneer Tikka").Error)
	assert.True(t, item.IsVeg)
	assert.True(t, item.IsAvailable)
	assert.Equal(t, 1, item.SpicyLevel, "out of range spicy level falls back to 1")
	assert.Equal(t, int64(220), item.Price)
}

func TestCreateMenuItemRejectsNonPositivePrice(t *testing.T) {
	r, db := setupTest(t)

	owner := seedUser(t, db, "owner", models.RoleAdmin, true)
	restaurant := seedRestaurant(t, db, owner, true)

	recorder := doRequest(r, http.MethodPost, "/api/restaurants/"+restaurant.ID+"/menu-items", map[string]interface{}{
		"name":     "Free Lunch",
		"price":    0,
		"category": "mains",
	}, bearerFor(t, owner))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestUpdateMenuItemIgnoresUnknownFields(t *testing.T) {
	r, db := setupTest(t)

	owner := seedUser(t, db, "owner", models.RoleAdmin, true)
	restaurant := seedRestaurant(t, db, owner, true)
	item := seedMenuItem(t, db, restaurant, "Dal", 80)

	recorder := doRequest(r, http.MethodPut, "/api/menu-items/"+item.ID, map[string]interface{}{
		"price":         120,
		"is_available":  false,
		"restaurant_id": "some-other-restaurant",
	}, bearerFor(t, owner))
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var updated models.MenuItem
	require.NoError(t, db.First(&updated, "id = ?", item.ID).Error)
	assert.Equal(t, int64(120), updated.Price)
	assert.False(t, updated.IsAvailable)
	assert.Equal(t, restaurant.ID, updated.RestaurantID)
}

func TestMenuItemNotFoundBeforeAccessCheck(t *testing.T) {
	r, db := setupTest(t)
	user := seedUser(t, db, "someone", models.RoleCustomer, true)

	recorder := doRequest(r, http.MethodPut, "/api/menu-items/missing-id", map[string]interface{}{
		"price": 10,
	}, bearerFor(t, user))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestMenuManagementAccess(t *testing.T) {
	r, db := setupTest(t)

	owner := seedUser(t, db, "owner", models.RoleAdmin, true)
	pending := seedRestaurant(t, db, owner, false)
	stranger := seedUser(t, db, "stranger", models.RoleAdmin, true)

	recorder := doRequest(r, http.MethodGet, "/api/restaurants/"+pending.ID+"/menu-items", nil, bearerFor(t, stranger))
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = doRequest(r, http.MethodGet, "/api/restaurants/"+pending.ID+"/menu-items", nil, bearerFor(t, owner))
	assert.Equal(t, http.StatusOK, recorder.Code)

	// once approved, any authenticated user can manage the menu
	require.NoError(t, db.Model(pending).Updates(map[string]interface{}{"approved": true, "status": models.RestaurantApproved}).Error)
	recorder = doRequest(r, http.MethodGet, "/api/restaurants/"+pending.ID+"/menu-items", nil, bearerFor(t, stranger))
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestDeleteMenuItemKeepsOrderSnapshots(t *testing.T) {
	r, db := setupTest(t)

	owner := seedUser(t, db, "owner", models.RoleAdmin, true)
	restaurant := seedRestaurant(t, db, owner, true)
	table := seedTable(t, db, restaurant, 1)
	item := seedMenuItem(t, db, restaurant, "Dal", 80)
	order := seedOrder(t, db, restaurant, table, models.StatusCompleted,
		models.OrderItem{MenuItemID: item.ID, Quantity: 2, Price: item.Price})

	recorder := doRequest(r, http.MethodDelete, "/api/menu-items/"+item.ID, nil, bearerFor(t, owner))
	require.Equal(t, http.StatusOK, recorder.Code)

	var kept models.Order
	require.NoError(t, db.Preload("Items").First(&kept, "id = ?", order.ID).Error)
	require.Len(t, kept.Items, 1)
	assert.Equal(t, int64(80), kept.Items[0].Price)
	assert.Equal(t, int64(160), kept.TotalAmount)
}
