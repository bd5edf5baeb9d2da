package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"restaurant-ordering-api/config"
	"restaurant-ordering-api/middleware"
	"restaurant-ordering-api/models"
	"restaurant-ordering-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.JWTSecret = []byte("test-secret-key")

	testDB, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open test database")

	err = testDB.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Plan{},
		&models.Table{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	require.NoError(t, err, "failed to migrate test database")

	originalDB := config.DB
	config.SetTestDB(testDB)
	t.Cleanup(func() {
		config.SetTestDB(originalDB)
	})

	r := gin.New()
	r.Use(gin.Recovery())
	routes.SetupRoutes(r)
	return r, testDB
}

func doRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, req)
	return recorder
}

func bearerFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := middleware.GenerateToken(user)
	require.NoError(t, err)
	return token
}

func seedUser(t *testing.T, db *gorm.DB, name string, role models.UserRole, approved bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
		Approved:     approved,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedRestaurant(t *testing.T, db *gorm.DB, owner *models.User, approved bool) *models.Restaurant {
	t.Helper()
	restaurant := &models.Restaurant{
		Name:    owner.Name + "'s Restaurant",
		OwnerID: owner.ID,
	}
	if approved {
		restaurant.SetStatus(models.RestaurantApproved)
	}
	require.NoError(t, db.Create(restaurant).Error)
	require.NoError(t, db.Model(owner).Update("restaurant_id", restaurant.ID).Error)
	owner.RestaurantID = &restaurant.ID
	return restaurant
}

func seedTable(t *testing.T, db *gorm.DB, restaurant *models.Restaurant, number int) *models.Table {
	t.Helper()
	table := &models.Table{
		RestaurantID:  restaurant.ID,
		Number:        number,
		Capacity:      4,
		EstimatedTime: 20,
		Status:        models.TableAvailable,
		QRCode:        "http://localhost:5173/menu?restaurant=" + restaurant.ID,
	}
	require.NoError(t, db.Create(table).Error)
	return table
}

func seedMenuItem(t *testing.T, db *gorm.DB, restaurant *models.Restaurant, name string, price int64) *models.MenuItem {
	t.Helper()
	item := &models.MenuItem{
		RestaurantID: restaurant.ID,
		Name:         name,
		Price:        price,
		Category:     "mains",
		IsAvailable:  true,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func seedOrder(t *testing.T, db *gorm.DB, restaurant *models.Restaurant, table *models.Table, status models.OrderStatus, items ...models.OrderItem) *models.Order {
	t.Helper()
	var total int64
	for _, item := range items {
		total += item.Price * int64(item.Quantity)
	}
	order := &models.Order{
		RestaurantID: restaurant.ID,
		Items:        items,
		TotalAmount:  total,
		Status:       status,
	}
	if table != nil {
		order.TableID = &table.ID
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}
