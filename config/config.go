package config

import (
	"os"

	"restaurant-ordering-api/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret signs access tokens; set from env in Init
var JWTSecret []byte

// Init loads .env (if present) and resolves secrets before anything
// touches the database.
func Init() {
	_ = godotenv.Load()
	JWTSecret = []byte(GetEnv("JWT_SECRET", "qr_dine_super_secret_2024"))
}

// GetEnv reads an environment variable with a fallback default
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitDB() {
	var err error
	DB, err = gorm.Open(sqlite.Open(GetEnv("DB_PATH", "restaurant_orders.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	// Auto-migrate all models
	err = DB.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Plan{},
		&models.Table{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to migrate database")
	}

	logrus.Info("Database connected and migrated successfully")
}

// SetTestDB swaps the global handle for tests
func SetTestDB(testDB *gorm.DB) {
	DB = testDB
}
