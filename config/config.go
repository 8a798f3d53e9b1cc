package config

import (
	"log"
	"os"

	"bookstore-api/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Config holds process-wide settings. It is loaded once at startup and never
// mutated afterwards; signing secrets are injected from here, not read from
// globals.
type Config struct {
	Port          string
	DBPath        string
	AccessSecret  []byte
	RefreshSecret []byte
	PaymentKeyID  string
	PaymentSecret string
	UploadDir     string
}

// Load reads the environment (plus an optional .env file) into a Config.
func Load() Config {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	return Config{
		Port:          getEnv("PORT", "8080"),
		DBPath:        getEnv("DB_PATH", "bookstore.db"),
		AccessSecret:  []byte(getEnv("JWT_ACCESS_SECRET", "bookstore_access_secret_2024")),
		RefreshSecret: []byte(getEnv("JWT_REFRESH_SECRET", "bookstore_refresh_secret_2024")),
		PaymentKeyID:  getEnv("PAYMENT_KEY_ID", "rzp_test_key"),
		PaymentSecret: getEnv("PAYMENT_KEY_SECRET", "rzp_test_secret"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitDB(cfg Config) {
	var err error
	DB, err = gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate all models
	err = DB.AutoMigrate(
		&models.User{},
		&models.Book{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderHistory{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("Database connected and migrated")
}
