package services

import (
	"testing"

	"bookstore-api/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a fresh in-memory database per test. A single connection keeps
// the in-memory database alive and serializes concurrent access the way a
// real storage engine would.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Book{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderHistory{},
	))
	return db
}

func seedBook(t *testing.T, db *gorm.DB, title string, price float64) *models.Book {
	t.Helper()
	book := models.Book{Title: title, Author: "Test Author", Price: price, Stock: 10}
	require.NoError(t, db.Create(&book).Error)
	return &book
}

func seedUser(t *testing.T, db *gorm.DB, username, email, phone string, role models.Role) *models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		Email:        email,
		Phone:        phone,
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}
