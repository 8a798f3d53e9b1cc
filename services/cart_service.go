package services

import (
	"errors"

	"bookstore-api/errs"
	"bookstore-api/models"

	"gorm.io/gorm"
)

// CartService manages a user's unassigned cart lines.
type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// AddItem puts a book into the user's cart.
func (s *CartService) AddItem(userID, bookID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, errs.Validation("quantity must be at least 1")
	}
	var book models.Book
	if err := s.db.First(&book, bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("book not found")
		}
		return nil, errs.Internal(err)
	}
	item := models.CartItem{UserID: userID, BookID: bookID, Quantity: quantity}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, errs.Internal(err)
	}
	item.Book = &book
	return &item, nil
}

// Items returns the user's unassigned cart lines with book details.
func (s *CartService) Items(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := s.db.Preload("Book").
		Where("user_id = ? AND order_id IS NULL", userID).
		Find(&items).Error
	if err != nil {
		return nil, errs.Internal(err)
	}
	return items, nil
}

// RemoveItem deletes one of the user's own unassigned cart lines. Lines
// already consolidated into an order cannot be removed this way.
func (s *CartService) RemoveItem(userID, itemID uint) error {
	res := s.db.Where("id = ? AND user_id = ? AND order_id IS NULL", itemID, userID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return errs.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("cart item not found")
	}
	return nil
}
