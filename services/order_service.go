package services

import (
	"errors"

	"bookstore-api/errs"
	"bookstore-api/models"
	"bookstore-api/statemachine"

	"gorm.io/gorm"
)

// OrderService converts carts into orders and drives the order lifecycle.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// PlaceOrder consolidates the user's unassigned cart items into a new PENDING
// order. The total is frozen from catalog prices prevailing now. The cart
// items flip to the new order in one conditional update inside the
// transaction; the flip doubles as a fencing token, so a concurrent duplicate
// placement observes an empty cart instead of creating a second order.
func (s *OrderService) PlaceOrder(userID uint, address, phone string) (*models.Order, error) {
	var orderID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		if err := tx.Where("user_id = ? AND order_id IS NULL", userID).Find(&items).Error; err != nil {
			return errs.Internal(err)
		}
		if len(items) == 0 {
			return errs.Validation("no items in cart")
		}

		var total float64
		for _, item := range items {
			var book models.Book
			if err := tx.First(&book, item.BookID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errs.NotFound("book not found in catalog")
				}
				return errs.Internal(err)
			}
			total += book.Price * float64(item.Quantity)
		}

		order := models.Order{
			UserID:  userID,
			Total:   total,
			Address: address,
			Phone:   phone,
			Status:  models.StatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return errs.Internal(err)
		}

		res := tx.Model(&models.CartItem{}).
			Where("user_id = ? AND order_id IS NULL", userID).
			Update("order_id", order.ID)
		if res.Error != nil {
			return errs.Internal(res.Error)
		}
		if res.RowsAffected != int64(len(items)) {
			// cart changed underneath us; roll everything back
			return errs.Conflict("cart changed during order placement")
		}

		history := models.OrderHistory{OrderID: order.ID, Status: models.StatusPending}
		if err := tx.Create(&history).Error; err != nil {
			return errs.Internal(err)
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetOrder(orderID)
}

// UpdateStatus advances an order through the lifecycle graph and appends
// exactly one history record.
func (s *OrderService) UpdateStatus(orderID uint, newStatus models.OrderStatus) (*models.Order, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("order not found")
			}
			return errs.Internal(err)
		}
		if err := statemachine.CanTransition(order.Status, newStatus); err != nil {
			return err
		}
		return applyStatus(tx, &order, newStatus)
	})
	if err != nil {
		return nil, err
	}
	return s.GetOrder(orderID)
}

// ForceStatus overrides an order's status without lifecycle validation. Only
// the admin surface uses this; history is still appended.
func (s *OrderService) ForceStatus(orderID uint, newStatus models.OrderStatus) (*models.Order, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("order not found")
			}
			return errs.Internal(err)
		}
		return applyStatus(tx, &order, newStatus)
	})
	if err != nil {
		return nil, err
	}
	return s.GetOrder(orderID)
}

func applyStatus(tx *gorm.DB, order *models.Order, newStatus models.OrderStatus) error {
	if err := tx.Model(order).Update("status", newStatus).Error; err != nil {
		return errs.Internal(err)
	}
	history := models.OrderHistory{OrderID: order.ID, Status: newStatus}
	if err := tx.Create(&history).Error; err != nil {
		return errs.Internal(err)
	}
	return nil
}

// DeleteOrder removes an order together with its line items and history.
// All steps run in one transaction.
func (s *OrderService) DeleteOrder(orderID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("order not found")
			}
			return errs.Internal(err)
		}
		if err := tx.Where("order_id = ?", orderID).Delete(&models.CartItem{}).Error; err != nil {
			return errs.Internal(err)
		}
		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderHistory{}).Error; err != nil {
			return errs.Internal(err)
		}
		if err := tx.Delete(&order).Error; err != nil {
			return errs.Internal(err)
		}
		return nil
	})
}

// GetOrder loads an order with its line items hydrated with current book
// details. The enrichment is presentation-only; the frozen total is never
// recomputed.
func (s *OrderService) GetOrder(orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Items.Book").Preload("History").First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("order not found")
		}
		return nil, errs.Internal(err)
	}
	return &order, nil
}

// FindByUser returns a user's orders, newest first.
func (s *OrderService) FindByUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Items.Book").Preload("History").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, errs.Internal(err)
	}
	return orders, nil
}

// FindAll returns every order, newest first.
func (s *OrderService) FindAll() ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Items.Book").Preload("History").
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, errs.Internal(err)
	}
	return orders, nil
}
