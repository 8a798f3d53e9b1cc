package services

import (
	"errors"

	"bookstore-api/errs"
	"bookstore-api/models"

	"gorm.io/gorm"
)

// DeliveryService exposes unassigned orders to delivery agents and performs
// the atomic claim.
type DeliveryService struct {
	db *gorm.DB
}

func NewDeliveryService(db *gorm.DB) *DeliveryService {
	return &DeliveryService{db: db}
}

// AvailableOrders returns orders not yet claimed by any agent and not yet
// picked up, oldest first.
func (s *DeliveryService) AvailableOrders() ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Items.Book").
		Where("agent_id IS NULL AND status IN ?",
			[]models.OrderStatus{models.StatusPending, models.StatusConfirmed}).
		Order("created_at asc").
		Find(&orders).Error
	if err != nil {
		return nil, errs.Internal(err)
	}
	return orders, nil
}

// AssignOrder claims an order for an agent. The claim is a single conditional
// update keyed on the assignment pointer being empty, not a read-then-write,
// so of two concurrent claims exactly one succeeds and the other observes a
// conflict.
func (s *DeliveryService) AssignOrder(agentID, orderID uint) (*models.Order, error) {
	var agent models.User
	if err := s.db.First(&agent, agentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("delivery agent not found")
		}
		return nil, errs.Internal(err)
	}
	if agent.Role != models.RoleDeliveryAgent {
		return nil, errs.Validation("user is not a delivery agent")
	}

	res := s.db.Model(&models.Order{}).
		Where("id = ? AND agent_id IS NULL", orderID).
		Update("agent_id", agentID)
	if res.Error != nil {
		return nil, errs.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		var order models.Order
		if err := s.db.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errs.NotFound("order not found")
			}
			return nil, errs.Internal(err)
		}
		return nil, errs.Conflict("order already assigned to another agent")
	}

	var order models.Order
	if err := s.db.Preload("Items.Book").Preload("History").First(&order, orderID).Error; err != nil {
		return nil, errs.Internal(err)
	}
	return &order, nil
}

// AssignedOrders returns all orders claimed by the given agent.
func (s *DeliveryService) AssignedOrders(agentID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Items.Book").Preload("History").
		Where("agent_id = ?", agentID).
		Order("updated_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, errs.Internal(err)
	}
	return orders, nil
}
