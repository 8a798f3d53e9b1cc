package models

import "time"

// OrderStatus represents all possible states of a bookstore order
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusPickedUp  OrderStatus = "PICKED_UP"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// Order holds a placed order. Total is computed from catalog prices at
// placement and never recomputed, even if book prices change later. AgentID
// is the delivery assignment pointer; it moves from null to a specific agent
// at most once.
type Order struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"not null;index"`
	Total     float64        `json:"total" gorm:"not null"`
	Address   string         `json:"address" gorm:"not null"`
	Phone     string         `json:"phone"`
	Status    OrderStatus    `json:"status" gorm:"not null;default:'PENDING'"`
	AgentID   *uint          `json:"agent_id" gorm:"index"`
	Agent     *User          `json:"agent,omitempty" gorm:"foreignKey:AgentID"`
	Items     []CartItem     `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	History   []OrderHistory `json:"history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// OrderHistory records one row per status transition, including the initial
// placement. Append-only.
type OrderHistory struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	OrderID   uint        `json:"order_id" gorm:"not null;index"`
	Status    OrderStatus `json:"status" gorm:"not null"`
	CreatedAt time.Time   `json:"created_at"`
}
