package models

import "time"

// CartItem is a line in a user's cart. OrderID is null while the item sits in
// the cart and is set exactly once when the item is consolidated into an
// order; it is never reassigned.
type CartItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	BookID    uint      `json:"book_id" gorm:"not null"`
	Book      *Book     `json:"book,omitempty" gorm:"foreignKey:BookID"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	OrderID   *uint     `json:"order_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}
