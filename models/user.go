package models

import "time"

// Role defines allowed roles in the system
type Role string

const (
	RoleCustomer      Role = "CUSTOMER"
	RoleAdmin         Role = "ADMIN"
	RoleDeliveryAgent Role = "DELIVERY_AGENT"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleAdmin, RoleDeliveryAgent:
		return true
	}
	return false
}

// Satisfies reports whether a caller holding role r meets a requirement for
// role required. ADMIN satisfies any CUSTOMER requirement; DELIVERY_AGENT is
// a disjoint track.
func (r Role) Satisfies(required Role) bool {
	if r == required {
		return true
	}
	return r == RoleAdmin && required == RoleCustomer
}

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         Role      `json:"role" gorm:"not null;default:'CUSTOMER'"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Phone        string    `json:"phone" gorm:"uniqueIndex;not null"`
	Address      string    `json:"address"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
