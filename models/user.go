package models

import (
	"time"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleCustomer        UserRole = "customer"
	RoleRestaurantAdmin UserRole = "restaurant_admin"
	RoleSuperAdmin      UserRole = "super_admin"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleCustomer, RoleRestaurantAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// CanOwnRestaurant reports whether a user with this role may be set as a
// restaurant owner.
func (r UserRole) CanOwnRestaurant() bool {
	return r == RoleRestaurantAdmin || r == RoleSuperAdmin
}

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	FullName  string    `json:"full_name" gorm:"not null"`
	Phone     string    `json:"phone"`
	Role      UserRole  `json:"role" gorm:"not null;default:'customer'"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
