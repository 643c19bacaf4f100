package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	AccessFree    = "free"
	AccessPremium = "premium"
)

// User is keyed by email: registration is idempotent per address.
// Profile keeps whatever extra fields the client sent at registration.
type User struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name"`
	Email       string         `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Role        string         `json:"role" gorm:"size:50;default:user"` // user, admin
	AccessLevel string         `json:"accessLevel" gorm:"size:50;default:free"` // free, premium
	Profile     datatypes.JSON `json:"profile,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}
