package model

import (
	"time"

	"github.com/google/uuid"
)

// User stores login accounts with role-based access.
// Role: "owner" | "manager" | "cashier"
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	Email        *string
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"type:varchar(20);not null"`
	// ShopID restricts a cashier or manager to one shop; nil = all shops (owner).
	ShopID *uuid.UUID `gorm:"type:uuid;index"`
	Active bool       `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
