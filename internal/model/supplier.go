package model

import (
	"time"

	"github.com/google/uuid"
)

// Supplier is a vendor the chain buys stock from.
type Supplier struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name    string    `gorm:"not null"`
	Phone   *string
	Address *string
	Active  bool `gorm:"not null;default:true"`
	Synced  bool `gorm:"not null;default:false;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
