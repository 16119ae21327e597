package model

import (
	"time"

	"github.com/google/uuid"
)

// Shop is one physical outlet of the chain. Every other entity belongs to
// exactly one shop, except globally scoped items and fixed expenses.
type Shop struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name    string    `gorm:"not null"`
	Address *string
	Phone   *string
	Active  bool `gorm:"not null;default:true"`
	Synced  bool `gorm:"not null;default:false;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
